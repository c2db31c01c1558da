package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts POST /chat and its CORS preflight.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/chat", func(r chi.Router) {
		r.Use(corsMiddleware)
		r.Options("/", preflight)
		r.Post("/", h.Chat)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type, x-request-id")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		next.ServeHTTP(w, r)
	})
}

func preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
