package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mathengine-api/internal/calculator"
	"mathengine-api/internal/chat"
	"mathengine-api/internal/handlers"
	"mathengine-api/internal/observability"
)

// Deps are the domain handlers mounted by NewRouter.
type Deps struct {
	Calculator *calculator.Handler
	Chat       *chat.Handler
}

func NewRouter(deps Deps) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	if deps.Calculator != nil {
		calculator.RegisterRoutes(r, deps.Calculator)
	}
	if deps.Chat != nil {
		chat.RegisterRoutes(r, deps.Chat)
	}

	return r
}
