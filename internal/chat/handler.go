// Package chat answers chat messages, intercepting arithmetic questions with
// the math engine and streaming everything else from an LLM gateway.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"mathengine-api/internal/classifier"
	"mathengine-api/internal/handlers"
	"mathengine-api/internal/mathengine"
	"mathengine-api/internal/observability"
)

var tracer = otel.Tracer("chat")

// User-facing messages.
const (
	ClarificationMessage = "لم أتمكن من فهم المسألة. يرجى كتابتها بشكل أوضح، مثل: 12 + 7 * 3"
	RateLimitedMessage   = "لقد تجاوزت الحد المسموح من الطلبات. يرجى المحاولة مرة أخرى بعد قليل."
	PaymentMessage       = "نحتاج إلى تفعيل الخدمة. يرجى التواصل مع الإدارة."
	GatewayFailedMessage = "حدث خطأ في الاتصال بالذكاء الاصطناعي"
	UnavailableMessage   = "خدمة المحادثة غير متاحة حالياً"
	BadRequestMessage    = "تنسيق الرسائل غير صحيح"
)

// Solver evaluates an arithmetic expression.
type Solver interface {
	Solve(ctx context.Context, expression string) (*mathengine.Result, error)
}

// Handler serves POST /chat.
type Handler struct {
	solver  Solver
	gateway Gateway
	limiter *rate.Limiter
}

// Option configures a Handler.
type Option func(*Handler)

// WithGateway sets the LLM gateway used for non-math messages. Without one,
// such messages get 503.
func WithGateway(g Gateway) Option {
	return func(h *Handler) {
		h.gateway = g
	}
}

// WithRateLimit caps accepted requests at perSecond with the given burst.
// A non-positive perSecond disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(h *Handler) {
		if perSecond <= 0 {
			h.limiter = nil
			return
		}
		h.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewHandler returns a Handler answering math questions with solver.
func NewHandler(solver Solver, opts ...Option) *Handler {
	h := &Handler{solver: solver}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Chat handles POST /chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "chat.message",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	if h.limiter != nil && !h.limiter.Allow() {
		observability.RecordError(ctx, span, logger, errorCounter, "chat", RateLimitedMessage, errors.New("rate limit exceeded"), http.StatusTooManyRequests, w)
		return
	}

	var req Request
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chat", BadRequestMessage, err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("chat.messages", len(req.Messages)))

	if question, ok := latestUserMessage(req.Messages); ok && classifier.LooksLikeMath(question) {
		h.answerMath(ctx, span, logger, w, question)
		return
	}

	if h.gateway == nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chat", UnavailableMessage, errors.New("no llm gateway configured"), http.StatusServiceUnavailable, w)
		return
	}

	h.relay(ctx, span, logger, w, req.Messages)
}

func (h *Handler) answerMath(ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, question string) {
	span.SetAttributes(attribute.String("chat.route", "math"))
	routeCounter.Add(ctx, 1, routeAttrs("math"))

	res, err := h.solver.Solve(ctx, classifier.ExtractExpression(question))
	if err != nil {
		span.SetAttributes(attribute.Bool("chat.math.clarification", true))
		logger.Info("math question needs clarification", zap.Error(err))
		handlers.WriteJSON(w, http.StatusOK, ClarificationResponse{
			Type:    TypeMathClarification,
			Message: ClarificationMessage,
		})
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, MathResultResponse{Type: TypeMathResult, Result: res})
}

func (h *Handler) relay(ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, messages []Message) {
	span.SetAttributes(attribute.String("chat.route", "llm"))
	routeCounter.Add(ctx, 1, routeAttrs("llm"))

	stream, err := h.gateway.Stream(ctx, messages)
	if err != nil {
		status, msg := gatewayFailure(err)
		observability.RecordError(ctx, span, logger, errorCounter, "chat", msg, err, status, w)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	chunks := 0

	for {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Headers are already sent; end the stream and record the failure.
			span.RecordError(err)
			span.SetStatus(codes.Error, "stream interrupted")
			errorCounter.Add(ctx, 1, routeAttrs("llm"))
			logger.Error("llm stream interrupted", zap.Error(err), zap.Int("chunks", chunks))
			break
		}

		fmt.Fprint(w, "data: ")
		enc.Encode(streamChunk{Choices: []streamChoice{{Delta: streamDelta{Content: delta}}}})
		fmt.Fprint(w, "\n")
		if flusher != nil {
			flusher.Flush()
		}
		chunks++
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	if flusher != nil {
		flusher.Flush()
	}

	span.SetAttributes(attribute.Int("chat.stream.chunks", chunks))
	logger.Info("llm reply streamed", zap.Int("chunks", chunks))
}

// latestUserMessage returns the content of the last user turn.
func latestUserMessage(messages []Message) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content, true
		}
	}
	return "", false
}

func gatewayFailure(err error) (int, string) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		switch gwErr.StatusCode {
		case http.StatusTooManyRequests:
			return http.StatusTooManyRequests, RateLimitedMessage
		case http.StatusPaymentRequired:
			return http.StatusPaymentRequired, PaymentMessage
		}
	}
	return http.StatusInternalServerError, GatewayFailedMessage
}
