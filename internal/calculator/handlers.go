package calculator

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"mathengine-api/internal/handlers"
	"mathengine-api/internal/observability"
)

// UnclearExpressionMessage is returned when an expression cannot be evaluated.
const UnclearExpressionMessage = "unclear expression"

// Handler serves the calculator HTTP API.
type Handler struct {
	svc *Service
}

// NewHandler returns a Handler evaluating through svc.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Evaluate handles POST /calculator/evaluate.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	defer span.End()

	var req EvaluateRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	res, err := h.svc.Solve(ctx, req.Expression)
	if err != nil {
		// Solve has already counted the rejection with its stage.
		observability.RecordError(ctx, span, logger, nil, "evaluate", UnclearExpressionMessage, err, http.StatusUnprocessableEntity, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, res)
}

// Batch handles POST /calculator/batch. Each expression gets its own child
// span; invalid expressions yield a null result instead of failing the batch.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.batch",
		trace.WithAttributes(
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	defer span.End()

	var req BatchRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "batch", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("batch.size", len(req.Expressions)))

	resp := BatchResponse{Items: make([]BatchItem, 0, len(req.Expressions))}
	for i, expr := range req.Expressions {
		itemCtx, itemSpan := tracer.Start(ctx, fmt.Sprintf("calculator.batch.item.%d", i),
			trace.WithAttributes(attribute.Int("batch.item.index", i)),
		)

		res, err := h.svc.Solve(itemCtx, expr)
		if err != nil {
			itemSpan.SetStatus(codes.Error, UnclearExpressionMessage)
			resp.Failed++
		} else {
			itemSpan.SetStatus(codes.Ok, "")
			resp.Succeeded++
		}
		itemSpan.End()

		resp.Items = append(resp.Items, BatchItem{Input: expr, Result: res})
	}

	span.SetAttributes(
		attribute.Int("batch.succeeded", resp.Succeeded),
		attribute.Int("batch.failed", resp.Failed),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("batch evaluated",
		zap.Int("size", len(req.Expressions)),
		zap.Int("succeeded", resp.Succeeded),
		zap.Int("failed", resp.Failed),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}
