package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"mathengine-api/internal/handlers"
)

// RecordError centralises error handling across all domains: records the error
// on the span, increments the provided error counter, logs with trace context,
// and writes a JSON error HTTP response. Extra attributes are added to the
// counter and the span. A nil counter skips counting, for failures already
// counted where they occurred.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error, status int, w http.ResponseWriter, attrs ...attribute.KeyValue) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	span.SetAttributes(attrs...)

	if counter != nil {
		counterAttrs := append([]attribute.KeyValue{attribute.String("operation", opName)}, attrs...)
		counter.Add(ctx, 1, metric.WithAttributes(counterAttrs...))
	}

	logger.Warn(msg,
		zap.String("operation", opName),
		zap.Error(err),
		zap.Int("status", status),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)

	handlers.WriteError(w, status, msg)
}
