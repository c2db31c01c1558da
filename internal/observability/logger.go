package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It is a no-op until InitLogger runs so
// packages and tests can log without setup.
var Logger = zap.NewNop()

// InitLogger builds the production JSON logger at the given level ("debug",
// "info", "warn", "error"). An empty level means info.
func InitLogger(level string) error {
	cfg := zap.NewProductionConfig()

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("parse log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Logger = logger
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger carrying trace_id and span_id from
// the active span in ctx.
//
// ctx itself is attached as the "context" field: the otelzap bridge uses any
// context.Context field as the context for log.Logger.Emit, which fills the
// native TraceID/SpanID of the exported OTLP record. The string fields keep
// stdout JSON greppable.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
