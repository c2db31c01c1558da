package calculator

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"mathengine-api/internal/mathengine"
	"mathengine-api/internal/observability"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Service runs the math engine with tracing, metrics and logging around each
// evaluation. It is safe for concurrent use.
type Service struct {
	engine *mathengine.Engine
}

// NewService returns a Service backed by engine.
func NewService(engine *mathengine.Engine) *Service {
	return &Service{engine: engine}
}

// Solve evaluates expression. Errors wrap mathengine.ErrInvalidExpression;
// the failing stage is recorded on the span and the error counter.
func (s *Service) Solve(ctx context.Context, expression string) (*mathengine.Result, error) {
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.solve",
		trace.WithAttributes(
			attribute.Int("calculator.input.length", len(expression)),
		),
	)
	defer span.End()

	start := time.Now()
	res, err := s.engine.Evaluate(expression)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		stage := string(mathengine.StageOf(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid expression")
		span.SetAttributes(attribute.String("calculator.stage", stage))
		errorCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", "solve"),
			attribute.String("stage", stage),
		))

		logger.Info("expression rejected",
			zap.String("stage", stage),
			zap.Error(err),
			zap.Float64("duration_ms", elapsed),
		)
		return nil, err
	}

	attrs := metric.WithAttributes(attribute.String("operation", "solve"))
	evalCounter.Add(ctx, 1, attrs)
	evalHistogram.Record(ctx, elapsed, attrs)
	stepHistogram.Record(ctx, int64(len(res.Steps)), attrs)
	resultGauge.Record(ctx, res.Result, attrs)

	span.AddEvent("evaluation.complete", trace.WithAttributes(
		attribute.Float64("result", res.Result),
		attribute.Int("steps", len(res.Steps)),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(
		attribute.String("calculator.expression", res.Expression),
		attribute.Float64("calculator.result", res.Result),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("expression evaluated",
		zap.String("expression", res.Expression),
		zap.Float64("result", res.Result),
		zap.Int("steps", len(res.Steps)),
		zap.Float64("duration_ms", elapsed),
	)

	return res, nil
}
