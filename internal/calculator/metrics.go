package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	evalCounter   metric.Int64Counter
	evalHistogram metric.Float64Histogram
	errorCounter  metric.Int64Counter
	stepHistogram metric.Int64Histogram
	resultGauge   metric.Float64Gauge
)

// InitMetrics registers the OTel instruments for expression evaluation.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	evalCounter, err = meter.Int64Counter("calculator.evaluations.total",
		metric.WithDescription("Total number of expressions evaluated successfully"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return fmt.Errorf("creating evaluations counter: %w", err)
	}

	evalHistogram, err = meter.Float64Histogram("calculator.evaluation.duration",
		metric.WithDescription("Duration of expression evaluation in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating evaluation histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of rejected expressions and bad requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	stepHistogram, err = meter.Int64Histogram("calculator.evaluation.steps",
		metric.WithDescription("Number of operator applications per expression"),
		metric.WithUnit("{step}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 4, 8, 16, 32, 64),
	)
	if err != nil {
		return fmt.Errorf("creating step histogram: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last evaluated expression"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}
