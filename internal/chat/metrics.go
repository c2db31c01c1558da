package chat

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	routeCounter metric.Int64Counter
	errorCounter metric.Int64Counter
)

// InitMetrics registers the chat instruments. Call this once at startup
// (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("chat")

	var err error

	routeCounter, err = meter.Int64Counter("chat.messages.total",
		metric.WithDescription("Chat messages by route (math engine or llm)"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return fmt.Errorf("creating route counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("chat.errors.total",
		metric.WithDescription("Total number of failed chat requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}

func routeAttrs(route string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("route", route))
}
