package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMetrics installs a meter provider that pushes over OTLP when pushOTLP is
// set and always exposes instruments to the Prometheus default registry
// served by PrometheusHandler.
func InitMetrics(ctx context.Context, pushOTLP bool) (func(context.Context) error, error) {

	promExporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promExporter)}

	if pushOTLP {
		exporter, err := otlpmetrichttp.New(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	}

	res, err := newResource(ctx)
	if err != nil {
		return nil, err
	}
	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}

func PrometheusHandler() http.Handler {
	return promhttp.Handler()
}
