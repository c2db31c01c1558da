package main

import (
	"context"

	"mathengine-api/internal/calculator"
	"mathengine-api/internal/chat"
	"mathengine-api/internal/observability"
)

// initMetrics initialises the meter provider and the domain instruments.
// Add new domain InitMetrics calls here as the project grows.
func initMetrics(ctx context.Context, pushOTLP bool) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx, pushOTLP)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}
	if err := chat.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}

// initTelemetry starts OTLP trace and log export. The returned function
// shuts both down.
func initTelemetry(ctx context.Context) (func(context.Context) error, error) {
	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		return nil, err
	}

	logShutdown, err := observability.InitLogging(ctx)
	if err != nil {
		traceShutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		logErr := logShutdown(ctx)
		if err := traceShutdown(ctx); err != nil {
			return err
		}
		return logErr
	}, nil
}
