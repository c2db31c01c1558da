package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mathengine-api/internal/calculator"
	"mathengine-api/internal/chat"
	"mathengine-api/internal/mathengine"
	"mathengine-api/internal/observability"
	"mathengine-api/internal/server"
)

func main() {

	ctx := context.Background()

	if err := loadDotEnv(); err != nil {
		panic(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	// Logger
	err = observability.InitLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing and OTLP logs
	if cfg.OTelEnabled {
		telemetryShutdown, err := initTelemetry(ctx)
		if err != nil {
			panic(err)
		}
		defer telemetryShutdown(ctx)
	}

	// Metrics
	metricShutdown, err := initMetrics(ctx, cfg.OTelEnabled)
	if err != nil {
		panic(err)
	}
	defer metricShutdown(ctx)

	// Domain
	svc := calculator.NewService(mathengine.New(mathengine.WithLocale(cfg.Locale)))

	chatOpts := []chat.Option{chat.WithRateLimit(cfg.ChatRateLimit, cfg.ChatRateBurst)}
	if cfg.OpenAIKey != "" {
		chatOpts = append(chatOpts, chat.WithGateway(chat.NewOpenAIGateway(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)))
	} else {
		observability.Logger.Warn("OPENAI_API_KEY not set, non-math chat messages will be rejected")
	}

	// Router
	router := server.NewRouter(server.Deps{
		Calculator: calculator.NewHandler(svc),
		Chat:       chat.NewHandler(svc, chatOpts...),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.Addr),
			zap.String("locale", cfg.Locale),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(srv, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
