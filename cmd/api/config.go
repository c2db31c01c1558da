package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"mathengine-api/internal/mathengine"
)

// config is read from the environment after .env has been loaded.
type config struct {
	Addr            string
	LogLevel        string
	Locale          string
	OTelEnabled     bool
	OpenAIKey       string
	OpenAIBaseURL   string
	OpenAIModel     string
	ChatRateLimit   float64
	ChatRateBurst   int
	ShutdownTimeout time.Duration
}

func loadConfig() (config, error) {
	cfg := config{
		Addr:          getenv("ADDR", ":8080"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		Locale:        getenv("MATH_LOCALE", mathengine.DefaultLocale),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
	}

	var err error
	if cfg.OTelEnabled, err = strconv.ParseBool(getenv("OTEL_ENABLED", "true")); err != nil {
		return config{}, fmt.Errorf("parse OTEL_ENABLED: %w", err)
	}
	if cfg.ChatRateLimit, err = strconv.ParseFloat(getenv("CHAT_RATE_LIMIT", "5"), 64); err != nil {
		return config{}, fmt.Errorf("parse CHAT_RATE_LIMIT: %w", err)
	}
	if cfg.ChatRateBurst, err = strconv.Atoi(getenv("CHAT_RATE_BURST", "10")); err != nil {
		return config{}, fmt.Errorf("parse CHAT_RATE_BURST: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getenv("SHUTDOWN_TIMEOUT", "5s")); err != nil {
		return config{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
