package main

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"ADDR", "LOG_LEVEL", "MATH_LOCALE", "OTEL_ENABLED", "CHAT_RATE_LIMIT", "CHAT_RATE_BURST", "SHUTDOWN_TIMEOUT", "OPENAI_API_KEY"} {
		t.Setenv(key, "")
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("expected addr %q, got %q", ":8080", cfg.Addr)
	}
	if cfg.Locale != "ar-EG" {
		t.Fatalf("expected locale %q, got %q", "ar-EG", cfg.Locale)
	}
	if !cfg.OTelEnabled {
		t.Fatal("expected OTel enabled by default")
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("expected shutdown timeout 5s, got %s", cfg.ShutdownTimeout)
	}
	if cfg.ChatRateBurst != 10 {
		t.Fatalf("expected burst 10, got %d", cfg.ChatRateBurst)
	}
}

func TestLoadConfigOverridesAndErrors(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("MATH_LOCALE", "en-US")
	t.Setenv("OTEL_ENABLED", "false")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.Locale != "en-US" || cfg.OTelEnabled {
		t.Fatalf("overrides not applied: %+v", cfg)
	}

	t.Setenv("CHAT_RATE_BURST", "many")
	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error for non-numeric CHAT_RATE_BURST")
	}
}
