package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Cache.PlannedItemsTTL != 5*time.Minute {
		t.Errorf("expected default planned items TTL 5m, got %v", cfg.Cache.PlannedItemsTTL)
	}
	if cfg.RateLimit.MaxRequests != 100 || cfg.RateLimit.Window != 15*time.Minute {
		t.Errorf("expected 100 requests per 15m, got %d per %v", cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("expected default model gemini-2.5-flash, got %s", cfg.Gemini.Model)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("CACHE_ACTUAL_ITEMS_TTL", "10s")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("SERVER_PORT", "not-a-number")

	cfg := Load()

	if cfg.Cache.BudgetTTL != time.Minute {
		t.Errorf("expected shared TTL 1m, got %v", cfg.Cache.BudgetTTL)
	}
	if cfg.Cache.ActualItemsTTL != 10*time.Second {
		t.Errorf("expected actual items TTL 10s, got %v", cfg.Cache.ActualItemsTTL)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected sqlite driver, got %s", cfg.Database.Driver)
	}
	if !cfg.Redis.Enabled {
		t.Error("expected redis enabled")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected fallback port 8080, got %d", cfg.Server.Port)
	}
}

func TestIsTest(t *testing.T) {
	t.Setenv("ENV", "test")
	if !Load().IsTest() {
		t.Error("expected test mode for ENV=test")
	}

	t.Setenv("ENV", "production")
	t.Setenv("E2E_MODE", "true")
	if !Load().IsTest() {
		t.Error("expected test mode for E2E_MODE=true")
	}
}
