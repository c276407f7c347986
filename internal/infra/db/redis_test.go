package db

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/smartspend/backend/config"
)

func TestNewRedisConnection(t *testing.T) {
	miniRedis := miniredis.RunT(t)

	r, err := NewRedisConnection(&config.RedisConfig{URL: "redis://" + miniRedis.Addr() + "/0", DB: 2})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = r.Close() }()

	if !r.HealthCheck() {
		t.Error("expected healthy redis")
	}
	if got := r.Client().Options().DB; got != 2 {
		t.Errorf("expected DB override 2, got %d", got)
	}

	miniRedis.Close()
	if r.HealthCheck() {
		t.Error("expected unhealthy redis after server stopped")
	}
}

func TestNewRedisConnectionBadURL(t *testing.T) {
	if _, err := NewRedisConnection(&config.RedisConfig{URL: "not a url"}); err == nil {
		t.Error("expected error for invalid url")
	}
}
