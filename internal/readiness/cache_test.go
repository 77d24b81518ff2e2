package readiness

import (
	"context"
	"testing"
	"time"

	"github.com/secureapi/secureapi/internal/config"
)

func TestOpenCacheUsesConfiguredAddr(t *testing.T) {
	client := OpenCache(config.CacheConfig{Addr: "redis:6379", DB: 2})
	defer func() { _ = client.Close() }()

	if got := client.Options().Addr; got != "redis:6379" {
		t.Fatalf("Addr = %q", got)
	}
	if got := client.Options().DB; got != 2 {
		t.Fatalf("DB = %d", got)
	}
}

func TestCacheCheckReportsUnreachableServer(t *testing.T) {
	client := OpenCache(config.CacheConfig{Addr: "127.0.0.1:1"})
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := Cache(client)(ctx); err == nil {
		t.Fatal("expected error")
	}
}
