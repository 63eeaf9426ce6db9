package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/containers"
)

func TestRedisLimiter(t *testing.T) {
	container := containers.NewRedisContainer()
	defer container.Shutdown()

	ctx := context.Background()
	l, err := NewRedis(ctx, container.URL(), 2, 2*time.Second)
	if err != nil {
		t.Fatalf("error connecting to redis: %v", err)
	}
	defer l.Close()

	for i, expected := range []bool{true, true, false, false} {
		got, err := l.Allow(ctx, "198.51.100.1")
		if err != nil {
			t.Fatalf("request %d - unexpected error: %v", i, err)
		}
		if got != expected {
			t.Errorf("request %d - wanted: '%v', got: '%v'", i, expected, got)
		}
	}

	if ok, _ := l.Allow(ctx, "198.51.100.2"); !ok {
		t.Errorf("expected another client to be allowed")
	}

	ttl, err := l.client.TTL(ctx, keyPrefix+"198.51.100.1").Result()
	if err != nil || ttl <= 0 || ttl > 2*time.Second {
		t.Errorf("expected the window to expire, ttl: %v, err: %v", ttl, err)
	}

	// The key expires with the window
	time.Sleep(2100 * time.Millisecond)
	if ok, _ := l.Allow(ctx, "198.51.100.1"); !ok {
		t.Errorf("expected a new window after expiry")
	}
}

func TestNewRedis_badURL(t *testing.T) {
	if _, err := NewRedis(context.Background(), "not a url", 1, time.Second); err == nil {
		t.Errorf("expected an error for an invalid url")
	}
}
