// Package ratelimit limits how many api requests a client can make in a
// fixed window of time.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/metrics"
	"github.com/itbasis/go-clock"
	"github.com/sirupsen/logrus"
)

const (
	DefaultLimit  = 10
	DefaultWindow = time.Minute
)

type Limiter interface {
	// Allow counts a request for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps the windows in memory. Only suitable for a single instance.
type MemoryLimiter struct {
	clock  clock.Clock
	limit  int
	length time.Duration

	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
}

func NewMemory(clock clock.Clock, limit int, length time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		clock:   clock,
		limit:   limit,
		length:  length,
		windows: make(map[string]*window),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.sweep(now)

	w, found := l.windows[key]
	if !found || !now.Before(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.length)}
		return true, nil
	}
	if w.count >= l.limit {
		return false, nil
	}
	w.count++
	return true, nil
}

// sweep drops expired windows, at most once per window length.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.length {
		return
	}
	l.lastSweep = now
	for k, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, k)
		}
	}
}

// ClientIP is the default key of the middleware. chi's RealIP middleware
// should run first when the server is behind a proxy.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware rejects requests over the limit with a 429. Requests are let
// through when the limiter fails.
func Middleware(l Limiter, window time.Duration, key func(*http.Request) string) func(http.Handler) http.Handler {
	if key == nil {
		key = ClientIP
	}
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := l.Allow(r.Context(), key(r))
			if err != nil {
				logrus.WithError(err).Warn("rate limiter failed, allowing request")
				ok = true
			}
			if !ok {
				metrics.RateLimited.Inc()
				w.Header().Set("Retry-After", retryAfter)
				w.Header().Set("Content-Type", "application/json; charset=UTF-8")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error": "Rate limit exceeded. Try again in a minute."}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
