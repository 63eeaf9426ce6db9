// Package fetch is the HTTP plumbing shared by the data source clients: a
// fixed delay between requests, bounded retries with exponential backoff, and
// status code checks.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/metrics"
	"github.com/itbasis/go-clock"
	"github.com/sirupsen/logrus"
)

const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// StatusError is returned when the server responds with anything but a 200.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

func (e *StatusError) retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// RetryPolicy retries failed requests with exponential backoff, multiplying
// the delay by 1.5 after every attempt and capping it at MaxDelay.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

var (
	DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, InitialDelay: 2 * time.Second, MaxDelay: 30 * time.Second}
	NoRetry            = RetryPolicy{MaxAttempts: 1}
)

// Requester makes GET requests, waiting at least delay between the start of
// two requests.
type Requester struct {
	httpClient *http.Client
	clock      clock.Clock
	delay      time.Duration
	retry      RetryPolicy
	source     string

	mu   sync.Mutex
	last time.Time
}

func New(source string, clock clock.Clock, delay time.Duration, retry RetryPolicy) *Requester {
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}
	return &Requester{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		clock:  clock,
		delay:  delay,
		retry:  retry,
		source: source,
	}
}

// Get returns the body of a successful response.
func (r *Requester) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	start := r.clock.Now()
	body, err := r.getWithRetry(ctx, url, headers)
	metrics.ObserveScrape(r.source, r.clock.Now().Sub(start), err)
	return body, err
}

func (r *Requester) getWithRetry(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	var lastErr error
	delay := r.retry.InitialDelay

	for attempt := 1; attempt <= r.retry.MaxAttempts; attempt++ {
		body, err := r.get(ctx, url, headers)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var se *StatusError
		if errors.As(err, &se) && !se.retryable() {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}

		if attempt < r.retry.MaxAttempts {
			logrus.WithFields(logrus.Fields{
				"source":  r.source,
				"attempt": attempt,
			}).WithError(err).Warn("request failed, retrying")

			if err := r.sleep(ctx, delay); err != nil {
				return nil, err
			}
			delay = min(time.Duration(float64(delay)*1.5), r.retry.MaxDelay)
		}
	}

	if r.retry.MaxAttempts == 1 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("failed after %d attempts: %w", r.retry.MaxAttempts, lastErr)
}

// GetJSON decodes the body of a successful response into v.
func (r *Requester) GetJSON(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := r.Get(ctx, url, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("error parsing response from %s: %w", r.source, err)
	}
	return nil
}

func (r *Requester) get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	if err := r.throttle(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	return body, nil
}

func (r *Requester) throttle(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.delay > 0 && !r.last.IsZero() {
		if wait := r.delay - r.clock.Now().Sub(r.last); wait > 0 {
			if err := r.sleep(ctx, wait); err != nil {
				return err
			}
		}
	}
	r.last = r.clock.Now()
	return nil
}

func (r *Requester) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.clock.After(d):
		return nil
	}
}
