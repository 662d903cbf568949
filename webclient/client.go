// Package webclient gets JSON documents from remote price services.
//
// Requests are paced with a token bucket, transient failures (network errors,
// 429 and 5xx) are retried with an exponential backoff, and a circuit breaker
// stops calling a host that keeps failing.
package webclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// UserAgent is sent with every request, some services reject Go's default one.
const UserAgent = "Mozilla/5.0 (compatible; savesim/1.0)"

// StatusError is returned for non 200 responses.
type StatusError struct {
	Code   int
	Status string
	Host   string
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot http GET %v%v: %v", e.Host, e.Path, e.Status)
}

// Temporary reports whether retrying the request might succeed.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// Client gets JSON documents. The zero value is not usable, use New.
type Client struct {
	HTTP    *http.Client
	Limiter *rate.Limiter
	Breaker *gobreaker.CircuitBreaker
	// MaxElapsed bounds the time spent retrying a single request.
	MaxElapsed time.Duration
}

// Settings of a Client.
type Settings struct {
	Name       string  // breaker name, usually the service host
	RPS        float64 // requests per second, unlimited when 0
	Burst      int
	MaxElapsed time.Duration
	// ConsecutiveFailures opens the breaker, 5 when 0.
	ConsecutiveFailures uint32
}

// New returns a Client over httpClient, http.DefaultClient when nil.
func New(httpClient *http.Client, s Settings) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	limit := rate.Inf
	if s.RPS > 0 {
		limit = rate.Limit(s.RPS)
	}
	burst := max(s.Burst, 1)
	failures := s.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}
	return &Client{
		HTTP:       httpClient,
		Limiter:    rate.NewLimiter(limit, burst),
		MaxElapsed: s.MaxElapsed,
		Breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    s.Name,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("circuit breaker state changed")
			},
		}),
	}
}

// GetJSON gets addr and unmarshals the JSON response body into data.
func (c *Client) GetJSON(ctx context.Context, addr string, data any) error {
	body, err := c.Get(ctx, addr)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}

// Get returns the body of a successful GET on addr, retrying transient failures.
func (c *Client) Get(ctx context.Context, addr string) ([]byte, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	if c.MaxElapsed > 0 {
		b.MaxElapsedTime = c.MaxElapsed
	}

	var body []byte
	operation := func() error {
		if err := c.Limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		res, err := c.Breaker.Execute(func() (any, error) {
			body, err := c.get(ctx, addr)
			var status *StatusError
			if errors.As(err, &status) && !status.Temporary() {
				// the host is fine, the request is at fault
				return status, nil
			}
			return body, err
		})
		if err != nil {
			return retryable(err)
		}
		if status, ok := res.(*StatusError); ok {
			return backoff.Permanent(status)
		}
		body = res.([]byte)
		return nil
	}
	notify := func(err error, wait time.Duration) {
		log.Debug().Err(err).Dur("wait", wait).Msg("retrying")
	}
	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, err
	}
	return body, nil
}

// retryable marks errors that retrying cannot fix as permanent.
func retryable(err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return backoff.Permanent(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return backoff.Permanent(err)
	}
	return err
}

func (c *Client) get(ctx context.Context, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, Host: req.URL.Host, Path: req.URL.Path}
	}
	return io.ReadAll(resp.Body)
}
