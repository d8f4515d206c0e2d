// Package httpx provides outbound HTTP plumbing shared by the API client:
// a rate-limited RoundTripper and a preconfigured http.Client.
package httpx

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines the client-side request budget. animeschedule.net
// enforces a per-window quota on its side; throttling outbound requests
// below that quota avoids burning it on bursts.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the steady rate
	Burst int
}

// DefaultLimit matches the documented public quota of the v3 API.
var DefaultLimit = RateLimitConfig{
	RequestsPerWindow: 120,
	Window:            time.Minute,
	Burst:             10,
}

// NewLimiter builds a token-bucket limiter from a config.
func NewLimiter(config RateLimitConfig) *rate.Limiter {
	perSecond := float64(config.RequestsPerWindow) / config.Window.Seconds()
	return rate.NewLimiter(rate.Limit(perSecond), config.Burst)
}

// Transport is an http.RoundTripper that waits on a shared rate limiter
// before each request and stamps a User-Agent header. A nil Limiter disables
// throttling; a nil Base falls back to http.DefaultTransport.
type Transport struct {
	Base      http.RoundTripper
	Limiter   *rate.Limiter
	UserAgent string
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("httpx: rate limiter wait: %w", err)
		}
	}

	if t.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		// Per RoundTripper contract the request must not be mutated.
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.UserAgent)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// NewClient returns an http.Client with the rate-limited transport installed.
func NewClient(limiter *rate.Limiter, userAgent string, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &Transport{
			Limiter:   limiter,
			UserAgent: userAgent,
		},
	}
}
