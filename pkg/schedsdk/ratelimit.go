package schedsdk

import (
	"net/http"
	"strconv"
	"time"
)

// RateLimit is the endpoint rate limit state reported by the x-ratelimit
// response headers. The zero value means the response carried no rate limit
// headers.
type RateLimit struct {
	// Limit is the endpoint's request allowance per window.
	Limit int

	// Remaining is how many requests are left in the current window.
	Remaining int

	// Reset is when the window resets.
	Reset time.Time
}

// parseRateLimit extracts the rate limit headers. Missing or malformed
// headers yield the zero value; they are informational only.
func parseRateLimit(h http.Header) RateLimit {
	limit, err := strconv.Atoi(h.Get("x-ratelimit-limit"))
	if err != nil {
		return RateLimit{}
	}
	remaining, err := strconv.Atoi(h.Get("x-ratelimit-remaining"))
	if err != nil {
		return RateLimit{}
	}
	reset, err := strconv.ParseInt(h.Get("x-ratelimit-reset"), 10, 64)
	if err != nil {
		return RateLimit{}
	}

	return RateLimit{
		Limit:     limit,
		Remaining: remaining,
		Reset:     time.Unix(reset, 0).UTC(),
	}
}
