package schedsdk

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/animeutils/animesched/pkg/httpx"
	"github.com/animeutils/animesched/pkg/oauthx"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://animeschedule.net/api/v3"

const defaultUserAgent = "animesched-go"

// Config configures a Client.
type Config struct {
	// BaseURL overrides the API root. Defaults to DefaultBaseURL.
	BaseURL string

	// Auth supplies the application token and, for list endpoints, the
	// user session. Required.
	Auth *oauthx.Authenticator

	// HTTPClient overrides the transport. Defaults to a rate-limited
	// client built from RateLimit and UserAgent.
	HTTPClient *http.Client

	// RateLimit bounds outbound request rate when HTTPClient is nil.
	// Zero value means httpx.DefaultLimit.
	RateLimit httpx.RateLimitConfig

	// UserAgent is stamped on outbound requests. Defaults to a library
	// identifier.
	UserAgent string

	// Logger receives request-level debug logging. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Client talks to the animeschedule.net v3 API. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	auth    *oauthx.Authenticator
	log     *slog.Logger
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Auth == nil {
		return nil, fmt.Errorf("schedsdk: authenticator is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		limit := cfg.RateLimit
		if limit == (httpx.RateLimitConfig{}) {
			limit = httpx.DefaultLimit
		}
		ua := cfg.UserAgent
		if ua == "" {
			ua = defaultUserAgent
		}
		httpClient = httpx.NewClient(httpx.NewLimiter(limit), ua, 30*time.Second)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		auth:    cfg.Auth,
		log:     logger,
	}, nil
}

// Auth exposes the authenticator backing this client, e.g. to run the
// login flow before the first list call.
func (c *Client) Auth() *oauthx.Authenticator { return c.auth }

func (c *Client) endpoint(parts ...string) string {
	return c.baseURL + "/" + strings.Join(parts, "/")
}
