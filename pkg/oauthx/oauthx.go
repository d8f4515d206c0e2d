package oauthx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"
)

// Endpoint defaults for the animeschedule.net v3 API.
const (
	DefaultAuthorizeURL = "https://animeschedule.net/api/v3/oauth2/authorize"
	DefaultTokenURL     = "https://animeschedule.net/api/v3/oauth2/token"
	DefaultRevokeURL    = "https://animeschedule.net/api/v3/oauth2/revoke"
)

// Config carries the OAuth2 client credentials and endpoint locations.
// Values are copied at construction time and never mutated afterwards.
type Config struct {
	// ClientID identifies the registered application. Required.
	ClientID string

	// ClientSecret authenticates the application at the token endpoint.
	ClientSecret string

	// AppToken is the static application bearer token used by public
	// (non user-scoped) API endpoints.
	AppToken string

	// RedirectURI is where the authorization server sends the browser back
	// to. Required; must match the URI registered with the API.
	RedirectURI string

	// AuthorizeURL, TokenURL and RevokeURL override the production endpoint
	// locations. Mainly useful in tests.
	AuthorizeURL string
	TokenURL     string
	RevokeURL    string

	// HTTPClient performs the token endpoint exchanges. Defaults to a
	// client with a 10 second timeout.
	HTTPClient *http.Client

	// Logger receives flow-level debug logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Authenticator owns one OAuth2 session: the current access/refresh token
// pair, its expiry, the requested scopes, and any in-flight authorization
// attempt. See the package documentation for the concurrency contract.
type Authenticator struct {
	clientID     string
	clientSecret string
	appToken     string
	redirectURI  string
	authorizeURL string
	tokenURL     string
	revokeURL    string

	http *http.Client
	log  *slog.Logger

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	scopes       []string
	pending      *pendingAuth

	cbMu     sync.Mutex
	callback CallbackFunc
	server   *callbackServerConfig

	now func() time.Time // test hook
}

// New validates cfg and returns an Authenticator with an empty token record.
func New(cfg Config) (*Authenticator, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("oauthx: client id is required")
	}
	if cfg.RedirectURI == "" {
		return nil, fmt.Errorf("oauthx: redirect uri is required")
	}
	if _, err := url.Parse(cfg.RedirectURI); err != nil {
		return nil, fmt.Errorf("oauthx: invalid redirect uri: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &Authenticator{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		appToken:     cfg.AppToken,
		redirectURI:  cfg.RedirectURI,
		authorizeURL: cfg.AuthorizeURL,
		tokenURL:     cfg.TokenURL,
		revokeURL:    cfg.RevokeURL,
		http:         httpClient,
		log:          logger,
		now:          time.Now,
	}
	if a.authorizeURL == "" {
		a.authorizeURL = DefaultAuthorizeURL
	}
	if a.tokenURL == "" {
		a.tokenURL = DefaultTokenURL
	}
	if a.revokeURL == "" {
		a.revokeURL = DefaultRevokeURL
	}

	return a, nil
}

// AppToken returns the static application bearer token.
func (a *Authenticator) AppToken() string { return a.appToken }

// ClientID returns the configured OAuth2 client id.
func (a *Authenticator) ClientID() string { return a.clientID }

// AddScope appends a scope to the set requested by future authorization
// attempts. Duplicates are ignored. Adding a scope has no effect on an
// already-issued token; it applies from the next Regenerate onwards.
func (a *Authenticator) AddScope(scope string) {
	if scope == "" {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if !slices.Contains(a.scopes, scope) {
		a.scopes = append(a.scopes, scope)
	}
}

// Scopes returns a copy of the currently requested scopes.
func (a *Authenticator) Scopes() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.scopes)
}

// AccessToken returns the stored access token, or the empty string when no
// session exists. No freshness check is performed; combine with IsExpired.
func (a *Authenticator) AccessToken() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.accessToken
}

// RefreshToken returns the stored refresh token, or the empty string.
func (a *Authenticator) RefreshToken() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.refreshToken
}

// ExpiresAt returns the instant the access token becomes invalid, or the
// zero time when no expiry is recorded.
func (a *Authenticator) ExpiresAt() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.expiresAt
}

// SetAccessToken overwrites the stored access token without any exchange.
// The token is not validated; a bad value surfaces as API errors later.
func (a *Authenticator) SetAccessToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accessToken = token
}

// SetRefreshToken overwrites the stored refresh token without any exchange.
func (a *Authenticator) SetRefreshToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refreshToken = token
}

// SetExpiresIn records the access token as expiring d from now.
// Manual setters are last-write-wins against concurrent refreshes.
func (a *Authenticator) SetExpiresIn(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.expiresAt = a.now().Add(d)
}

// Restore installs a previously persisted session, e.g. from the token
// cache. Equivalent to the individual setters but atomic.
func (a *Authenticator) Restore(accessToken, refreshToken string, expiresAt time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accessToken = accessToken
	a.refreshToken = refreshToken
	a.expiresAt = expiresAt
}

// Reset clears the token record and any pending authorization attempt.
func (a *Authenticator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accessToken = ""
	a.refreshToken = ""
	a.expiresAt = time.Time{}
	a.pending = nil
}

// IsExpired reports whether a protected request needs a fresh token first:
// true when no access token is stored at all, or when an expiry is recorded
// and has passed. A token with no recorded expiry counts as valid.
func (a *Authenticator) IsExpired() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.accessToken == "" {
		return true
	}
	return !a.expiresAt.IsZero() && !a.expiresAt.After(a.now())
}

// Valid reports whether a usable session is stored. Inverse of IsExpired.
func (a *Authenticator) Valid() bool { return !a.IsExpired() }

// Token implements the "get a valid token" contract used by the API client:
// it returns the stored access token, first refreshing or re-running the
// authorization flow when the stored one has expired.
func (a *Authenticator) Token(ctx context.Context) (string, error) {
	if !a.IsExpired() {
		return a.AccessToken(), nil
	}

	if err := a.TryRefresh(ctx); err != nil {
		return "", err
	}
	return a.AccessToken(), nil
}

// store replaces the token record from a successful exchange response.
// keepRefresh preserves the current refresh token when the endpoint did not
// rotate it (refresh responses may omit the field).
func (a *Authenticator) store(resp *TokenResponse, keepRefresh bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.accessToken = resp.AccessToken
	if resp.RefreshToken != "" || !keepRefresh {
		a.refreshToken = resp.RefreshToken
	}
	if resp.ExpiresIn > 0 {
		// The API reports a fixed 3600s window regardless of true remaining
		// life; stored verbatim.
		a.expiresAt = a.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	} else {
		a.expiresAt = time.Time{}
	}
}
