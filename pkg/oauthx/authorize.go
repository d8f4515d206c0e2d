package oauthx

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/animeutils/animesched/pkg/cryptox"
	"github.com/animeutils/animesched/pkg/idx"
)

// pendingAuth tracks one in-flight authorization-code attempt. The state
// value binds the browser redirect back to this attempt; the verifier is
// the PKCE secret disclosed only at the token endpoint.
type pendingAuth struct {
	id       idx.ID
	state    string
	verifier string
	scopes   []string
}

// buildAuthorizeURL builds the user-facing authorization URL for p.
func (a *Authenticator) buildAuthorizeURL(p *pendingAuth) string {
	challenge := sha256.Sum256([]byte(p.verifier))

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", a.clientID)
	q.Set("redirect_uri", a.redirectURI)
	if len(p.scopes) > 0 {
		q.Set("scope", strings.Join(p.scopes, " "))
	}
	q.Set("state", p.state)
	q.Set("code_challenge", base64.RawURLEncoding.EncodeToString(challenge[:]))
	q.Set("code_challenge_method", "S256")

	return a.authorizeURL + "?" + q.Encode()
}

// Regenerate runs the full authorization-code flow from scratch: it discards
// any stored token record, generates fresh state and PKCE material, hands the
// authorization URL to the configured callback, verifies the returned state,
// and exchanges the code for a new token pair.
//
// Any previous pending attempt is superseded; a redirect carrying the old
// attempt's state fails verification. When two Regenerate calls race, both
// may complete and the last to finish owns the stored record.
func (a *Authenticator) Regenerate(ctx context.Context) error {
	cb, err := a.resolveCallback()
	if err != nil {
		return err
	}

	p := &pendingAuth{
		id:       idx.New(),
		state:    cryptox.MustGenerateToken(cryptox.TokenSize128),
		verifier: cryptox.MustGenerateToken(cryptox.TokenSize256),
	}

	a.mu.Lock()
	a.accessToken = ""
	a.refreshToken = ""
	a.expiresAt = time.Time{}
	p.scopes = slices.Clone(a.scopes)
	a.pending = p
	a.mu.Unlock()

	authURL := a.buildAuthorizeURL(p)

	a.log.Debug("starting authorization attempt",
		slog.String("attempt", p.id.String()),
		slog.String("scopes", strings.Join(p.scopes, " ")))

	code, returnedState, err := cb(ctx, authURL, p.state)
	if err != nil {
		return err
	}

	if !a.verifyState(returnedState) {
		a.log.Warn("authorization state mismatch",
			slog.String("attempt", p.id.String()))
		return ErrStateMismatch
	}

	resp, err := a.exchangeCode(ctx, code, p.verifier)
	if err != nil {
		return err
	}

	a.store(resp, false)
	a.clearPending(p)

	a.log.Debug("authorization attempt complete",
		slog.String("attempt", p.id.String()))
	return nil
}

// verifyState compares s against the state of the current pending attempt
// in constant time. A superseded attempt's state no longer matches.
func (a *Authenticator) verifyState(s string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.pending == nil || s == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a.pending.state), []byte(s)) == 1
}

// clearPending drops the pending attempt if it is still p. A newer attempt
// installed meanwhile is left alone.
func (a *Authenticator) clearPending(p *pendingAuth) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == p {
		a.pending = nil
	}
}
