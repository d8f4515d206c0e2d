package oauthx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// TokenResponse is the token endpoint's success payload.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// GrantAuthorizationCode and GrantRefreshToken name the two token endpoint
// grants this package performs, for ExchangeError reporting.
const (
	GrantAuthorizationCode = "authorization_code"
	GrantRefreshToken      = "refresh_token"
)

// exchangeCode swaps an authorization code for a token pair.
func (a *Authenticator) exchangeCode(ctx context.Context, code, verifier string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", GrantAuthorizationCode)
	form.Set("code", code)
	form.Set("redirect_uri", a.redirectURI)
	form.Set("client_id", a.clientID)
	if a.clientSecret != "" {
		form.Set("client_secret", a.clientSecret)
	}
	form.Set("code_verifier", verifier)

	return a.requestToken(ctx, GrantAuthorizationCode, form)
}

// Refresh exchanges the stored refresh token for a new token pair. On any
// failure the stored record is left untouched, so callers can still inspect
// the stale session. A success response that omits refresh_token keeps the
// current refresh token.
func (a *Authenticator) Refresh(ctx context.Context) error {
	refresh := a.RefreshToken()
	if refresh == "" {
		return ErrMissingRefreshToken
	}

	form := url.Values{}
	form.Set("grant_type", GrantRefreshToken)
	form.Set("refresh_token", refresh)
	form.Set("client_id", a.clientID)
	if a.clientSecret != "" {
		form.Set("client_secret", a.clientSecret)
	}

	resp, err := a.requestToken(ctx, GrantRefreshToken, form)
	if err != nil {
		return err
	}

	a.store(resp, true)
	return nil
}

// TryRefresh obtains a valid session by the cheapest available route: a
// refresh-token grant when one is stored, falling back to the full
// authorization flow when there is no refresh token or the grant fails.
func (a *Authenticator) TryRefresh(ctx context.Context) error {
	if a.RefreshToken() == "" {
		return a.Regenerate(ctx)
	}

	if err := a.Refresh(ctx); err != nil {
		a.log.Debug("refresh grant failed, re-running authorization",
			"error", err)
		return a.Regenerate(ctx)
	}
	return nil
}

// requestToken performs one form-encoded POST against the token endpoint and
// decodes the response. Non-2xx responses become an *ExchangeError carrying
// the endpoint's RFC 6749 error payload when one was sent.
func (a *Authenticator) requestToken(ctx context.Context, grant string, form url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &ExchangeError{Grant: grant, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	res, err := a.http.Do(req)
	if err != nil {
		return nil, &ExchangeError{Grant: grant, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, &ExchangeError{Grant: grant, StatusCode: res.StatusCode, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &ExchangeError{
			Grant:      grant,
			StatusCode: res.StatusCode,
			OAuth:      parseErrorResponse(body),
		}
	}

	var tr TokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, &ExchangeError{Grant: grant, StatusCode: res.StatusCode, Err: err}
	}
	if tr.AccessToken == "" {
		return nil, &ExchangeError{
			Grant:      grant,
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("token response missing access_token"),
		}
	}

	return &tr, nil
}

// parseErrorResponse decodes an RFC 6749 error body. Returns nil when the
// body is not a recognisable error payload.
func parseErrorResponse(body []byte) *Error {
	var oe Error
	if err := json.Unmarshal(body, &oe); err != nil || oe.Code == "" {
		return nil
	}
	return &oe
}
