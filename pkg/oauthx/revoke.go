package oauthx

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// RevokeToken asks the authorization server to invalidate the stored access
// token, then clears it locally. A no-op when no access token is stored.
func (a *Authenticator) RevokeToken(ctx context.Context) error {
	token := a.AccessToken()
	if token == "" {
		return nil
	}

	if err := a.revoke(ctx, token, "access_token"); err != nil {
		return err
	}

	a.mu.Lock()
	a.accessToken = ""
	a.mu.Unlock()
	return nil
}

// RevokeRefreshToken asks the authorization server to invalidate the stored
// refresh token, then clears it locally. A no-op when none is stored.
func (a *Authenticator) RevokeRefreshToken(ctx context.Context) error {
	token := a.RefreshToken()
	if token == "" {
		return nil
	}

	if err := a.revoke(ctx, token, "refresh_token"); err != nil {
		return err
	}

	a.mu.Lock()
	a.refreshToken = ""
	a.mu.Unlock()
	return nil
}

// revoke performs one RFC 7009 revocation request.
func (a *Authenticator) revoke(ctx context.Context, token, hint string) error {
	form := url.Values{}
	form.Set("token", token)
	form.Set("token_type_hint", hint)
	form.Set("client_id", a.clientID)
	if a.clientSecret != "" {
		form.Set("client_secret", a.clientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.revokeURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return &ExchangeError{Grant: "revoke", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := a.http.Do(req)
	if err != nil {
		return &ExchangeError{Grant: "revoke", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		return &ExchangeError{
			Grant:      "revoke",
			StatusCode: res.StatusCode,
			OAuth:      parseErrorResponse(body),
		}
	}

	io.Copy(io.Discard, res.Body)
	return nil
}
