package oauthx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newAuthWithTokenURL(t *testing.T, tokenURL string) *Authenticator {
	t.Helper()

	a, err := New(Config{
		ClientID:    "test-client",
		RedirectURI: "http://127.0.0.1:18423/callback",
		TokenURL:    tokenURL,
	})
	require.NoError(t, err)
	return a
}

func TestRefreshRotatesTokens(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		require.Equal(t, "rt-1", r.PostForm.Get("refresh_token"))
		require.Equal(t, "test-client", r.PostForm.Get("client_id"))

		json.NewEncoder(w).Encode(TokenResponse{
			AccessToken:  "at-2",
			TokenType:    "Bearer",
			ExpiresIn:    3600,
			RefreshToken: "rt-2",
		})
	}))
	t.Cleanup(srv.Close)

	a := newAuthWithTokenURL(t, srv.URL)
	a.Restore("at-1", "rt-1", time.Now().Add(-time.Minute))

	require.NoError(t, a.Refresh(context.Background()))
	require.Equal(t, "at-2", a.AccessToken())
	require.Equal(t, "rt-2", a.RefreshToken())
	require.False(t, a.IsExpired())
}

func TestRefreshKeepsRefreshTokenWhenOmitted(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TokenResponse{
			AccessToken: "at-2",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
		})
	}))
	t.Cleanup(srv.Close)

	a := newAuthWithTokenURL(t, srv.URL)
	a.Restore("at-1", "rt-1", time.Now().Add(-time.Minute))

	require.NoError(t, a.Refresh(context.Background()))
	require.Equal(t, "at-2", a.AccessToken())
	require.Equal(t, "rt-1", a.RefreshToken(), "omitted refresh_token keeps the old one")
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)
	a.SetAccessToken("at-only")

	err := a.Refresh(context.Background())
	require.ErrorIs(t, err, ErrMissingRefreshToken)
	require.Equal(t, "at-only", a.AccessToken(), "record untouched")
}

func TestRefreshFailurePreservesRecord(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(Error{Code: "invalid_grant", Description: "refresh token revoked"})
	}))
	t.Cleanup(srv.Close)

	a := newAuthWithTokenURL(t, srv.URL)
	exp := time.Now().Add(-time.Minute)
	a.Restore("at-stale", "rt-stale", exp)

	err := a.Refresh(context.Background())

	var exchErr *ExchangeError
	require.ErrorAs(t, err, &exchErr)
	require.Equal(t, GrantRefreshToken, exchErr.Grant)
	require.Equal(t, http.StatusBadRequest, exchErr.StatusCode)
	require.NotNil(t, exchErr.OAuth)
	require.Equal(t, "invalid_grant", exchErr.OAuth.Code)
	require.Contains(t, err.Error(), "refresh token revoked")

	require.Equal(t, "at-stale", a.AccessToken())
	require.Equal(t, "rt-stale", a.RefreshToken())
	require.Equal(t, exp, a.ExpiresAt())
}

func TestRequestTokenDecodesErrors(t *testing.T) {
	t.Parallel()

	t.Run("non-json error body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gateway timeout", http.StatusBadGateway)
		}))
		t.Cleanup(srv.Close)

		a := newAuthWithTokenURL(t, srv.URL)
		_, err := a.requestToken(context.Background(), GrantRefreshToken, nil)

		var exchErr *ExchangeError
		require.ErrorAs(t, err, &exchErr)
		require.Equal(t, http.StatusBadGateway, exchErr.StatusCode)
		require.Nil(t, exchErr.OAuth)
	})

	t.Run("success without access token", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token_type":"Bearer"}`))
		}))
		t.Cleanup(srv.Close)

		a := newAuthWithTokenURL(t, srv.URL)
		_, err := a.requestToken(context.Background(), GrantAuthorizationCode, nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "missing access_token")
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		t.Parallel()

		a := newAuthWithTokenURL(t, "http://127.0.0.1:1/token")
		_, err := a.requestToken(context.Background(), GrantRefreshToken, nil)

		var exchErr *ExchangeError
		require.ErrorAs(t, err, &exchErr)
		require.Zero(t, exchErr.StatusCode)
		require.Error(t, exchErr.Unwrap())
	})
}

func TestTryRefresh(t *testing.T) {
	t.Parallel()

	t.Run("refreshes when refresh token present", func(t *testing.T) {
		t.Parallel()

		srv, grants := newTokenServer(t, "at-2", "rt-2", 3600)
		a := newAuthWithTokenURL(t, srv.URL)
		a.Restore("at-1", "rt-1", time.Now().Add(-time.Minute))

		require.NoError(t, a.TryRefresh(context.Background()))
		require.Equal(t, []string{"refresh_token"}, *grants)
		require.Equal(t, "at-2", a.AccessToken())
	})

	t.Run("regenerates when no refresh token", func(t *testing.T) {
		t.Parallel()

		srv, grants := newTokenServer(t, "at-2", "rt-2", 3600)
		a := newAuthWithTokenURL(t, srv.URL)
		a.SetCallback(func(ctx context.Context, authorizeURL, state string) (string, string, error) {
			return "code", state, nil
		})

		require.NoError(t, a.TryRefresh(context.Background()))
		require.Equal(t, []string{"authorization_code"}, *grants)
		require.Equal(t, "at-2", a.AccessToken())
	})

	t.Run("falls back to regenerate when refresh fails", func(t *testing.T) {
		t.Parallel()

		var grants []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			grant := r.PostForm.Get("grant_type")
			grants = append(grants, grant)

			if grant == "refresh_token" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(Error{Code: "invalid_grant"})
				return
			}
			json.NewEncoder(w).Encode(TokenResponse{
				AccessToken:  "at-2",
				TokenType:    "Bearer",
				ExpiresIn:    3600,
				RefreshToken: "rt-2",
			})
		}))
		t.Cleanup(srv.Close)

		a := newAuthWithTokenURL(t, srv.URL)
		a.Restore("at-1", "rt-1", time.Now().Add(-time.Minute))
		a.SetCallback(func(ctx context.Context, authorizeURL, state string) (string, string, error) {
			return "code", state, nil
		})

		require.NoError(t, a.TryRefresh(context.Background()))
		require.Equal(t, []string{"refresh_token", "authorization_code"}, grants)
		require.Equal(t, "at-2", a.AccessToken())
		require.Equal(t, "rt-2", a.RefreshToken())
	})
}

func TestTokenRefreshesExpiredSession(t *testing.T) {
	t.Parallel()

	srv, _ := newTokenServer(t, "at-2", "rt-2", 3600)
	a := newAuthWithTokenURL(t, srv.URL)
	a.Restore("at-1", "rt-1", time.Now().Add(-time.Minute))

	tok, err := a.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "at-2", tok)
}

func TestStoreZeroExpiresIn(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)
	a.Restore("old", "old-rt", time.Now().Add(time.Hour))

	a.store(&TokenResponse{AccessToken: "at", RefreshToken: "rt"}, false)
	require.True(t, a.ExpiresAt().IsZero())
	require.False(t, a.IsExpired(), "token without expiry counts as valid")
}
