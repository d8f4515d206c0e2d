package oauthx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRevokeToken(t *testing.T) {
	t.Parallel()

	t.Run("revokes and clears access token", func(t *testing.T) {
		t.Parallel()

		var gotToken, gotHint string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotToken = r.PostForm.Get("token")
			gotHint = r.PostForm.Get("token_type_hint")
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(srv.Close)

		a, err := New(Config{
			ClientID:    "test-client",
			RedirectURI: "http://127.0.0.1:18423/callback",
			RevokeURL:   srv.URL,
		})
		require.NoError(t, err)
		a.SetAccessToken("at-1")
		a.SetRefreshToken("rt-1")

		require.NoError(t, a.RevokeToken(context.Background()))
		require.Equal(t, "at-1", gotToken)
		require.Equal(t, "access_token", gotHint)
		require.Empty(t, a.AccessToken())
		require.Equal(t, "rt-1", a.RefreshToken(), "refresh token untouched")
	})

	t.Run("no-op without access token", func(t *testing.T) {
		t.Parallel()

		a, err := New(Config{
			ClientID:    "test-client",
			RedirectURI: "http://127.0.0.1:18423/callback",
			RevokeURL:   "http://127.0.0.1:1/revoke", // would fail if contacted
		})
		require.NoError(t, err)

		require.NoError(t, a.RevokeToken(context.Background()))
	})

	t.Run("failure keeps token", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		t.Cleanup(srv.Close)

		a, err := New(Config{
			ClientID:    "test-client",
			RedirectURI: "http://127.0.0.1:18423/callback",
			RevokeURL:   srv.URL,
		})
		require.NoError(t, err)
		a.SetAccessToken("at-1")

		err = a.RevokeToken(context.Background())

		var exchErr *ExchangeError
		require.ErrorAs(t, err, &exchErr)
		require.Equal(t, http.StatusServiceUnavailable, exchErr.StatusCode)
		require.Equal(t, "at-1", a.AccessToken())
	})
}

func TestRevokeRefreshToken(t *testing.T) {
	t.Parallel()

	var gotHint string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotHint = r.PostForm.Get("token_type_hint")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	a, err := New(Config{
		ClientID:    "test-client",
		RedirectURI: "http://127.0.0.1:18423/callback",
		RevokeURL:   srv.URL,
	})
	require.NoError(t, err)
	a.SetAccessToken("at-1")
	a.SetRefreshToken("rt-1")

	require.NoError(t, a.RevokeRefreshToken(context.Background()))
	require.Equal(t, "refresh_token", gotHint)
	require.Empty(t, a.RefreshToken())
	require.Equal(t, "at-1", a.AccessToken(), "access token untouched")
}
