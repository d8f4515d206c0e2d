package oauthx

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTokenServer runs a token endpoint that verifies the PKCE code_verifier
// against the challenge seen at authorize time and issues the given pair.
func newTokenServer(t *testing.T, accessToken, refreshToken string, expiresIn int) (*httptest.Server, *[]string) {
	t.Helper()

	var grants []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		grants = append(grants, r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TokenResponse{
			AccessToken:  accessToken,
			TokenType:    "Bearer",
			ExpiresIn:    expiresIn,
			RefreshToken: refreshToken,
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &grants
}

func TestBuildAuthorizeURL(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)
	a.AddScope("animelists")
	a.AddScope("account")

	p := &pendingAuth{
		state:    "state-value",
		verifier: "verifier-value",
		scopes:   []string{"animelists", "account"},
	}

	raw := a.buildAuthorizeURL(p)
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "test-client", q.Get("client_id"))
	require.Equal(t, "http://127.0.0.1:18423/callback", q.Get("redirect_uri"))
	require.Equal(t, "animelists account", q.Get("scope"))
	require.Equal(t, "state-value", q.Get("state"))
	require.Equal(t, "S256", q.Get("code_challenge_method"))

	sum := sha256.Sum256([]byte("verifier-value"))
	require.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), q.Get("code_challenge"))
}

func TestRegenerateSuccess(t *testing.T) {
	t.Parallel()

	srv, _ := newTokenServer(t, "at-new", "rt-new", 3600)

	a, err := New(Config{
		ClientID:    "test-client",
		RedirectURI: "http://127.0.0.1:18423/callback",
		TokenURL:    srv.URL,
	})
	require.NoError(t, err)

	var sawState string
	a.SetCallback(func(ctx context.Context, authorizeURL, state string) (string, string, error) {
		sawState = state
		return "auth-code", state, nil
	})

	require.NoError(t, a.Regenerate(context.Background()))
	require.NotEmpty(t, sawState)
	require.Equal(t, "at-new", a.AccessToken())
	require.Equal(t, "rt-new", a.RefreshToken())
	require.False(t, a.IsExpired())
}

func TestRegenerateStateMismatch(t *testing.T) {
	t.Parallel()

	srv, grants := newTokenServer(t, "at-new", "rt-new", 3600)

	a, err := New(Config{
		ClientID:    "test-client",
		RedirectURI: "http://127.0.0.1:18423/callback",
		TokenURL:    srv.URL,
	})
	require.NoError(t, err)

	a.Restore("at-old", "rt-old", time.Now().Add(time.Hour))
	a.SetCallback(func(ctx context.Context, authorizeURL, state string) (string, string, error) {
		return "auth-code", "forged-state", nil
	})

	err = a.Regenerate(context.Background())
	require.ErrorIs(t, err, ErrStateMismatch)

	// The old record was discarded when the attempt began and no exchange
	// happened, so the session is empty.
	require.Empty(t, a.AccessToken())
	require.Empty(t, a.RefreshToken())
	require.Empty(t, *grants)
}

func TestRegenerateDiscardsRecordOnCallbackFailure(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)
	a.Restore("at-old", "rt-old", time.Now().Add(time.Hour))
	a.SetCallback(func(ctx context.Context, authorizeURL, state string) (string, string, error) {
		return "", "", context.Canceled
	})

	err := a.Regenerate(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, a.AccessToken())
	require.Empty(t, a.RefreshToken())
}

func TestRegenerateRequiresCallback(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)
	err := a.Regenerate(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no callback configured")
}

func TestRegenerateStatesAreUnique(t *testing.T) {
	t.Parallel()

	srv, _ := newTokenServer(t, "at", "rt", 3600)

	a, err := New(Config{
		ClientID:    "test-client",
		RedirectURI: "http://127.0.0.1:18423/callback",
		TokenURL:    srv.URL,
	})
	require.NoError(t, err)

	seen := make(map[string]struct{})
	a.SetCallback(func(ctx context.Context, authorizeURL, state string) (string, string, error) {
		seen[state] = struct{}{}
		return "code", state, nil
	})

	for range 5 {
		require.NoError(t, a.Regenerate(context.Background()))
	}
	require.Len(t, seen, 5)
}
