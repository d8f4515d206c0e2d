package schedsdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/animeutils/animesched/pkg/oauthx"
)

// newTestClient builds a client against a stub API server with both an
// application token and a valid user session in place.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	auth, err := oauthx.New(oauthx.Config{
		ClientID:    "test-client",
		AppToken:    "app-token",
		RedirectURI: "http://127.0.0.1:18423/callback",
	})
	require.NoError(t, err)
	auth.Restore("user-token", "user-refresh", time.Now().Add(time.Hour))

	client, err := NewClient(Config{
		BaseURL:    srv.URL,
		Auth:       auth,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return client
}

func setRateLimitHeaders(w http.ResponseWriter, limit, remaining int, reset int64) {
	h := w.Header()
	h.Set("x-ratelimit-limit", strconv.Itoa(limit))
	h.Set("x-ratelimit-remaining", strconv.Itoa(remaining))
	h.Set("x-ratelimit-reset", strconv.FormatInt(reset, 10))
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	t.Run("requires authenticator", func(t *testing.T) {
		t.Parallel()

		_, err := NewClient(Config{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "authenticator")
	})

	t.Run("defaults and trims base url", func(t *testing.T) {
		t.Parallel()

		auth, err := oauthx.New(oauthx.Config{
			ClientID:    "c",
			RedirectURI: "http://127.0.0.1/cb",
		})
		require.NoError(t, err)

		c, err := NewClient(Config{Auth: auth})
		require.NoError(t, err)
		require.Equal(t, DefaultBaseURL, c.baseURL)

		c, err = NewClient(Config{Auth: auth, BaseURL: "http://example.test/api/"})
		require.NoError(t, err)
		require.Equal(t, "http://example.test/api", c.baseURL)
	})
}

func TestGetJSONNonJSONBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited, slow down"))
	}))

	var out any
	_, err := c.getJSON(context.Background(), c.endpoint("timetables"), false, &out)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	require.Equal(t, "rate limited, slow down", apiErr.Body)
}
