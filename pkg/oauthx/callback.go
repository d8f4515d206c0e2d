package oauthx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// CallbackFunc delivers the authorization redirect back to the flow. It is
// handed the full authorization URL to present to the user and the state
// embedded in it, and returns the code and state carried by the redirect.
//
// Implementations range from printing the URL and reading the redirect from
// stdin to driving a headless browser. The returned state is verified by the
// caller; implementations should pass it through untouched.
type CallbackFunc func(ctx context.Context, authorizeURL, state string) (code, returnedState string, err error)

// callbackServerConfig configures the built-in one-shot redirect listener.
type callbackServerConfig struct {
	// open is invoked with the authorization URL once the listener is
	// accepting connections, typically to launch a browser.
	open func(authorizeURL string) error
}

// SetCallback installs fn as the redirect delivery mechanism. Replaces any
// previously configured callback or callback server.
func (a *Authenticator) SetCallback(fn CallbackFunc) {
	a.cbMu.Lock()
	defer a.cbMu.Unlock()
	a.callback = fn
	a.server = nil
}

// SetCallbackServer configures the built-in local HTTP listener as the
// redirect delivery mechanism. The listener binds to the host and port of
// the configured redirect URI, serves exactly one redirect, and shuts down.
// open is invoked with the authorization URL once the listener is accepting
// connections; pass nil to only log the URL.
//
// Replaces any previously configured callback.
func (a *Authenticator) SetCallbackServer(open func(authorizeURL string) error) {
	a.cbMu.Lock()
	defer a.cbMu.Unlock()
	a.callback = nil
	a.server = &callbackServerConfig{open: open}
}

// resolveCallback picks the configured delivery mechanism.
func (a *Authenticator) resolveCallback() (CallbackFunc, error) {
	a.cbMu.Lock()
	defer a.cbMu.Unlock()

	switch {
	case a.callback != nil:
		return a.callback, nil
	case a.server != nil:
		cfg := *a.server
		return func(ctx context.Context, authorizeURL, state string) (string, string, error) {
			return a.serveCallback(ctx, cfg, authorizeURL)
		}, nil
	default:
		return nil, errors.New("oauthx: no callback configured; call SetCallback or SetCallbackServer first")
	}
}

// callbackResult is what the redirect handler passes back to the waiting
// flow.
type callbackResult struct {
	code  string
	state string
	err   error
}

// serveCallback runs the one-shot redirect listener: bind, announce the
// authorization URL, serve a single redirect, shut down.
func (a *Authenticator) serveCallback(ctx context.Context, cfg callbackServerConfig, authorizeURL string) (string, string, error) {
	addr, path, err := callbackAddr(a.redirectURI)
	if err != nil {
		return "", "", &CallbackServerError{Addr: a.redirectURI, Err: err}
	}

	// Listen before announcing the URL so a port conflict surfaces
	// immediately instead of as a browser error.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", "", &CallbackServerError{Addr: addr, Err: err}
	}

	results := make(chan callbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if errCode := q.Get("error"); errCode != "" {
			desc := q.Get("error_description")
			http.Error(w, "Authorization failed. You can close this window.", http.StatusBadRequest)
			results <- callbackResult{err: &Error{Code: errCode, Description: desc}}
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, callbackPage)
		results <- callbackResult{code: q.Get("code"), state: q.Get("state")}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go srv.Serve(ln)
	defer func() {
		shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutCtx)
	}()

	if cfg.open != nil {
		if err := cfg.open(authorizeURL); err != nil {
			return "", "", &CallbackServerError{Addr: addr, Err: err}
		}
	} else {
		a.log.Info("waiting for authorization", "url", authorizeURL)
	}

	select {
	case res := <-results:
		if res.err != nil {
			return "", "", &CallbackServerError{Addr: addr, Err: res.err}
		}
		return res.code, res.state, nil
	case <-ctx.Done():
		return "", "", &CallbackServerError{Addr: addr, Err: ctx.Err()}
	}
}

// callbackAddr derives the listen address and handler path from the
// redirect URI.
func callbackAddr(redirectURI string) (addr, path string, err error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", "", err
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("redirect uri %q has no host", redirectURI)
	}

	host := u.Hostname()
	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}

	path = u.Path
	if path == "" {
		path = "/"
	}

	return net.JoinHostPort(host, port), path, nil
}

const callbackPage = `<!DOCTYPE html>
<html>
<head><title>Authorization complete</title></head>
<body>
<p>Authorization complete. You can close this window and return to the terminal.</p>
</body>
</html>
`
