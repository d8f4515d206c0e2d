package oauthx

import (
	"errors"
	"fmt"
)

var (
	// ErrStateMismatch is returned by Regenerate when the state delivered by
	// the redirect callback does not match the one embedded in the
	// authorization URL for that attempt. The token record is left empty.
	ErrStateMismatch = errors.New("oauthx: authorization state mismatch")

	// ErrMissingRefreshToken is returned by Refresh when no refresh token is
	// stored. The token record is left unmodified.
	ErrMissingRefreshToken = errors.New("oauthx: no refresh token available")
)

// Error is the OAuth2 error document returned by the token endpoint
// per RFC 6749 section 5.2.
type Error struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *Error) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// ExchangeError reports a failed exchange at the token or revocation
// endpoint: a transport failure, a non-success status, or an undecodable
// response body.
type ExchangeError struct {
	// Grant is the grant type being exchanged, e.g. "authorization_code"
	// or "refresh_token".
	Grant string

	// StatusCode is the HTTP status of the response, or zero when the
	// request never produced one.
	StatusCode int

	// OAuth holds the decoded OAuth2 error document, when the endpoint
	// returned one.
	OAuth *Error

	// Err holds the underlying transport or decode error, when any.
	Err error
}

func (e *ExchangeError) Error() string {
	switch {
	case e.OAuth != nil:
		return fmt.Sprintf("oauthx: %s exchange failed: %s", e.Grant, e.OAuth.Error())
	case e.Err != nil:
		return fmt.Sprintf("oauthx: %s exchange failed: %v", e.Grant, e.Err)
	default:
		return fmt.Sprintf("oauthx: %s exchange failed with status %d", e.Grant, e.StatusCode)
	}
}

func (e *ExchangeError) Unwrap() error {
	if e.OAuth != nil {
		return e.OAuth
	}
	return e.Err
}

// CallbackServerError reports that the built-in redirect listener failed to
// bind, was cancelled, or received an error redirect instead of a code.
type CallbackServerError struct {
	// Addr is the host:port the listener was configured for.
	Addr string

	Err error
}

func (e *CallbackServerError) Error() string {
	return fmt.Sprintf("oauthx: callback server on %s: %v", e.Addr, e.Err)
}

func (e *CallbackServerError) Unwrap() error { return e.Err }
