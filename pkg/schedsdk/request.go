package schedsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxResponseBytes = 8 << 20

// bearer resolves the Authorization credential for a request. User-scoped
// endpoints go through the session, which refreshes expired tokens before
// returning; everything else uses the static application token.
func (c *Client) bearer(ctx context.Context, user bool) (string, error) {
	if user {
		return c.auth.Token(ctx)
	}
	return c.auth.AppToken(), nil
}

// getJSON performs a GET and decodes the JSON response into out. The API
// reports errors as plain-text bodies, so any non-JSON payload is surfaced
// as an *APIError regardless of status.
func (c *Client) getJSON(ctx context.Context, url string, user bool, out any) (RateLimit, error) {
	res, err := c.send(ctx, http.MethodGet, url, user, nil, nil)
	if err != nil {
		return RateLimit{}, err
	}
	defer res.Body.Close()

	limit := parseRateLimit(res.Header)

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return limit, fmt.Errorf("schedsdk: read response: %w", err)
	}

	c.log.Debug("api response",
		"url", url,
		"status", res.StatusCode,
		"ratelimit_remaining", limit.Remaining)

	if !json.Valid(body) {
		return limit, &APIError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return limit, fmt.Errorf("schedsdk: decode response: %w", err)
	}

	return limit, nil
}

// getJSONWithETag is getJSON plus the response's ETag header, which list
// entry reads must capture for subsequent updates.
func (c *Client) getJSONWithETag(ctx context.Context, url string, user bool, out any) (RateLimit, string, error) {
	res, err := c.send(ctx, http.MethodGet, url, user, nil, nil)
	if err != nil {
		return RateLimit{}, "", err
	}
	defer res.Body.Close()

	limit := parseRateLimit(res.Header)
	etag := res.Header.Get("Etag")

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return limit, etag, fmt.Errorf("schedsdk: read response: %w", err)
	}

	if !json.Valid(body) {
		return limit, etag, &APIError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return limit, etag, fmt.Errorf("schedsdk: decode response: %w", err)
	}

	return limit, etag, nil
}

// doWrite performs a PUT or DELETE. Write endpoints respond with an empty
// body on success; an error status or any body at all is a failure.
func (c *Client) doWrite(ctx context.Context, method, url string, body io.Reader, header http.Header) (RateLimit, error) {
	res, err := c.send(ctx, method, url, true, body, header)
	if err != nil {
		return RateLimit{}, err
	}
	defer res.Body.Close()

	limit := parseRateLimit(res.Header)

	text, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return limit, fmt.Errorf("schedsdk: read response: %w", err)
	}

	if res.StatusCode >= 400 || len(text) > 0 {
		return limit, &APIError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	return limit, nil
}

func (c *Client) send(ctx context.Context, method, url string, user bool, body io.Reader, header http.Header) (*http.Response, error) {
	token, err := c.bearer(ctx, user)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("schedsdk: build request: %w", err)
	}
	for k, vs := range header {
		req.Header[k] = vs
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schedsdk: %s %s: %w", method, url, err)
	}
	return res, nil
}
