package schedsdk

import (
	"errors"
	"fmt"
)

// ErrETagRequired is returned by UpdateAnimeListEntry when no ETag is
// supplied. The API rejects list updates without a valid ETag obtained from
// a prior AnimeListEntry call.
var ErrETagRequired = errors.New("schedsdk: etag is required for list updates")

// APIError reports a response the API refused or that could not be decoded:
// an error status, a non-JSON body on a JSON endpoint, or an unexpected body
// on a write endpoint.
type APIError struct {
	StatusCode int

	// Body is the raw response body, often a plain-text error message.
	Body string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("schedsdk: api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("schedsdk: api error: status %d: %s", e.StatusCode, e.Body)
}
