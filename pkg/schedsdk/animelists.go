package schedsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
)

// UserAnimeList is a user's full anime list.
type UserAnimeList struct {
	AnimeList   []ListAnime  `json:"animeList"`
	CustomLists []CustomList `json:"customLists,omitempty"`
}

// listEndpoint resolves a list URL: the caller's own list goes through the
// oauth path with the user access token, another user's list goes through
// the userId path with the application token.
func (c *Client) listEndpoint(userID string, parts ...string) (endpoint string, user bool) {
	if userID == "" {
		return c.endpoint(append([]string{"animelists", "oauth"}, parts...)...), true
	}
	return c.endpoint(append([]string{"animelists", url.PathEscape(userID)}, parts...)...), false
}

// AnimeList fetches an anime list: the caller's own when userID is empty,
// otherwise the given user's.
func (c *Client) AnimeList(ctx context.Context, userID string) (*UserAnimeList, RateLimit, error) {
	endpoint, user := c.listEndpoint(userID)

	var list UserAnimeList
	limit, err := c.getJSON(ctx, endpoint, user, &list)
	if err != nil {
		return nil, limit, err
	}
	return &list, limit, nil
}

// AnimeListEntry fetches one list entry by the anime's route slug, from the
// caller's own list when userID is empty. The returned ETag must be echoed
// on a subsequent UpdateAnimeListEntry for the same route.
func (c *Client) AnimeListEntry(ctx context.Context, userID, route string) (*ListAnime, string, RateLimit, error) {
	endpoint, user := c.listEndpoint(userID, url.PathEscape(route))

	var entry ListAnime
	limit, etag, err := c.getJSONWithETag(ctx, endpoint, user, &entry)
	if err != nil {
		return nil, etag, limit, err
	}
	return &entry, etag, limit, nil
}

// UpdateAnimeListEntry adds or updates one entry of the caller's own list.
// etag must come from a prior AnimeListEntry read of the same route; the
// API rejects updates without a valid one.
func (c *Client) UpdateAnimeListEntry(ctx context.Context, route, etag string, update ListAnimeUpdate) (RateLimit, error) {
	if etag == "" {
		return RateLimit{}, ErrETagRequired
	}

	body, err := json.Marshal(update)
	if err != nil {
		return RateLimit{}, fmt.Errorf("schedsdk: encode list update: %w", err)
	}

	header := http.Header{}
	header.Set("ETag", etag)
	header.Set("Content-Type", "application/json")

	endpoint, _ := c.listEndpoint("", url.PathEscape(route))
	return c.doWrite(ctx, http.MethodPut, endpoint, bytes.NewReader(body), header)
}

// DeleteAnimeListEntry removes one entry from the caller's own list by the
// anime's route slug.
func (c *Client) DeleteAnimeListEntry(ctx context.Context, route string) (RateLimit, error) {
	endpoint, _ := c.listEndpoint("", url.PathEscape(route))
	return c.doWrite(ctx, http.MethodDelete, endpoint, nil, nil)
}

// ImportMALList imports a MyAnimeList XML export into the caller's own
// list. The file may be up to 12MB. overwrite replaces entries that already
// exist in the list with the imported ones.
func (c *Client) ImportMALList(ctx context.Context, malXML []byte, overwrite bool) (RateLimit, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if overwrite {
		if err := form.WriteField("overwrite-mal-list", "on"); err != nil {
			return RateLimit{}, fmt.Errorf("schedsdk: build import form: %w", err)
		}
	}

	// The importer expects a named xml file part, matching the site's own
	// list import form.
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="mal-list"; filename="list.xml"`)
	partHeader.Set("Content-Type", "text/xml")
	part, err := form.CreatePart(partHeader)
	if err != nil {
		return RateLimit{}, fmt.Errorf("schedsdk: build import form: %w", err)
	}
	if _, err := part.Write(malXML); err != nil {
		return RateLimit{}, fmt.Errorf("schedsdk: build import form: %w", err)
	}
	if err := form.Close(); err != nil {
		return RateLimit{}, fmt.Errorf("schedsdk: build import form: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", form.FormDataContentType())

	endpoint, _ := c.listEndpoint("")
	return c.doWrite(ctx, http.MethodPut, endpoint, &buf, header)
}
