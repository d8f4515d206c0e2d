package schedsdk

import (
	"context"
	"net/url"
)

// Categories fetches categories of a given type: "genres", "studios",
// "sources" or "media-types". query optionally filters by text, truncated
// to 200 characters.
func (c *Client) Categories(ctx context.Context, categoryType, query string) ([]Category, RateLimit, error) {
	endpoint := c.endpoint("categories", url.PathEscape(categoryType))
	if query != "" {
		if len(query) > maxQueryLen {
			query = query[:maxQueryLen]
		}
		endpoint += "?" + url.Values{"q": {query}}.Encode()
	}

	var categories []Category
	limit, err := c.getJSON(ctx, endpoint, false, &categories)
	if err != nil {
		return nil, limit, err
	}
	return categories, limit, nil
}

// CategoryBySlug fetches one category by type and URL slug.
func (c *Client) CategoryBySlug(ctx context.Context, categoryType, slug string) (*Category, RateLimit, error) {
	var category Category
	limit, err := c.getJSON(ctx,
		c.endpoint("categories", url.PathEscape(categoryType), url.PathEscape(slug)),
		false, &category)
	if err != nil {
		return nil, limit, err
	}
	return &category, limit, nil
}
