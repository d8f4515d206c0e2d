package schedsdk

import (
	"context"
	"net/url"
)

// UserStats fetches a user's watch statistics.
func (c *Client) UserStats(ctx context.Context, userID string) (*UserStats, RateLimit, error) {
	var stats UserStats
	limit, err := c.getJSON(ctx,
		c.endpoint("users", url.PathEscape(userID), "stats"), false, &stats)
	if err != nil {
		return nil, limit, err
	}
	return &stats, limit, nil
}

// UserAvatarURL fetches the URL of a user's profile avatar.
func (c *Client) UserAvatarURL(ctx context.Context, userID string) (string, RateLimit, error) {
	var avatar string
	limit, err := c.getJSON(ctx,
		c.endpoint("users", url.PathEscape(userID), "avatar"), false, &avatar)
	if err != nil {
		return "", limit, err
	}
	return avatar, limit, nil
}

// UserBannerURL fetches the URL of a user's profile banner.
func (c *Client) UserBannerURL(ctx context.Context, userID string) (string, RateLimit, error) {
	var banner string
	limit, err := c.getJSON(ctx,
		c.endpoint("users", url.PathEscape(userID), "banner"), false, &banner)
	if err != nil {
		return "", limit, err
	}
	return banner, limit, nil
}
