package schedsdk

import (
	"context"
	"net/url"
	"strconv"
)

// TimetablesOptions filters a timetable request. The zero value fetches the
// current week across all air types in the API's default timezone.
type TimetablesOptions struct {
	// AirType restricts entries to raw, sub or dub releases.
	AirType AirType

	// Week is the week number within Year. Week and Year must be set
	// together; left at zero the API serves the current week.
	Week int
	Year int

	// Timezone is an IANA timezone name the episode times are converted
	// to. Defaults to Europe/London upstream.
	Timezone string
}

// Timetables fetches one week's timetable.
func (c *Client) Timetables(ctx context.Context, opts TimetablesOptions) ([]TimetableAnime, RateLimit, error) {
	endpoint := c.endpoint("timetables")
	if opts.AirType != "" && opts.AirType != AirTypeAll {
		endpoint = c.endpoint("timetables", string(opts.AirType))
	}

	q := url.Values{}
	if opts.Week > 0 {
		q.Set("week", strconv.Itoa(opts.Week))
	}
	if opts.Year > 0 {
		q.Set("year", strconv.Itoa(opts.Year))
	}
	if opts.Timezone != "" {
		q.Set("tz", opts.Timezone)
	}
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var entries []TimetableAnime
	limit, err := c.getJSON(ctx, endpoint, false, &entries)
	if err != nil {
		return nil, limit, err
	}
	return entries, limit, nil
}
