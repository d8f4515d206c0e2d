package schedsdk

import (
	"context"
	"net/url"
	"strconv"
)

// maxQueryLen is the API's limit on free-text filters.
const maxQueryLen = 200

// AnimeQuery filters an anime search. Slice filters are repeatable: each
// value becomes its own query parameter. The zero value fetches the first
// page unfiltered.
type AnimeQuery struct {
	// Page of the result set, starting at 1.
	Page int

	// Query filters by text against names, then genres, studios, sources
	// and media types. Truncated to 200 characters.
	Query string

	// Match selects whether results match any or all filters. Defaults
	// to all upstream.
	Match MatchType

	// Sort orders the results. Defaults to popularity upstream.
	Sort SortType

	// Category filters take route slugs.
	Genres            []string
	GenresExclude     []string
	Studios           []string
	StudiosExclude    []string
	Sources           []string
	SourcesExclude    []string
	MediaTypes        []string
	MediaTypesExclude []string

	Years          []int
	YearsExclude   []int
	Seasons        []SeasonName
	SeasonsExclude []SeasonName

	AiringStatuses        []AirStatus
	AiringStatusesExclude []AirStatus

	// Duration and Episodes are range filters in the form "min-max".
	Duration string
	Episodes string

	Streams        []string
	StreamsExclude []string

	// External ID filters.
	MalIDs     []int64
	AnilistIDs []int64
	AnidbIDs   []int64
}

func (q AnimeQuery) values() url.Values {
	v := url.Values{}

	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Query != "" {
		text := q.Query
		if len(text) > maxQueryLen {
			text = text[:maxQueryLen]
		}
		v.Set("q", text)
	}
	if q.Match != "" {
		v.Set("mt", string(q.Match))
	}
	if q.Sort != "" {
		v.Set("st", string(q.Sort))
	}

	addStrings(v, "genres", q.Genres)
	addStrings(v, "genres-exclude", q.GenresExclude)
	addStrings(v, "studios", q.Studios)
	addStrings(v, "studios-exclude", q.StudiosExclude)
	addStrings(v, "sources", q.Sources)
	addStrings(v, "sources-exclude", q.SourcesExclude)
	addStrings(v, "media-types", q.MediaTypes)
	addStrings(v, "media-types-exclude", q.MediaTypesExclude)
	addStrings(v, "streams", q.Streams)
	addStrings(v, "streams-exclude", q.StreamsExclude)

	for _, y := range q.Years {
		v.Add("years", strconv.Itoa(y))
	}
	for _, y := range q.YearsExclude {
		v.Add("years-exclude", strconv.Itoa(y))
	}
	for _, s := range q.Seasons {
		v.Add("seasons", string(s))
	}
	for _, s := range q.SeasonsExclude {
		v.Add("seasons-exclude", string(s))
	}
	for _, s := range q.AiringStatuses {
		v.Add("airing-statuses", string(s))
	}
	for _, s := range q.AiringStatusesExclude {
		v.Add("airing-statuses-exclude", string(s))
	}

	if q.Duration != "" {
		v.Set("duration", q.Duration)
	}
	if q.Episodes != "" {
		v.Set("episodes", q.Episodes)
	}

	for _, id := range q.MalIDs {
		v.Add("mal-ids", strconv.FormatInt(id, 10))
	}
	for _, id := range q.AnilistIDs {
		v.Add("anilist-ids", strconv.FormatInt(id, 10))
	}
	for _, id := range q.AnidbIDs {
		v.Add("anidb-ids", strconv.FormatInt(id, 10))
	}

	return v
}

func addStrings(v url.Values, key string, values []string) {
	for _, s := range values {
		v.Add(key, s)
	}
}

// SearchAnime fetches one page of anime matching the query. Each page holds
// up to 18 anime.
func (c *Client) SearchAnime(ctx context.Context, query AnimeQuery) (*AnimePage, RateLimit, error) {
	endpoint := c.endpoint("anime")
	if v := query.values(); len(v) > 0 {
		endpoint += "?" + v.Encode()
	}

	var page AnimePage
	limit, err := c.getJSON(ctx, endpoint, false, &page)
	if err != nil {
		return nil, limit, err
	}
	return &page, limit, nil
}

// AnimeByRoute fetches one anime by its URL slug.
func (c *Client) AnimeByRoute(ctx context.Context, route string) (*Anime, RateLimit, error) {
	var anime Anime
	limit, err := c.getJSON(ctx, c.endpoint("anime", url.PathEscape(route)), false, &anime)
	if err != nil {
		return nil, limit, err
	}
	return &anime, limit, nil
}
