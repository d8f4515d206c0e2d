package schedsdk

import "time"

// AirType is a timetable air type query value.
type AirType string

const (
	AirTypeRaw AirType = "raw"
	AirTypeSub AirType = "sub"
	AirTypeDub AirType = "dub"
	AirTypeAll AirType = "all"
)

// AirStatus is an anime's overall airing status.
type AirStatus string

const (
	AirStatusUpcoming AirStatus = "Upcoming"
	AirStatusOngoing  AirStatus = "Ongoing"
	AirStatusDelayed  AirStatus = "Delayed"
	AirStatusFinished AirStatus = "Finished"
)

// AiringStatus is an episode's immediate timetable status.
type AiringStatus string

const (
	AiringStatusAiring     AiringStatus = "airing"
	AiringStatusAired      AiringStatus = "aired"
	AiringStatusUnaired    AiringStatus = "unaired"
	AiringStatusDelayedAir AiringStatus = "delayed-air"
)

// MatchType selects how search filters combine: any filter matching, or all.
type MatchType string

const (
	MatchAny MatchType = "any"
	MatchAll MatchType = "all"
)

// SortType orders anime search results.
type SortType string

const (
	SortPopularity  SortType = "popularity"
	SortScore       SortType = "score"
	SortAlphabetic  SortType = "alphabetic"
	SortReleaseDate SortType = "releaseDate"
)

// SeasonName is a calendar season query value.
type SeasonName string

const (
	SeasonSpring SeasonName = "spring"
	SeasonSummer SeasonName = "summer"
	SeasonFall   SeasonName = "fall"
	SeasonWinter SeasonName = "winter"
)

// ListStatus is the list an anime belongs to in a user's anime list.
type ListStatus string

const (
	ListStatusCompleted ListStatus = "completed"
	ListStatusWatching  ListStatus = "watching"
	ListStatusOnHold    ListStatus = "on-hold"
	ListStatusDropped   ListStatus = "dropped"
	ListStatusToWatch   ListStatus = "to-watch"
)

// ListAction indicates a non-standard list update operation.
type ListAction string

// ListActionDeleteNote clears the entry's note.
const ListActionDeleteNote ListAction = "deleteNote"

// Category is a genre, studio, source or media type.
type Category struct {
	Name string `json:"name"`
	// Route is the unique URL slug.
	Route string `json:"route"`
}

// Season names the release season an anime belongs to.
type Season struct {
	Title string `json:"title"`
	Year  string `json:"year"`
	// Season is the calendar season.
	Season string `json:"season"`
	// Route is the unique URL slug, calendar season plus year.
	Route string `json:"route"`
}

// Stats carries an anime's community score and popularity numbers.
type Stats struct {
	// AverageScore is the weighted average score from 1 to 100.
	AverageScore float64 `json:"averageScore"`
	RatingCount  int64   `json:"ratingCount"`
	// TrackedCount is how many users have it in their anime list.
	TrackedCount int64 `json:"trackedCount"`
	// TrackedRating is the popularity rank against all other anime.
	TrackedRating  int64  `json:"trackedRating"`
	ColorLightMode string `json:"colorLightMode"`
	ColorDarkMode  string `json:"colorDarkMode"`
}

// Days marks which weekdays an anime airs on. Present only when it airs
// multiple times a week.
type Days struct {
	Sunday    bool `json:"sunday"`
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
}

// Names holds an anime's alternative titles.
type Names struct {
	Romaji       string   `json:"romaji,omitempty"`
	English      string   `json:"english,omitempty"`
	Native       string   `json:"native,omitempty"`
	Abbreviation string   `json:"abbreviation,omitempty"`
	Synonyms     []string `json:"synonyms,omitempty"`
}

// Relations lists related anime by their route slugs.
type Relations struct {
	Sequels      []string `json:"sequels,omitempty"`
	Prequels     []string `json:"prequels,omitempty"`
	Parents      []string `json:"parents,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
	Other        []string `json:"other,omitempty"`
	SideStories  []string `json:"sideStories,omitempty"`
	Spinoffs     []string `json:"spinoffs,omitempty"`
}

// Websites holds an anime's external site URLs.
type Websites struct {
	Official    string `json:"official,omitempty"`
	Mal         string `json:"mal,omitempty"`
	AniList     string `json:"aniList,omitempty"`
	Kitsu       string `json:"kitsu,omitempty"`
	AnimePlanet string `json:"animePlanet,omitempty"`
	Anidb       string `json:"anidb,omitempty"`
	Crunchyroll string `json:"crunchyroll,omitempty"`
	Funimation  string `json:"funimation,omitempty"`
	Wakanim     string `json:"wakanim,omitempty"`
	Amazon      string `json:"amazon,omitempty"`
	Hidive      string `json:"hidive,omitempty"`
	Hulu        string `json:"hulu,omitempty"`
	Youtube     string `json:"youtube,omitempty"`
	Netflix     string `json:"netflix,omitempty"`
}

// Streams holds an anime's streaming service URLs.
type Streams struct {
	Crunchyroll string `json:"crunchyroll,omitempty"`
	Funimation  string `json:"funimation,omitempty"`
	Wakanim     string `json:"wakanim,omitempty"`
	Amazon      string `json:"amazon,omitempty"`
	Hidive      string `json:"hidive,omitempty"`
	Hulu        string `json:"hulu,omitempty"`
	Youtube     string `json:"youtube,omitempty"`
	Netflix     string `json:"netflix,omitempty"`
}

// TimetableAnime is one entry of a week's timetable.
type TimetableAnime struct {
	// Title is the display title, used as a high-priority name.
	Title string `json:"title"`
	// Route is the unique URL slug.
	Route   string `json:"route"`
	Romaji  string `json:"romaji,omitempty"`
	English string `json:"english,omitempty"`
	Native  string `json:"native,omitempty"`
	// DelayedText is the timetable delayed display text.
	DelayedText  string     `json:"delayedText,omitempty"`
	DelayedFrom  string     `json:"delayedFrom,omitempty"`
	DelayedUntil *time.Time `json:"delayedUntil,omitempty"`
	Status       AirStatus  `json:"status"`
	EpisodeDate  time.Time  `json:"episodeDate"`
	EpisodeNumber int64     `json:"episodeNumber"`
	// SubtractedEpisodeNumber is the lowest episode number when multiple
	// episodes air together.
	SubtractedEpisodeNumber int64 `json:"subtractedEpisodeNumber,omitempty"`
	// Episodes is the total episode count; 0 means unknown.
	Episodes  int64 `json:"episodes,omitempty"`
	LengthMin int64 `json:"lengthMin"`
	// Donghua reports whether the entry is a donghua/chinese anime.
	Donghua           bool         `json:"donghua"`
	AirType           string       `json:"airType"`
	MediaTypes        []Category   `json:"mediaTypes"`
	ImageVersionRoute string       `json:"imageVersionRoute"`
	Streams           Streams      `json:"streams"`
	AiringStatus      AiringStatus `json:"airingStatus"`
}

// Anime is the full anime object returned by the anime endpoints.
type Anime struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Route string `json:"route"`
	// Premier is the Japanese release date of the first episode, in
	// Japan's fixed offset.
	Premier    *time.Time `json:"premier,omitempty"`
	SubPremier *time.Time `json:"subPremier,omitempty"`
	DubPremier *time.Time `json:"dubPremier,omitempty"`
	// Month is the earliest month of the release date, e.g. "January".
	Month  string `json:"month,omitempty"`
	Year   int64  `json:"year,omitempty"`
	Season Season `json:"season"`
	// DelayedTimetable is "Delayed" or "On Break".
	DelayedTimetable    string     `json:"delayedTimetable,omitempty"`
	DelayedFrom         *time.Time `json:"delayedFrom,omitempty"`
	DelayedUntil        *time.Time `json:"delayedUntil,omitempty"`
	SubDelayedTimetable *time.Time `json:"subDelayedTimetable,omitempty"`
	SubDelayedFrom      *time.Time `json:"subDelayedFrom,omitempty"`
	SubDelayedUntil     *time.Time `json:"subDelayedUntil,omitempty"`
	DubDelayedTimetable string     `json:"dubDelayedTimetable,omitempty"`
	DubDelayedFrom      *time.Time `json:"dubDelayedFrom,omitempty"`
	DubDelayedUntil     *time.Time `json:"dubDelayedUntil,omitempty"`
	DelayedDesc         string     `json:"delayedDesc,omitempty"`
	// JpnTime holds the Japanese release time; only hour and minute are
	// relevant.
	JpnTime *time.Time `json:"jpnTime,omitempty"`
	SubTime *time.Time `json:"subTime,omitempty"`
	DubTime *time.Time `json:"dubTime,omitempty"`
	// Description is an HTML fragment.
	Description string     `json:"description"`
	Genres      []Category `json:"genres"`
	Studios     []Category `json:"studios"`
	Sources     []Category `json:"sources"`
	MediaTypes  []Category `json:"mediaTypes"`
	Episodes    int64      `json:"episodes,omitempty"`
	LengthMin   int64      `json:"lengthMin,omitempty"`
	Status      AirStatus  `json:"status"`
	// ImageVersionRoute is the poster image URL slug.
	ImageVersionRoute string     `json:"imageVersionRoute"`
	Stats             Stats      `json:"stats"`
	Days              *Days      `json:"days,omitempty"`
	Names             *Names     `json:"names,omitempty"`
	Relations         *Relations `json:"relations,omitempty"`
	Websites          Websites   `json:"websites"`
}

// AnimePage is one page of anime search results. Each page holds up to 18
// anime.
type AnimePage struct {
	Page int64 `json:"page"`
	// TotalAmount is the total number of anime matching the query.
	TotalAmount int64   `json:"totalAmount"`
	Anime       []Anime `json:"anime"`
}

// AutoScore is one component of an entry's automatic score.
type AutoScore struct {
	// ScoreText is the score's meaning.
	ScoreText string `json:"scoreText"`
	// Score is the numerical value, 0 to 100.
	Score int `json:"score"`
}

// AutoScores groups the four automatic score components.
type AutoScores struct {
	ScoreOne   AutoScore `json:"scoreOne"`
	ScoreTwo   AutoScore `json:"scoreTwo"`
	ScoreThree AutoScore `json:"scoreThree"`
	ScoreFour  AutoScore `json:"scoreFour"`
}

// ListAnime is one entry of a user's anime list.
type ListAnime struct {
	// Route is the anime's unique URL slug.
	Route        string     `json:"route"`
	ListStatus   ListStatus `json:"listStatus"`
	EpisodesSeen int64      `json:"episodesSeen"`
	// ManualScore is the user's own score, 0 to 100.
	ManualScore int `json:"manualScore,omitempty"`
	// AverageAutoScore is the calculated average score, 0 to 100.
	AverageAutoScore int        `json:"averageAutoScore,omitempty"`
	UseAutoScores    bool       `json:"useAutoScores"`
	AutoScores       AutoScores `json:"autoScores"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          time.Time  `json:"endDate"`
	// Note is the user's note, at most 1000 characters.
	Note string `json:"note"`
}

// ListAnimeUpdate is the payload of a list entry update. Nil fields are
// omitted and left unchanged by the API.
type ListAnimeUpdate struct {
	ListStatus    *ListStatus `json:"listStatus,omitempty"`
	EpisodesSeen  *int64      `json:"episodesSeen,omitempty"`
	ManualScore   *int        `json:"manualScore,omitempty"`
	UseAutoScores *bool       `json:"useAutoScores,omitempty"`
	AutoScores    *AutoScores `json:"autoScores,omitempty"`
	StartDate     *time.Time  `json:"startDate,omitempty"`
	EndDate       *time.Time  `json:"endDate,omitempty"`
	Note          *string     `json:"note,omitempty"`
	// Action indicates a non-standard operation such as deleting the note.
	Action *ListAction `json:"action,omitempty"`
}

// CustomList is a user-defined list.
type CustomList struct {
	Name  string `json:"name"`
	Route string `json:"route"`
}

// UserCategoryStat is one genre or studio entry of a user's stats.
type UserCategoryStat struct {
	Route  string `json:"route"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// UserStats aggregates a user's watch statistics.
type UserStats struct {
	UserID            string                      `json:"userId"`
	DaysAnimeSeen     float64                     `json:"daysAnimeSeen"`
	AverageAnimeScore float64                     `json:"averageAnimeScore"`
	UserGenreStats    map[string]UserCategoryStat `json:"userGenreStats"`
	UserStudioStats   map[string]UserCategoryStat `json:"userStudioStats"`
}
