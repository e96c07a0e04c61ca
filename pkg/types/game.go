package types

// Column names of the game table. Record store calls accept sparse field
// maps keyed by these names; absent columns take storage-layer defaults.
const (
	ColName                  = "name"
	ColProgress              = "progress"
	ColHoursPlayed           = "hours_played"
	ColStartDate             = "start_date"
	ColEndDate               = "end_date"
	ColTotalAchievements     = "total_achievements"
	ColCompletedAchievements = "completed_achievements"
	ColSeriesName            = "series_name"
)

// GameColumns lists every column of the game table in schema order.
var GameColumns = []string{
	ColName,
	ColProgress,
	ColHoursPlayed,
	ColStartDate,
	ColEndDate,
	ColTotalAchievements,
	ColCompletedAchievements,
	ColSeriesName,
}

// Game is a single collection record. Name is the primary key. Dates are
// free-form strings carried over from the legacy data; nil means the column
// is NULL. Numeric columns read back as zero when NULL.
//
// CompletedAchievements may exceed TotalAchievements: the store does not
// enforce that relation, callers own it.
type Game struct {
	Name                  string
	Progress              int
	HoursPlayed           float64
	StartDate             *string
	EndDate               *string
	TotalAchievements     int
	CompletedAchievements int
	SeriesName            *string
}

// GameListing is one row of the paginated games projection: the game columns
// joined with its tag sets, each concatenated into a comma-delimited string.
// Nullable columns render as empty strings; the listing is presentation-ready.
type GameListing struct {
	Name                  string  `json:"name"`
	Progress              int     `json:"progress"`
	HoursPlayed           float64 `json:"hours_played"`
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date"`
	TotalAchievements     int     `json:"total_achievements"`
	CompletedAchievements int     `json:"completed_achievements"`
	SeriesName            string  `json:"series_name"`
	Genres                string  `json:"genres"`
	Platforms             string  `json:"platforms"`
}
