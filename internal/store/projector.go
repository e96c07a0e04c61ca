package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/unitrackerhq/unitracker/pkg/types"
)

// defaultItemsPerPage mirrors the preference default so a projector built
// without configuration still pages sensibly.
const defaultItemsPerPage = types.DefaultItemsPerPage

// Projector builds the read-side projections: paginated, joined listings
// of games and the unpaginated series listing. It keeps a current-page
// cursor; filtering and sorting live on the returned Projection and act on
// the fetched page only.
type Projector struct {
	s            *Store
	itemsPerPage int
	page         int
}

// ListGames returns one page of the games projection: each game row joined
// with its distinct genre and platform tags concatenated into delimited
// strings. The cursor moves to the requested page; negative pages clamp
// to 0.
func (p *Projector) ListGames(page int) (Projection, error) {
	if page < 0 {
		page = 0
	}
	p.page = page
	return p.listAt(page)
}

// listAt fetches a page without touching the cursor.
func (p *Projector) listAt(page int) (Projection, error) {
	query, args, err := sq.Select(
		"g.name", "g.progress", "g.hours_played", "g.start_date", "g.end_date",
		"g.total_achievements", "g.completed_achievements", "g.series_name",
		"GROUP_CONCAT(DISTINCT ge.name)",
		"GROUP_CONCAT(DISTINCT pl.name)",
	).
		From("game g").
		LeftJoin("genre ge ON ge.game_name = g.name").
		LeftJoin("platform pl ON pl.game_name = g.name").
		GroupBy("g.name").
		OrderBy("g.name").
		Limit(uint64(p.itemsPerPage)).
		Offset(uint64(p.itemsPerPage * page)).
		ToSql()
	if err != nil {
		return Projection{}, fmt.Errorf("building games projection: %w", err)
	}

	rows, err := p.s.query(query, args...)
	if err != nil {
		return Projection{}, fmt.Errorf("listing games: %w", err)
	}
	defer rows.Close()

	var listings []types.GameListing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return Projection{}, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return Projection{}, err
	}
	return Projection{Rows: listings}, nil
}

// CurrentPage returns the projector's page cursor.
func (p *Projector) CurrentPage() int {
	return p.page
}

// HasNextPage probes for at least one row on the page after the cursor.
func (p *Projector) HasNextPage() (bool, error) {
	offset := p.itemsPerPage * (p.page + 1)
	row := p.s.queryRow(fmt.Sprintf("SELECT 1 FROM game LIMIT 1 OFFSET %d", offset))
	var one int
	err := row.Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("probing next page: %w", err)
	}
	return true, nil
}

// NextPage advances the cursor and returns the next page. The second
// result is false, with the cursor unchanged, when no next page exists.
func (p *Projector) NextPage() (Projection, bool, error) {
	has, err := p.HasNextPage()
	if err != nil || !has {
		return Projection{}, false, err
	}
	p.page++
	proj, err := p.listAt(p.page)
	return proj, err == nil, err
}

// PrevPage retreats the cursor and returns the previous page. The second
// result is false, with the cursor unchanged, when already at page 0.
func (p *Projector) PrevPage() (Projection, bool, error) {
	if p.page == 0 {
		return Projection{}, false, nil
	}
	p.page--
	proj, err := p.listAt(p.page)
	return proj, err == nil, err
}

// ListSeries returns every series row, unpaginated.
func (p *Projector) ListSeries() ([]types.Series, error) {
	return p.s.series.List()
}

func scanListing(rows *sql.Rows) (types.GameListing, error) {
	var (
		l         types.GameListing
		progress  sql.NullInt64
		hours     sql.NullFloat64
		start     sql.NullString
		end       sql.NullString
		total     sql.NullInt64
		completed sql.NullInt64
		series    sql.NullString
		genres    sql.NullString
		platforms sql.NullString
	)
	err := rows.Scan(&l.Name, &progress, &hours, &start, &end,
		&total, &completed, &series, &genres, &platforms)
	if err != nil {
		return types.GameListing{}, fmt.Errorf("scanning game listing: %w", err)
	}
	l.Progress = int(progress.Int64)
	l.HoursPlayed = hours.Float64
	l.StartDate = start.String
	l.EndDate = end.String
	l.TotalAchievements = int(total.Int64)
	l.CompletedAchievements = int(completed.Int64)
	l.SeriesName = series.String
	l.Genres = genres.String
	l.Platforms = platforms.String
	return l, nil
}

// Projection is one materialized page of the games listing. Filter and
// SortBy return narrowed or reordered copies of this page; they never
// requery the store, so their scope is the current page, not the whole
// collection.
type Projection struct {
	Rows []types.GameListing
}

// listingColumns are the column names Filter and SortBy accept.
var listingColumns = map[string]bool{
	"name": true, "progress": true, "hours_played": true,
	"start_date": true, "end_date": true,
	"total_achievements": true, "completed_achievements": true,
	"series_name": true, "genres": true, "platforms": true,
}

// Filter returns the rows whose column contains substr, case-insensitively.
func (pr Projection) Filter(column, substr string) (Projection, error) {
	if !listingColumns[column] {
		return Projection{}, fmt.Errorf("%w: %q", types.ErrUnknownColumn, column)
	}
	needle := strings.ToLower(substr)
	var rows []types.GameListing
	for _, l := range pr.Rows {
		text, _, _ := listingValue(l, column)
		if strings.Contains(strings.ToLower(text), needle) {
			rows = append(rows, l)
		}
	}
	return Projection{Rows: rows}, nil
}

// SortBy returns the page reordered by column. Numeric columns compare
// numerically, the rest lexicographically.
func (pr Projection) SortBy(column string, desc bool) (Projection, error) {
	if !listingColumns[column] {
		return Projection{}, fmt.Errorf("%w: %q", types.ErrUnknownColumn, column)
	}
	rows := make([]types.GameListing, len(pr.Rows))
	copy(rows, pr.Rows)

	sort.SliceStable(rows, func(i, j int) bool {
		ti, ni, numeric := listingValue(rows[i], column)
		tj, nj, _ := listingValue(rows[j], column)
		var cmp int
		switch {
		case numeric && ni < nj, !numeric && ti < tj:
			cmp = -1
		case numeric && ni > nj, !numeric && ti > tj:
			cmp = 1
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return Projection{Rows: rows}, nil
}

// listingValue extracts a column from a listing row as text plus, for the
// numeric columns, its comparable value.
func listingValue(l types.GameListing, column string) (text string, num float64, numeric bool) {
	switch column {
	case "name":
		return l.Name, 0, false
	case "progress":
		return fmt.Sprintf("%d", l.Progress), float64(l.Progress), true
	case "hours_played":
		return fmt.Sprintf("%g", l.HoursPlayed), l.HoursPlayed, true
	case "start_date":
		return l.StartDate, 0, false
	case "end_date":
		return l.EndDate, 0, false
	case "total_achievements":
		return fmt.Sprintf("%d", l.TotalAchievements), float64(l.TotalAchievements), true
	case "completed_achievements":
		return fmt.Sprintf("%d", l.CompletedAchievements), float64(l.CompletedAchievements), true
	case "series_name":
		return l.SeriesName, 0, false
	case "genres":
		return l.Genres, 0, false
	case "platforms":
		return l.Platforms, 0, false
	}
	return "", 0, false
}
