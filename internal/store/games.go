package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"

	"github.com/unitrackerhq/unitracker/pkg/types"
)

// GameStore implements CRUD on the game table and its attached genre and
// platform tag sets. Mutations carry their cross-table effects (tag rows,
// series aggregates) inline; only the primary statement's failure is
// surfaced, secondary failures are logged at Warn.
type GameStore struct {
	s *Store
}

// gameColumnSet is the set of accepted field-map keys.
var gameColumnSet = func() map[string]bool {
	set := make(map[string]bool, len(types.GameColumns))
	for _, c := range types.GameColumns {
		set[c] = true
	}
	return set
}()

// Add inserts a game from a sparse field map plus its tag lists. fields
// must include a non-empty name; any subset of the remaining columns may be
// present, and only supplied columns appear in the statement. When fields
// carries a series_name the series aggregate is attached before the row is
// inserted, using the supplied hours_played (0 if absent).
func (g *GameStore) Add(fields map[string]any, genres, platforms []string) error {
	name, ok := stringField(fields, types.ColName)
	if !ok || name == "" {
		return types.ErrInvalidName
	}
	cols, vals, err := orderedColumns(fields)
	if err != nil {
		return err
	}

	if seriesName, ok := stringField(fields, types.ColSeriesName); ok && seriesName != "" {
		if err := g.s.series.attach(seriesName, floatField(fields, types.ColHoursPlayed)); err != nil {
			g.s.log.Warnw("series attach failed", "game", name, "series", seriesName, "error", err)
		}
	}

	query, args, err := sq.Insert("game").Columns(cols...).Values(vals...).ToSql()
	if err != nil {
		return fmt.Errorf("building game insert: %w", err)
	}
	if _, err := g.s.exec(query, args...); err != nil {
		return fmt.Errorf("inserting game %q: %w", name, err)
	}

	g.insertTags("genre", name, genres)
	g.insertTags("platform", name, platforms)
	return nil
}

// Edit updates the game previously named oldName from a sparse field map
// and replaces its tag sets. The UPDATE targets oldName even when fields
// renames the game. A failed UPDATE aborts before any side effect runs.
//
// The series aggregate is reassigned when fields touches series_name; an
// hours_played change without a membership change adjusts the current
// series' playtime so the rollup stays consistent.
func (g *GameStore) Edit(oldName string, fields map[string]any, genres, platforms []string) error {
	prior, err := g.Get(oldName)
	if err != nil {
		return err
	}

	if len(fields) > 0 {
		if _, _, err := orderedColumns(fields); err != nil {
			return err
		}
		query, args, err := sq.Update("game").SetMap(fields).Where(sq.Eq{"name": oldName}).ToSql()
		if err != nil {
			return fmt.Errorf("building game update: %w", err)
		}
		if _, err := g.s.exec(query, args...); err != nil {
			return fmt.Errorf("updating game %q: %w", oldName, err)
		}
	}

	newName := oldName
	if n, ok := stringField(fields, types.ColName); ok && n != "" {
		newName = n
	}

	priorSeries := deref(prior.SeriesName)
	newHours := prior.HoursPlayed
	if _, ok := fields[types.ColHoursPlayed]; ok {
		newHours = floatField(fields, types.ColHoursPlayed)
	}
	if _, ok := fields[types.ColSeriesName]; ok {
		newSeries, _ := stringField(fields, types.ColSeriesName)
		if err := g.s.series.reassign(priorSeries, prior.HoursPlayed, newSeries, newHours); err != nil {
			g.s.log.Warnw("series reassign failed", "game", newName, "series", newSeries, "error", err)
		}
	} else if _, ok := fields[types.ColHoursPlayed]; ok && priorSeries != "" {
		if err := g.s.series.reassign(priorSeries, prior.HoursPlayed, priorSeries, newHours); err != nil {
			g.s.log.Warnw("series playtime update failed", "game", newName, "series", priorSeries, "error", err)
		}
	}

	g.replaceTags("genre", oldName, newName, genres)
	g.replaceTags("platform", oldName, newName, platforms)
	return nil
}

// Delete removes a game, its tag rows, and its series membership. When the
// primary delete fails, tags and series are left untouched.
func (g *GameStore) Delete(name string) error {
	prior, err := g.Get(name)
	if err != nil {
		return err
	}

	query, args, err := sq.Delete("game").Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return fmt.Errorf("building game delete: %w", err)
	}
	if _, err := g.s.exec(query, args...); err != nil {
		return fmt.Errorf("deleting game %q: %w", name, err)
	}

	g.deleteTags("genre", name)
	g.deleteTags("platform", name)

	if seriesName := deref(prior.SeriesName); seriesName != "" {
		if err := g.s.series.detach(seriesName, prior.HoursPlayed); err != nil {
			g.s.log.Warnw("series detach failed", "game", name, "series", seriesName, "error", err)
		}
	}
	return nil
}

// Get returns the game row for name, or ErrNotFound.
func (g *GameStore) Get(name string) (*types.Game, error) {
	if name == "" {
		return nil, types.ErrInvalidName
	}
	row := g.s.queryRow(`SELECT name, progress, hours_played, start_date, end_date,
        total_achievements, completed_achievements, series_name
        FROM game WHERE name = ?`, name)
	return scanGame(row)
}

// Genres returns the genre tags for a game in storage (insertion) order.
func (g *GameStore) Genres(name string) ([]string, error) {
	return g.tags("genre", name)
}

// Platforms returns the platform tags for a game in storage (insertion) order.
func (g *GameStore) Platforms(name string) ([]string, error) {
	return g.tags("platform", name)
}

func scanGame(row *sql.Row) (*types.Game, error) {
	var (
		game      types.Game
		progress  sql.NullInt64
		hours     sql.NullFloat64
		start     sql.NullString
		end       sql.NullString
		total     sql.NullInt64
		completed sql.NullInt64
		series    sql.NullString
	)
	err := row.Scan(&game.Name, &progress, &hours, &start, &end, &total, &completed, &series)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning game: %w", err)
	}
	game.Progress = int(progress.Int64)
	game.HoursPlayed = hours.Float64
	game.TotalAchievements = int(total.Int64)
	game.CompletedAchievements = int(completed.Int64)
	if start.Valid {
		game.StartDate = &start.String
	}
	if end.Valid {
		game.EndDate = &end.String
	}
	if series.Valid && series.String != "" {
		game.SeriesName = &series.String
	}
	return &game, nil
}

func (g *GameStore) tags(table, name string) ([]string, error) {
	rows, err := g.s.query("SELECT name FROM "+table+" WHERE game_name = ? ORDER BY rowid", name)
	if err != nil {
		return nil, fmt.Errorf("loading %s tags for %q: %w", table, name, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scanning %s tag: %w", table, err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// insertTags adds one row per tag, best-effort.
func (g *GameStore) insertTags(table, name string, tags []string) {
	for _, tag := range tags {
		query, args, err := sq.Insert(table).Columns("game_name", "name").Values(name, tag).ToSql()
		if err == nil {
			_, err = g.s.exec(query, args...)
		}
		if err != nil {
			g.s.log.Warnw("tag insert failed", "table", table, "game", name, "tag", tag, "error", err)
		}
	}
}

// deleteTags removes every tag row for a game, best-effort.
func (g *GameStore) deleteTags(table, name string) {
	query, args, err := sq.Delete(table).Where(sq.Eq{"game_name": name}).ToSql()
	if err == nil {
		_, err = g.s.exec(query, args...)
	}
	if err != nil {
		g.s.log.Warnw("tag delete failed", "table", table, "game", name, "error", err)
	}
}

// replaceTags reconciles a game's tag set against want. A rename re-keys
// the existing rows first. The replace is all-or-nothing keyed on any set
// difference: equal sets (regardless of order) leave the rows untouched,
// different sets delete everything and re-insert the new list.
func (g *GameStore) replaceTags(table, oldName, newName string, want []string) {
	existing, err := g.tags(table, oldName)
	if err != nil {
		g.s.log.Warnw("tag load failed", "table", table, "game", oldName, "error", err)
		return
	}

	if oldName != newName {
		query, args, err := sq.Update(table).Set("game_name", newName).Where(sq.Eq{"game_name": oldName}).ToSql()
		if err == nil {
			_, err = g.s.exec(query, args...)
		}
		if err != nil {
			g.s.log.Warnw("tag rekey failed", "table", table, "game", newName, "error", err)
			return
		}
	}

	if sameSet(existing, want) {
		return
	}
	g.deleteTags(table, newName)
	g.insertTags(table, newName, want)
}

// sameSet reports whether two tag lists contain the same values, ignoring
// order and duplicates.
func sameSet(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, v := range a {
		as[v] = true
	}
	bs := make(map[string]bool, len(b))
	for _, v := range b {
		bs[v] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for v := range as {
		if !bs[v] {
			return false
		}
	}
	return true
}

// orderedColumns validates a sparse field map against the game schema and
// returns its columns and values in a deterministic (sorted) order, so the
// statement text and its positional bindings always line up.
func orderedColumns(fields map[string]any) ([]string, []any, error) {
	cols := make([]string, 0, len(fields))
	for col := range fields {
		if !gameColumnSet[col] {
			return nil, nil, fmt.Errorf("%w: %q", types.ErrUnknownColumn, col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	vals := make([]any, len(cols))
	for i, col := range cols {
		vals[i] = fields[col]
	}
	return cols, vals, nil
}

// stringField returns fields[key] as a string. The second result is false
// when the key is absent or holds a non-string.
func stringField(fields map[string]any, key string) (string, bool) {
	v, ok := fields[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// floatField returns fields[key] coerced to float64, treating absent, nil,
// and non-numeric values as 0.
func floatField(fields map[string]any, key string) float64 {
	switch v := fields[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// deref returns the pointed-to string, or "" for nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
