package store

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/unitrackerhq/unitracker/pkg/types"
)

// SeriesStore maintains the derived series rows: one row per named series,
// holding the count of member games and the sum of their hours. The
// attach/reassign/detach paths are invoked by the record store only;
// presentation code never drives them directly.
//
// Series identity is an exact name string match, no case-folding or
// trimming. A row is never retained at num_games zero: the deletion
// threshold is <= 0, treating a negative count as empty rather than as a
// broken invariant to surface.
type SeriesStore struct {
	s *Store
}

// List returns every series row, ordered by name.
func (ss *SeriesStore) List() ([]types.Series, error) {
	rows, err := ss.s.query("SELECT name, num_games, total_playtime FROM series ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing series: %w", err)
	}
	defer rows.Close()

	var all []types.Series
	for rows.Next() {
		sr, err := scanSeries(rows.Scan)
		if err != nil {
			return nil, err
		}
		all = append(all, sr)
	}
	return all, rows.Err()
}

// Get returns the series row for name, or ErrNotFound.
func (ss *SeriesStore) Get(name string) (*types.Series, error) {
	row := ss.s.queryRow("SELECT name, num_games, total_playtime FROM series WHERE name = ?", name)
	sr, err := scanSeries(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func scanSeries(scan func(dest ...any) error) (types.Series, error) {
	var (
		sr       types.Series
		numGames sql.NullInt64
		playtime sql.NullFloat64
	)
	if err := scan(&sr.Name, &numGames, &playtime); err != nil {
		return types.Series{}, err
	}
	sr.NumGames = int(numGames.Int64)
	sr.TotalPlaytime = playtime.Float64
	return sr, nil
}

// attach records a new game joining the series: the row is created with a
// count of one on first reference, otherwise incremented.
func (ss *SeriesStore) attach(name string, hours float64) error {
	cur, err := ss.Get(name)
	if errors.Is(err, types.ErrNotFound) {
		query, args, err := sq.Insert("series").
			Columns("name", "num_games", "total_playtime").
			Values(name, 1, hours).ToSql()
		if err != nil {
			return fmt.Errorf("building series insert: %w", err)
		}
		if _, err := ss.s.exec(query, args...); err != nil {
			return fmt.Errorf("inserting series %q: %w", name, err)
		}
		return nil
	}
	if err != nil {
		return err
	}
	return ss.write(name, cur.NumGames+1, cur.TotalPlaytime+hours)
}

// detach records a game leaving the series. The row is deleted outright
// when the count would drop to zero or below.
func (ss *SeriesStore) detach(name string, hours float64) error {
	cur, err := ss.Get(name)
	if errors.Is(err, types.ErrNotFound) {
		// Nothing to roll back; an earlier best-effort failure may have
		// already lost the row.
		return nil
	}
	if err != nil {
		return err
	}
	if cur.NumGames-1 <= 0 {
		return ss.remove(name)
	}
	return ss.write(name, cur.NumGames-1, cur.TotalPlaytime-hours)
}

// reassign moves a game's series membership from (oldName, oldHours) to
// (newName, newHours). Empty names mean no series. Missing hours coalesce
// to zero before arithmetic; the cases apply in precedence order:
//
//  1. no old, has new: attach to new
//  2. old == new: playtime delta only, count unchanged
//  3. old != new, both present: detach from old, attach to new
//  4. has old, no new: detach from old
func (ss *SeriesStore) reassign(oldName string, oldHours float64, newName string, newHours float64) error {
	switch {
	case oldName == "" && newName != "":
		return ss.attach(newName, newHours)
	case oldName != "" && oldName == newName:
		cur, err := ss.Get(oldName)
		if errors.Is(err, types.ErrNotFound) {
			return ss.attach(newName, newHours)
		}
		if err != nil {
			return err
		}
		return ss.write(oldName, cur.NumGames, cur.TotalPlaytime-oldHours+newHours)
	case oldName != "" && newName != "":
		if err := ss.detach(oldName, oldHours); err != nil {
			return err
		}
		return ss.attach(newName, newHours)
	case oldName != "" && newName == "":
		return ss.detach(oldName, oldHours)
	}
	return nil
}

func (ss *SeriesStore) write(name string, numGames int, playtime float64) error {
	query, args, err := sq.Update("series").
		Set("num_games", numGames).
		Set("total_playtime", playtime).
		Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return fmt.Errorf("building series update: %w", err)
	}
	if _, err := ss.s.exec(query, args...); err != nil {
		return fmt.Errorf("updating series %q: %w", name, err)
	}
	return nil
}

func (ss *SeriesStore) remove(name string) error {
	query, args, err := sq.Delete("series").Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return fmt.Errorf("building series delete: %w", err)
	}
	if _, err := ss.s.exec(query, args...); err != nil {
		return fmt.Errorf("deleting series %q: %w", name, err)
	}
	return nil
}
