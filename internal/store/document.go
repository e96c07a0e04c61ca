package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/unitrackerhq/unitracker/pkg/types"
)

// Document record structs mirror the table columns exactly, nulls
// included: pointer fields serialize to JSON null so a round trip
// preserves NULL columns.

// gameRecord is one row of the games sequence.
type gameRecord struct {
	Name                  string   `json:"name"`
	Progress              *int64   `json:"progress"`
	HoursPlayed           *float64 `json:"hours_played"`
	StartDate             *string  `json:"start_date"`
	EndDate               *string  `json:"end_date"`
	TotalAchievements     *int64   `json:"total_achievements"`
	CompletedAchievements *int64   `json:"completed_achievements"`
	SeriesName            *string  `json:"series_name"`
}

// tagRecord is one row of the genres or platforms sequence.
type tagRecord struct {
	GameName string `json:"game_name"`
	Name     string `json:"name"`
}

// seriesRecord is one row of the series sequence. Aggregates travel
// verbatim; the import replays them without re-deriving.
type seriesRecord struct {
	Name          string   `json:"name"`
	NumGames      *int64   `json:"num_games"`
	TotalPlaytime *float64 `json:"total_playtime"`
}

// document is the interchange tree: exactly four top-level sequences.
type document struct {
	Games     []gameRecord   `json:"games"`
	Genres    []tagRecord    `json:"genres"`
	Platforms []tagRecord    `json:"platforms"`
	Series    []seriesRecord `json:"series"`
}

// ExportDocument reads every row of all four tables and writes them to
// path as a JSON document. Exporting fails when any table is completely
// empty; that strictness is part of the existing contract.
func (t *Transfer) ExportDocument(path string) error {
	doc, err := t.readDocument()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

// ImportDocument parses the document at path, replays it into a scratch
// store under a second connection, and only on full success copies the
// scratch file over the live store. Any single failed insert discards the
// scratch and leaves the live store untouched.
//
// Replay order is series, games, genres, platforms: with series rows
// loaded verbatim first, games carry no load-time dependency on the
// aggregator.
func (t *Transfer) ImportDocument(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: parsing document: %v", types.ErrValidation, err)
	}
	if doc.Games == nil || doc.Genres == nil || doc.Platforms == nil || doc.Series == nil {
		return fmt.Errorf("%w: document is missing a required sequence", types.ErrValidation)
	}

	scratch := filepath.Join(os.TempDir(), "unitracker-import-"+uuid.NewString()+".db")
	defer func() {
		os.Remove(scratch)
		os.Remove(scratch + "-wal")
		os.Remove(scratch + "-shm")
	}()

	if err := buildScratch(scratch, &doc); err != nil {
		return err
	}
	return t.replaceLive(scratch)
}

// buildScratch creates a fresh store file at path and replays the
// document into it inside one transaction.
func buildScratch(path string, doc *document) error {
	db, err := openDB(path)
	if err != nil {
		return fmt.Errorf("opening scratch store: %w", err)
	}
	defer db.Close()

	if err := createSchemaOn(db); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning document load: %w", err)
	}
	defer tx.Rollback()

	for _, sr := range doc.Series {
		query, args, err := sq.Insert("series").
			Columns("name", "num_games", "total_playtime").
			Values(sr.Name, sr.NumGames, sr.TotalPlaytime).ToSql()
		if err == nil {
			_, err = tx.Exec(query, args...)
		}
		if err != nil {
			return fmt.Errorf("loading series %q: %w", sr.Name, err)
		}
	}
	for _, gr := range doc.Games {
		cols, vals, err := orderedColumns(gr.fields())
		if err != nil {
			return err
		}
		query, args, err := sq.Insert("game").Columns(cols...).Values(vals...).ToSql()
		if err == nil {
			_, err = tx.Exec(query, args...)
		}
		if err != nil {
			return fmt.Errorf("loading game %q: %w", gr.Name, err)
		}
	}
	if err := loadTags(tx, "genre", doc.Genres); err != nil {
		return err
	}
	if err := loadTags(tx, "platform", doc.Platforms); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing document load: %w", err)
	}
	// Flush the WAL so the scratch file alone carries the loaded rows.
	if _, err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("checkpointing scratch store: %w", err)
	}
	return nil
}

func loadTags(tx *sql.Tx, table string, records []tagRecord) error {
	for _, tr := range records {
		query, args, err := sq.Insert(table).
			Columns("game_name", "name").
			Values(tr.GameName, tr.Name).ToSql()
		if err == nil {
			_, err = tx.Exec(query, args...)
		}
		if err != nil {
			return fmt.Errorf("loading %s tag for %q: %w", table, tr.GameName, err)
		}
	}
	return nil
}

// fields converts a game record into the sparse field map the record
// store inserts with: nil (NULL) columns stay absent.
func (gr gameRecord) fields() map[string]any {
	fields := map[string]any{types.ColName: gr.Name}
	if gr.Progress != nil {
		fields[types.ColProgress] = *gr.Progress
	}
	if gr.HoursPlayed != nil {
		fields[types.ColHoursPlayed] = *gr.HoursPlayed
	}
	if gr.StartDate != nil {
		fields[types.ColStartDate] = *gr.StartDate
	}
	if gr.EndDate != nil {
		fields[types.ColEndDate] = *gr.EndDate
	}
	if gr.TotalAchievements != nil {
		fields[types.ColTotalAchievements] = *gr.TotalAchievements
	}
	if gr.CompletedAchievements != nil {
		fields[types.ColCompletedAchievements] = *gr.CompletedAchievements
	}
	if gr.SeriesName != nil {
		fields[types.ColSeriesName] = *gr.SeriesName
	}
	return fields
}

// readDocument materializes all four tables. Any empty table aborts the
// export with ErrEmptyTable.
func (t *Transfer) readDocument() (*document, error) {
	var doc document

	if err := t.readGames(&doc); err != nil {
		return nil, err
	}
	var err error
	if doc.Genres, err = t.readTags("genre"); err != nil {
		return nil, err
	}
	if doc.Platforms, err = t.readTags("platform"); err != nil {
		return nil, err
	}
	if err := t.readSeries(&doc); err != nil {
		return nil, err
	}

	for table, count := range map[string]int{
		"games":     len(doc.Games),
		"genres":    len(doc.Genres),
		"platforms": len(doc.Platforms),
		"series":    len(doc.Series),
	} {
		if count == 0 {
			return nil, fmt.Errorf("%w: %s", types.ErrEmptyTable, table)
		}
	}
	return &doc, nil
}

func (t *Transfer) readGames(doc *document) error {
	rows, err := t.s.query(`SELECT name, progress, hours_played, start_date, end_date,
        total_achievements, completed_achievements, series_name FROM game ORDER BY name`)
	if err != nil {
		return fmt.Errorf("reading games: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var gr gameRecord
		if err := rows.Scan(&gr.Name, &gr.Progress, &gr.HoursPlayed, &gr.StartDate,
			&gr.EndDate, &gr.TotalAchievements, &gr.CompletedAchievements, &gr.SeriesName); err != nil {
			return fmt.Errorf("scanning game row: %w", err)
		}
		doc.Games = append(doc.Games, gr)
	}
	return rows.Err()
}

func (t *Transfer) readTags(table string) ([]tagRecord, error) {
	rows, err := t.s.query("SELECT game_name, name FROM " + table + " ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("reading %s tags: %w", table, err)
	}
	defer rows.Close()

	var records []tagRecord
	for rows.Next() {
		var tr tagRecord
		if err := rows.Scan(&tr.GameName, &tr.Name); err != nil {
			return nil, fmt.Errorf("scanning %s tag row: %w", table, err)
		}
		records = append(records, tr)
	}
	return records, rows.Err()
}

func (t *Transfer) readSeries(doc *document) error {
	rows, err := t.s.query("SELECT name, num_games, total_playtime FROM series ORDER BY name")
	if err != nil {
		return fmt.Errorf("reading series: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sr seriesRecord
		if err := rows.Scan(&sr.Name, &sr.NumGames, &sr.TotalPlaytime); err != nil {
			return fmt.Errorf("scanning series row: %w", err)
		}
		doc.Series = append(doc.Series, sr)
	}
	return rows.Err()
}

// writeFileAtomic writes data to path via the temp-file, fsync, rename
// pattern so a failed export never leaves a truncated document behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".document-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
