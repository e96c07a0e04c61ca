package store

import (
	"database/sql"
	"fmt"

	"github.com/unitrackerhq/unitracker/pkg/types"
)

// Schema DDL. Referential integrity between the tables is maintained by
// the record store's explicit cascades, not by the engine: the tag and
// series tables carry no FOREIGN KEY clauses.
const (
	createGame = `CREATE TABLE IF NOT EXISTS game (
    name TEXT PRIMARY KEY,
    progress INTEGER,
    hours_played REAL,
    start_date TEXT,
    end_date TEXT,
    total_achievements INTEGER,
    completed_achievements INTEGER,
    series_name TEXT
);`

	createGenre = `CREATE TABLE IF NOT EXISTS genre (
    game_name TEXT NOT NULL,
    name TEXT NOT NULL
);`

	createPlatform = `CREATE TABLE IF NOT EXISTS platform (
    game_name TEXT NOT NULL,
    name TEXT NOT NULL
);`

	createSeries = `CREATE TABLE IF NOT EXISTS series (
    name TEXT PRIMARY KEY,
    num_games INTEGER,
    total_playtime REAL
);`
)

// Index DDL for the cascade and join paths.
const (
	idxGenreGame    = `CREATE INDEX IF NOT EXISTS idx_genre_game ON genre(game_name);`
	idxPlatformGame = `CREATE INDEX IF NOT EXISTS idx_platform_game ON platform(game_name);`
	idxGameSeries   = `CREATE INDEX IF NOT EXISTS idx_game_series ON game(series_name);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createGame,
	createGenre,
	createPlatform,
	createSeries,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxGenreGame,
	idxPlatformGame,
	idxGameSeries,
}

// tableColumns maps each table to its full column list in schema order.
// Used by the document transfer replay and by snapshot validation probes.
var tableColumns = map[string][]string{
	"game":     types.GameColumns,
	"genre":    {"game_name", "name"},
	"platform": {"game_name", "name"},
	"series":   {"name", "num_games", "total_playtime"},
}

// tableOrder is the canonical table ordering for probes and exports.
var tableOrder = []string{"game", "genre", "platform", "series"}

// CreateSchema creates the four tables and their indexes if they do not
// already exist. Safe to invoke on every startup.
func (s *Store) CreateSchema() error {
	for _, ddl := range schemaDDL {
		if _, err := s.exec(ddl); err != nil {
			return fmt.Errorf("%w: %v", types.ErrSchema, err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := s.exec(ddl); err != nil {
			return fmt.Errorf("%w: %v", types.ErrSchema, err)
		}
	}
	return nil
}

// createSchemaOn applies the same DDL to an arbitrary handle. The transfer
// engine uses it to shape scratch stores before replaying a document.
func createSchemaOn(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("%w: %v", types.ErrSchema, err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("%w: %v", types.ErrSchema, err)
		}
	}
	return nil
}
