package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// dsnParams keeps a single writer from tripping over transient lock errors
// and enables WAL so snapshot copies see a consistent file after checkpoint.
const dsnParams = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Store owns the live SQLite handle and the sub-stores that operate on it.
// It is single-writer, single-reader: operations run to completion before
// control returns, and no locking is layered on top of the driver's own.
type Store struct {
	path string
	db   *sql.DB
	log  *zap.SugaredLogger

	games    *GameStore
	series   *SeriesStore
	transfer *Transfer
}

// Open opens (creating if needed) the store file at path, applies the
// schema, and returns the ready Store. A schema failure is fatal: the
// handle is closed and the error returned, so callers never proceed with
// a half-initialized store.
func Open(path string, log *zap.SugaredLogger) (*Store, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory %s: %w", dir, err)
		}
	}

	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path: path,
		db:   db,
		log:  log.Named("store"),
	}
	s.games = &GameStore{s: s}
	s.series = &SeriesStore{s: s}
	s.transfer = &Transfer{s: s}

	if err := s.CreateSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// openDB opens and pings a SQLite database at path.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// Path returns the location of the live store file.
func (s *Store) Path() string {
	return s.path
}

// Games returns the record store for the game table and its tag sets.
func (s *Store) Games() *GameStore {
	return s.games
}

// Series returns the aggregate store for derived series rows.
func (s *Store) Series() *SeriesStore {
	return s.series
}

// Transfer returns the snapshot/document transfer engine.
func (s *Store) Transfer() *Transfer {
	return s.transfer
}

// Projector returns a fresh paginated projector with its cursor at page 0.
// A non-positive itemsPerPage falls back to the documented default.
func (s *Store) Projector(itemsPerPage int) *Projector {
	if itemsPerPage <= 0 {
		itemsPerPage = defaultItemsPerPage
	}
	return &Projector{s: s, itemsPerPage: itemsPerPage}
}

// Close releases the underlying handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// reopen re-establishes the live handle after the store file was replaced
// on disk. The previous handle must already be closed.
func (s *Store) reopen() error {
	db, err := openDB(s.path)
	if err != nil {
		return fmt.Errorf("reopening store: %w", err)
	}
	s.db = db
	return nil
}

// exec runs a statement against the live handle, logging it at debug level.
func (s *Store) exec(query string, args ...any) (sql.Result, error) {
	s.log.Debugw("exec", "query", query, "args", args)
	return s.db.Exec(query, args...)
}

// query runs a multi-row query against the live handle, logging it at debug level.
func (s *Store) query(query string, args ...any) (*sql.Rows, error) {
	s.log.Debugw("query", "query", query, "args", args)
	return s.db.Query(query, args...)
}

// queryRow runs a single-row query against the live handle, logging it at debug level.
func (s *Store) queryRow(query string, args ...any) *sql.Row {
	s.log.Debugw("query row", "query", query, "args", args)
	return s.db.QueryRow(query, args...)
}
