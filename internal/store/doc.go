// Package store implements the persistence layer for the Unitracker game
// collection: a four-table SQLite schema (game, genre, platform, series)
// with application-level cascades instead of database-enforced foreign key
// actions.
//
// The layout follows a facade over per-concern sub-stores:
//
//	Store
//	 ├── Games()      CRUD on the game table and its tag sets
//	 ├── Series()     derived count/playtime aggregates per series
//	 ├── Projector()  paginated, joined read-side projections
//	 └── Transfer()   snapshot and document import/export
//
// Every cross-table effect of a mutation lives inside the single entry
// point that performs that mutation, in a fixed order: for adds the series
// aggregate is bumped before the game row is inserted and tags follow it;
// for deletes the game row goes first, then tags, then the aggregate. The
// sequences are not transactional — a mid-sequence failure leaves the
// primary row committed and the failed side effect logged at Warn. Only
// the primary statement's result is surfaced to the caller.
//
// All statements are built with squirrel so sparse field maps translate
// into per-call column lists, and every execution is logged at Debug
// through the store's logger.
package store
