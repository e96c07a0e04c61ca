package types

import "errors"

// Record store errors.
var (
	ErrNotFound      = errors.New("game not found")
	ErrInvalidName   = errors.New("game name must not be empty")
	ErrUnknownColumn = errors.New("unknown game column")
)

// Schema and transfer errors. Schema failure is the only one treated as
// fatal by convention: callers must not proceed with a half-initialized
// store.
var (
	ErrSchema     = errors.New("schema creation failed")
	ErrValidation = errors.New("store does not match the expected schema")
	ErrSameFile   = errors.New("source and destination are the same file")
	ErrEmptyTable = errors.New("table has no rows to export")
)
