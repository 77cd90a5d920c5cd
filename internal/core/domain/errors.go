package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotInitialized indicates no configuration exists yet.
	// The user must run `scour init` before any other command.
	ErrNotInitialized = errors.New("not initialized")

	// ErrIndexMissing indicates the on-disk index metadata is absent.
	ErrIndexMissing = errors.New("index missing")

	// ErrSchemaMismatch indicates the persisted index schema does not
	// structurally match the schema this binary expects.
	ErrSchemaMismatch = errors.New("index schema mismatch")

	// ErrIndexEmpty indicates the index exists but contains no documents.
	ErrIndexEmpty = errors.New("index is empty")

	// ErrNeverIndexed indicates no ingestion pass has completed yet.
	ErrNeverIndexed = errors.New("index has not been built yet")

	// ErrInvalidQuery indicates the query string failed to parse.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrFileTooLarge indicates a file exceeded the ingestion size ceiling
	// while being read.
	ErrFileTooLarge = errors.New("file exceeds size limit")
)
