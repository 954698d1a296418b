package store

import "errors"

var (
	// ErrTableAlreadyRegistered indicates RegisterTable was called twice for one type.
	ErrTableAlreadyRegistered = errors.New("store: table already registered")
	// ErrTableNotRegistered signals an operation against a table that was never registered.
	ErrTableNotRegistered = errors.New("store: table not registered")
	// ErrEntryNotFound signals a lookup for an id with no row in the table.
	ErrEntryNotFound = errors.New("store: entry not found")
	// ErrSingletonNotFound signals a read of a singleton slot that was never set.
	ErrSingletonNotFound = errors.New("store: singleton not found")
	// ErrSingletonTypeMismatch signals a named singleton holding a different type
	// than the one requested.
	ErrSingletonTypeMismatch = errors.New("store: singleton type mismatch")
)
