package store

import "fmt"

// RegisterTable adds an empty table for component type T.
// Registering the same type twice returns ErrTableAlreadyRegistered.
func RegisterTable[T any](s Store) (Store, error) {
	key := tableKey[T]()
	if _, ok := s.tables.Get(key); ok {
		return s, fmt.Errorf("%w: %s", ErrTableAlreadyRegistered, key)
	}
	s.tables = s.tables.Set(key, newTable())
	return s, nil
}

// Insert upserts a row: it creates the slot if absent and replaces the value
// if present. The table must have been registered.
func Insert[T any](s Store, id EntityID, value T) (Store, error) {
	key := tableKey[T]()
	table, ok := s.tables.Get(key)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrTableNotRegistered, key)
	}
	s.tables = s.tables.Set(key, table.Set(id, value))
	return s, nil
}

// RemoveEntry deletes a row. Removal is idempotent: an absent id and an
// unregistered table are both no-ops, never errors.
func RemoveEntry[T any](s Store, id EntityID) Store {
	key := tableKey[T]()
	table, ok := s.tables.Get(key)
	if !ok {
		return s
	}
	if _, ok := table.Get(id); !ok {
		return s
	}
	s.tables = s.tables.Set(key, table.Delete(id))
	return s
}

// PutSingleton sets the singleton slot for type T, replacing any prior value.
func PutSingleton[T any](s Store, value T) Store {
	s.singletons = s.singletons.Set(tableKey[T](), value)
	return s
}

// PutNamedSingleton sets a singleton under an explicit name, allowing several
// singletons of the same type (for example multiple int64 counters).
func PutNamedSingleton[T any](s Store, name string, value T) Store {
	s.singletons = s.singletons.Set(name, value)
	return s
}

// RemoveSingleton clears the singleton slot for type T. No-op if unset.
func RemoveSingleton[T any](s Store) Store {
	s.singletons = s.singletons.Delete(tableKey[T]())
	return s
}

// RemoveNamedSingleton clears a named singleton slot. No-op if unset.
func RemoveNamedSingleton(s Store, name string) Store {
	s.singletons = s.singletons.Delete(name)
	return s
}
