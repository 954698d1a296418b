package store

import "fmt"

// Entry returns the row stored under id. The table must be registered and the
// row must exist; the two failure modes are distinguishable via errors.Is.
func Entry[T any](s Store, id EntityID) (T, error) {
	var zero T
	key := tableKey[T]()
	table, ok := s.tables.Get(key)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrTableNotRegistered, key)
	}
	value, ok := table.Get(id)
	if !ok {
		return zero, fmt.Errorf("%w: %s[%s]", ErrEntryNotFound, key, id)
	}
	return value.(T), nil
}

// Lookup is the non-erroring form of Entry: it reports presence explicitly
// and treats an unregistered table as absent.
func Lookup[T any](s Store, id EntityID) (T, bool) {
	var zero T
	table, ok := s.tables.Get(tableKey[T]())
	if !ok {
		return zero, false
	}
	value, ok := table.Get(id)
	if !ok {
		return zero, false
	}
	return value.(T), true
}

// Exists reports whether a row exists for id.
func Exists[T any](s Store, id EntityID) bool {
	_, ok := Lookup[T](s, id)
	return ok
}

// Table returns a copied read-only view of T's table. A registered table with
// no rows yields an empty map; an unregistered table is an error, never an
// implicit registration.
func Table[T any](s Store) (map[EntityID]T, error) {
	key := tableKey[T]()
	table, ok := s.tables.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotRegistered, key)
	}
	view := make(map[EntityID]T, table.Len())
	itr := table.Iterator()
	for !itr.Done() {
		id, value, _ := itr.Next()
		view[id] = value.(T)
	}
	return view, nil
}

// TableLen reports the number of rows in T's table.
func TableLen[T any](s Store) (int, error) {
	key := tableKey[T]()
	table, ok := s.tables.Get(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrTableNotRegistered, key)
	}
	return table.Len(), nil
}

// EachEntry visits every row in sorted id order without copying the table.
// The callback returns false to stop early.
func EachEntry[T any](s Store, fn func(EntityID, T) bool) error {
	key := tableKey[T]()
	table, ok := s.tables.Get(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTableNotRegistered, key)
	}
	for _, id := range sortedIDs(table) {
		value, _ := table.Get(id)
		if !fn(id, value.(T)) {
			return nil
		}
	}
	return nil
}

// Singleton returns the singleton value for type T.
func Singleton[T any](s Store) (T, error) {
	var zero T
	key := tableKey[T]()
	value, ok := s.singletons.Get(key)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrSingletonNotFound, key)
	}
	return value.(T), nil
}

// NamedSingleton returns the singleton stored under an explicit name. A slot
// holding a value of a different type is a type mismatch, not an absence.
func NamedSingleton[T any](s Store, name string) (T, error) {
	var zero T
	value, ok := s.singletons.Get(name)
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrSingletonNotFound, name)
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %T", ErrSingletonTypeMismatch, name, value)
	}
	return typed, nil
}

// HasSingleton reports whether the singleton slot for type T is set.
func HasSingleton[T any](s Store) bool {
	_, ok := s.singletons.Get(tableKey[T]())
	return ok
}
