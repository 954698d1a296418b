package store

// Ref is a typed logical foreign key into another table. Resolution is a
// lookup, never an ownership relation; a Ref can dangle if the target row was
// removed, which resolves to ErrEntryNotFound.
type Ref[T any] struct {
	ID EntityID
}

// NewRef wraps an id as a typed reference.
func NewRef[T any](id EntityID) Ref[T] {
	return Ref[T]{ID: id}
}

// IsZero reports whether the reference points nowhere.
func (r Ref[T]) IsZero() bool {
	return r.ID == ""
}

// Resolve looks up the referenced row.
func (r Ref[T]) Resolve(s Store) (T, error) {
	return Entry[T](s, r.ID)
}

// TryResolve looks up the referenced row, reporting absence without error.
func (r Ref[T]) TryResolve(s Store) (T, bool) {
	return Lookup[T](s, r.ID)
}
