package store

// Query helpers are derived conveniences over EachEntry. They carry no
// invariants of their own; errors are the underlying table errors.

// Where returns the rows satisfying pred.
func Where[T any](s Store, pred func(EntityID, T) bool) (map[EntityID]T, error) {
	out := make(map[EntityID]T)
	err := EachEntry(s, func(id EntityID, value T) bool {
		if pred(id, value) {
			out[id] = value
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SelectEntries projects every row through fn, in sorted id order.
func SelectEntries[T, R any](s Store, fn func(EntityID, T) R) ([]R, error) {
	var out []R
	err := EachEntry(s, func(id EntityID, value T) bool {
		out = append(out, fn(id, value))
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// First returns the first row (in sorted id order) satisfying pred. The bool
// result distinguishes "no match" from a real row.
func First[T any](s Store, pred func(EntityID, T) bool) (EntityID, T, bool, error) {
	var (
		foundID EntityID
		found   T
		ok      bool
	)
	err := EachEntry(s, func(id EntityID, value T) bool {
		if pred(id, value) {
			foundID, found, ok = id, value, true
			return false
		}
		return true
	})
	if err != nil {
		var zero T
		return "", zero, false, err
	}
	return foundID, found, ok, nil
}

// AnyEntry reports whether any row satisfies pred.
func AnyEntry[T any](s Store, pred func(EntityID, T) bool) (bool, error) {
	_, _, ok, err := First(s, pred)
	return ok, err
}

// CountEntries counts the rows satisfying pred. A nil pred counts all rows.
func CountEntries[T any](s Store, pred func(EntityID, T) bool) (int, error) {
	if pred == nil {
		return TableLen[T](s)
	}
	n := 0
	err := EachEntry(s, func(id EntityID, value T) bool {
		if pred(id, value) {
			n++
		}
		return true
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// JoinRow pairs one left row with one matching right row.
type JoinRow[L, R any] struct {
	LeftID  EntityID
	Left    L
	RightID EntityID
	Right   R
}

// Join performs an inner join of two tables on key-selector equality. Rows
// are ordered by left id, then right id, so results are deterministic.
func Join[L, R any, K comparable](
	s Store,
	leftKey func(EntityID, L) K,
	rightKey func(EntityID, R) K,
) ([]JoinRow[L, R], error) {
	index, err := rightIndex[R](s, rightKey)
	if err != nil {
		return nil, err
	}
	var out []JoinRow[L, R]
	err = EachEntry(s, func(lid EntityID, left L) bool {
		for _, match := range index[leftKey(lid, left)] {
			out = append(out, JoinRow[L, R]{LeftID: lid, Left: left, RightID: match.id, Right: match.value})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LeftJoinRow pairs a left row with its match, if any.
type LeftJoinRow[L, R any] struct {
	LeftID  EntityID
	Left    L
	RightID EntityID
	Right   R
	Matched bool
}

// LeftJoin is Join but keeps unmatched left rows with Matched=false.
func LeftJoin[L, R any, K comparable](
	s Store,
	leftKey func(EntityID, L) K,
	rightKey func(EntityID, R) K,
) ([]LeftJoinRow[L, R], error) {
	index, err := rightIndex[R](s, rightKey)
	if err != nil {
		return nil, err
	}
	var out []LeftJoinRow[L, R]
	err = EachEntry(s, func(lid EntityID, left L) bool {
		matches := index[leftKey(lid, left)]
		if len(matches) == 0 {
			out = append(out, LeftJoinRow[L, R]{LeftID: lid, Left: left})
			return true
		}
		for _, match := range matches {
			out = append(out, LeftJoinRow[L, R]{
				LeftID: lid, Left: left,
				RightID: match.id, Right: match.value,
				Matched: true,
			})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type indexed[R any] struct {
	id    EntityID
	value R
}

// rightIndex builds a key → rows index over R's table in sorted id order.
func rightIndex[R any, K comparable](s Store, rightKey func(EntityID, R) K) (map[K][]indexed[R], error) {
	index := make(map[K][]indexed[R])
	err := EachEntry(s, func(rid EntityID, right R) bool {
		k := rightKey(rid, right)
		index[k] = append(index[k], indexed[R]{id: rid, value: right})
		return true
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}

// GroupCount counts rows per key.
func GroupCount[T any, K comparable](s Store, key func(EntityID, T) K) (map[K]int, error) {
	out := make(map[K]int)
	err := EachEntry(s, func(id EntityID, value T) bool {
		out[key(id, value)]++
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GroupAggregate folds rows per key, starting each group from zero. Rows are
// folded in sorted id order.
func GroupAggregate[T any, K comparable, A any](
	s Store,
	key func(EntityID, T) K,
	zero A,
	fold func(A, EntityID, T) A,
) (map[K]A, error) {
	out := make(map[K]A)
	err := EachEntry(s, func(id EntityID, value T) bool {
		k := key(id, value)
		acc, ok := out[k]
		if !ok {
			acc = zero
		}
		out[k] = fold(acc, id, value)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
