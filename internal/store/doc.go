// Package store implements the immutable world state for the simulation.
//
// A Store is a value holding typed component tables, singleton values, and a
// pending message log. Mutating operations never modify a Store in place;
// they return a new Store that shares unmodified sub-structure with the
// original. Two callers can hold the same Store version and read it
// concurrently without synchronization.
//
// ARCHITECTURE:
//
// Tables:
// One table per registered component type, keyed by EntityID. Tables must be
// registered before use - inserting into an unregistered table is an error,
// never an auto-create. Insert is an upsert; rows are replaced, never mutated.
//
// Singletons:
// At most one value per component type, plus named slots for holding several
// values of the same type under explicit string keys.
//
// Message log:
// An append-only, tick-stamped log. Peeking queries (Messages, MessagesFrom)
// never modify the log. ConsumeMessages is the only destructive read: it
// returns the matched subsequence and a new Store with exactly those entries
// removed, preserving the relative order of the remainder. Because every call
// returns a fresh Store, consuming twice from the same Store value yields the
// matches both times; consuming from the returned Store yields nothing.
//
// INVARIANTS:
//   - A Store observed before and after any mutating call is bit-for-bit
//     unchanged; only the returned value reflects the mutation.
//   - Message order is send order. Consumption removes exactly the matched
//     subsequence and preserves the order of everything else.
//   - Table iteration used by the query and graph helpers visits entries in
//     sorted EntityID order so results are deterministic across runs.
//
// Typed operations are package-level generic functions (Go methods cannot
// introduce type parameters): store.Insert[Position](s, id, p), not
// s.Insert(id, p).
package store
