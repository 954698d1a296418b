package store

import (
	"reflect"
	"sort"

	"github.com/benbjohnson/immutable"
	"github.com/google/uuid"
)

// EntityID identifies a row within a table. IDs are plain strings so content
// loaders can use stable keys ("trait/brave") while simulation systems use
// generated ones.
type EntityID string

// NewEntityID returns a fresh random EntityID.
func NewEntityID() EntityID {
	return EntityID(uuid.NewString())
}

// Store is one immutable version of the world: component tables, singleton
// values, and the pending message log. The zero value is not usable; call New.
//
// Store is a small value (a few pointers) and is always passed by value.
// Copies share structure; mutating operations return new versions.
type Store struct {
	tables     *immutable.Map[string, *immutable.Map[EntityID, any]]
	singletons *immutable.Map[string, any]
	messages   *immutable.List[Message]
	tick       int64
}

// New returns an empty Store at tick 0 with no tables registered.
func New() Store {
	return Store{
		tables:     immutable.NewMap[string, *immutable.Map[EntityID, any]](stringHasher[string]{}),
		singletons: immutable.NewMap[string, any](stringHasher[string]{}),
		messages:   immutable.NewList[Message](),
	}
}

// Tick reports the tick this version belongs to. The scheduler advances it
// once per tick; SendMessage stamps outgoing messages with it.
func (s Store) Tick() int64 {
	return s.tick
}

// AdvanceTick returns a new Store whose tick counter is one higher. Called by
// the scheduler at the start of each tick, never by systems.
func (s Store) AdvanceTick() Store {
	s.tick++
	return s
}

// TableNames returns the registered table keys in sorted order.
func (s Store) TableNames() []string {
	names := make([]string, 0, s.tables.Len())
	itr := s.tables.Iterator()
	for !itr.Done() {
		name, _, _ := itr.Next()
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// tableKey derives the table key for a component type. One table per distinct
// Go type; the key is the fully qualified type name.
func tableKey[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// newTable returns an empty component table.
func newTable() *immutable.Map[EntityID, any] {
	return immutable.NewMap[EntityID, any](stringHasher[EntityID]{})
}

// sortedIDs returns a table's entity ids in sorted order. Query and graph
// helpers iterate in this order so results are deterministic regardless of
// hash layout.
func sortedIDs(table *immutable.Map[EntityID, any]) []EntityID {
	ids := make([]EntityID, 0, table.Len())
	itr := table.Iterator()
	for !itr.Done() {
		id, _, _ := itr.Next()
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// stringHasher hashes string-kinded keys with FNV-1a. The immutable package's
// default hasher only recognizes built-in key types, so defined types like
// EntityID need an explicit hasher.
type stringHasher[K ~string] struct{}

func (stringHasher[K]) Hash(key K) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(key); i++ {
		h ^= uint32(key[i])
		h *= prime32
	}
	return h
}

func (stringHasher[K]) Equal(a, b K) bool {
	return a == b
}
