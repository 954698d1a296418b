package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Counter is the component used throughout the store tests.
type Counter struct {
	N int
}

type Health struct {
	HP int
}

func newCounterStore(t *testing.T) Store {
	t.Helper()
	s, err := RegisterTable[Counter](New())
	require.NoError(t, err)
	return s
}

func TestRegisterTable_Twice(t *testing.T) {
	s := newCounterStore(t)

	_, err := RegisterTable[Counter](s)
	require.ErrorIs(t, err, ErrTableAlreadyRegistered)

	// A different type is independent.
	_, err = RegisterTable[Health](s)
	require.NoError(t, err)
}

func TestInsert_UnregisteredTable(t *testing.T) {
	_, err := Insert(New(), "a", Counter{N: 1})
	require.ErrorIs(t, err, ErrTableNotRegistered)
}

func TestInsert_UpsertOverwrites(t *testing.T) {
	s := newCounterStore(t)

	s, err := Insert(s, "a", Counter{N: 0})
	require.NoError(t, err)
	s, err = Insert(s, "a", Counter{N: 5})
	require.NoError(t, err)

	got, err := Entry[Counter](s, "a")
	require.NoError(t, err)
	assert.Equal(t, Counter{N: 5}, got)

	n, err := TableLen[Counter](s)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "upsert must not create a second row")
}

func TestInsert_DoesNotMutateOriginal(t *testing.T) {
	s0 := newCounterStore(t)
	s0, err := Insert(s0, "a", Counter{N: 1})
	require.NoError(t, err)

	s1, err := Insert(s0, "a", Counter{N: 2})
	require.NoError(t, err)
	s2, err := Insert(s0, "b", Counter{N: 3})
	require.NoError(t, err)

	// The original version still sees its own world.
	got, err := Entry[Counter](s0, "a")
	require.NoError(t, err)
	assert.Equal(t, Counter{N: 1}, got)
	assert.False(t, Exists[Counter](s0, "b"))

	got, err = Entry[Counter](s1, "a")
	require.NoError(t, err)
	assert.Equal(t, Counter{N: 2}, got)

	assert.True(t, Exists[Counter](s2, "b"))
}

func TestEntry_NotFound(t *testing.T) {
	s := newCounterStore(t)

	_, err := Entry[Counter](s, "missing")
	require.ErrorIs(t, err, ErrEntryNotFound)

	// Lookup reports absence without error.
	_, ok := Lookup[Counter](s, "missing")
	assert.False(t, ok)
}

func TestRemoveEntry_Idempotent(t *testing.T) {
	s := newCounterStore(t)
	s, err := Insert(s, "a", Counter{N: 1})
	require.NoError(t, err)

	s = RemoveEntry[Counter](s, "a")
	assert.False(t, Exists[Counter](s, "a"))

	// Absent id and unregistered table are both no-ops.
	s = RemoveEntry[Counter](s, "a")
	s = RemoveEntry[Health](s, "a")
	assert.False(t, Exists[Counter](s, "a"))
}

func TestRemoveEntry_DoesNotMutateOriginal(t *testing.T) {
	s0 := newCounterStore(t)
	s0, err := Insert(s0, "a", Counter{N: 1})
	require.NoError(t, err)

	s1 := RemoveEntry[Counter](s0, "a")

	assert.True(t, Exists[Counter](s0, "a"), "original version must keep the row")
	assert.False(t, Exists[Counter](s1, "a"))
}

func TestTable_EmptyButRegistered(t *testing.T) {
	s := newCounterStore(t)

	view, err := Table[Counter](s)
	require.NoError(t, err)
	assert.Empty(t, view)

	// Unregistered tables are a hard error, never auto-created.
	_, err = Table[Health](s)
	require.ErrorIs(t, err, ErrTableNotRegistered)
}

func TestTable_ViewIsACopy(t *testing.T) {
	s := newCounterStore(t)
	s, err := Insert(s, "a", Counter{N: 1})
	require.NoError(t, err)

	view, err := Table[Counter](s)
	require.NoError(t, err)
	view["a"] = Counter{N: 99}
	view["b"] = Counter{N: 100}

	got, err := Entry[Counter](s, "a")
	require.NoError(t, err)
	assert.Equal(t, Counter{N: 1}, got, "mutating the view must not touch the store")
	assert.False(t, Exists[Counter](s, "b"))
}

func TestSingleton_RoundTrip(t *testing.T) {
	s := New()

	_, err := Singleton[Counter](s)
	require.ErrorIs(t, err, ErrSingletonNotFound)

	s1 := PutSingleton(s, Counter{N: 7})
	got, err := Singleton[Counter](s1)
	require.NoError(t, err)
	assert.Equal(t, Counter{N: 7}, got)

	// The original version is untouched.
	_, err = Singleton[Counter](s)
	require.ErrorIs(t, err, ErrSingletonNotFound)
}

func TestNamedSingleton_MultipleOfSameType(t *testing.T) {
	s := New()
	s = PutNamedSingleton(s, "births", int64(3))
	s = PutNamedSingleton(s, "deaths", int64(5))

	births, err := NamedSingleton[int64](s, "births")
	require.NoError(t, err)
	deaths, err := NamedSingleton[int64](s, "deaths")
	require.NoError(t, err)
	assert.Equal(t, int64(3), births)
	assert.Equal(t, int64(5), deaths)

	_, err = NamedSingleton[int64](s, "marriages")
	require.ErrorIs(t, err, ErrSingletonNotFound)

	_, err = NamedSingleton[string](s, "births")
	require.ErrorIs(t, err, ErrSingletonTypeMismatch)
}

func TestRemoveSingleton(t *testing.T) {
	s := PutSingleton(New(), Counter{N: 1})
	s = RemoveSingleton[Counter](s)
	_, err := Singleton[Counter](s)
	require.ErrorIs(t, err, ErrSingletonNotFound)

	// Clearing an unset slot is a no-op.
	s = RemoveSingleton[Counter](s)
	s = RemoveNamedSingleton(s, "unset")
	assert.False(t, HasSingleton[Counter](s))
}

func TestAdvanceTick(t *testing.T) {
	s0 := New()
	s1 := s0.AdvanceTick()

	assert.Equal(t, int64(0), s0.Tick())
	assert.Equal(t, int64(1), s1.Tick())
}

func TestTableNames_Sorted(t *testing.T) {
	s, err := RegisterTable[Health](New())
	require.NoError(t, err)
	s, err = RegisterTable[Counter](s)
	require.NoError(t, err)

	names := s.TableNames()
	require.Len(t, names, 2)
	assert.Equal(t, "store.Counter", names[0])
	assert.Equal(t, "store.Health", names[1])
}

func TestRef_Resolve(t *testing.T) {
	s := newCounterStore(t)
	s, err := Insert(s, "a", Counter{N: 4})
	require.NoError(t, err)

	ref := NewRef[Counter]("a")
	got, err := ref.Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, Counter{N: 4}, got)

	// A dangling ref resolves to entry-not-found.
	s = RemoveEntry[Counter](s, "a")
	_, err = ref.Resolve(s)
	require.ErrorIs(t, err, ErrEntryNotFound)
	_, ok := ref.TryResolve(s)
	assert.False(t, ok)

	assert.True(t, NewRef[Counter]("").IsZero())
	assert.False(t, ref.IsZero())
}

func TestNewEntityID_Unique(t *testing.T) {
	a := NewEntityID()
	b := NewEntityID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
