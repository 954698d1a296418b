package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/loom/internal/store"
)

// version returns a Store distinguishable by a counter singleton.
func version(n int) store.Store {
	return store.PutNamedSingleton(store.New(), "version", n)
}

func versionOf(t *testing.T, s store.Store) int {
	t.Helper()
	n, err := store.NamedSingleton[int](s, "version")
	require.NoError(t, err)
	return n
}

func TestUndoRedo_InverseLaw(t *testing.T) {
	m := NewManager()
	s0, s1 := version(0), version(1)

	// s0 was checkpointed, then the world advanced to s1.
	m.Checkpoint(s0)

	back := m.Undo(s1)
	assert.Equal(t, 0, versionOf(t, back))
	assert.True(t, m.CanRedo())

	forward := m.Redo(back)
	assert.Equal(t, 1, versionOf(t, forward))

	// And back again: Undo(Redo(s)) == s.
	again := m.Undo(forward)
	assert.Equal(t, 0, versionOf(t, again))
}

func TestUndo_EmptyIsNoOp(t *testing.T) {
	m := NewManager()
	s := version(7)

	assert.Equal(t, 7, versionOf(t, m.Undo(s)))
	assert.Equal(t, 7, versionOf(t, m.Redo(s)))
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
}

func TestCheckpoint_ClearsRedo(t *testing.T) {
	m := NewManager()
	m.Checkpoint(version(0))
	back := m.Undo(version(1))
	require.True(t, m.CanRedo())

	// A new forward action discards the redo branch for good.
	m.Checkpoint(back)
	assert.False(t, m.CanRedo())
}

func TestCheckpoint_Bounded(t *testing.T) {
	m := NewManager(WithMaxHistory(3))

	for i := 0; i < 5; i++ {
		m.Checkpoint(version(i))
	}

	assert.Equal(t, 3, m.UndoCount())

	// The most recent three survive; the two oldest were trimmed.
	assert.Equal(t, 4, versionOf(t, m.Undo(version(5))))
	assert.Equal(t, 3, versionOf(t, m.Undo(version(4))))
	assert.Equal(t, 2, versionOf(t, m.Undo(version(3))))
	assert.False(t, m.CanUndo())
}

func TestJumpBack(t *testing.T) {
	m := NewManager()
	for i := 0; i < 3; i++ {
		m.Checkpoint(version(i))
	}
	current := version(3)

	got, err := m.JumpBack(current, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, versionOf(t, got))
	assert.Equal(t, 1, m.UndoCount())
	assert.Equal(t, 2, m.RedoCount())

	// Redo walks forward through the intermediates in order.
	step := m.Redo(got)
	assert.Equal(t, 2, versionOf(t, step))
	step = m.Redo(step)
	assert.Equal(t, 3, versionOf(t, step))
}

func TestJumpBack_BeyondDepthIsNoOp(t *testing.T) {
	m := NewManager()
	m.Checkpoint(version(0))
	current := version(1)

	got, err := m.JumpBack(current, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, versionOf(t, got))
	assert.Equal(t, 1, m.UndoCount(), "stack untouched by a no-op jump")
}

func TestJumpBack_InvalidDistance(t *testing.T) {
	m := NewManager()
	_, err := m.JumpBack(version(0), 0)
	require.ErrorIs(t, err, ErrInvalidHistoryOperation)
	_, err = m.JumpBack(version(0), -2)
	require.ErrorIs(t, err, ErrInvalidHistoryOperation)
}

func TestBranch_PreservesContinuation(t *testing.T) {
	m := NewManager()
	m.Checkpoint(version(0))
	current := version(1)

	got, err := m.Branch(current, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, versionOf(t, got), "branch returns the state one checkpoint back")

	// The pre-branch current was preserved: undo returns to it.
	require.True(t, m.CanUndo())
	assert.False(t, m.CanRedo(), "branching is a forward action")
	back := m.Undo(got)
	assert.Equal(t, 1, versionOf(t, back))

	// The original checkpoint is still deeper in the stack.
	deeper := m.Undo(back)
	assert.Equal(t, 0, versionOf(t, deeper))
}

func TestBranch_BeyondDepthIsNoOp(t *testing.T) {
	m := NewManager()
	got, err := m.Branch(version(9), 1)
	require.NoError(t, err)
	assert.Equal(t, 9, versionOf(t, got))
	assert.False(t, m.CanUndo())
}

func TestBranch_InvalidDistance(t *testing.T) {
	m := NewManager()
	m.Checkpoint(version(0))
	_, err := m.Branch(version(1), 0)
	require.ErrorIs(t, err, ErrInvalidHistoryOperation)
}

func TestClearHistory(t *testing.T) {
	m := NewManager()
	m.Checkpoint(version(0))
	m.Undo(version(1))
	require.True(t, m.CanRedo())

	m.ClearHistory()
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
}

func TestManager_DefaultBounds(t *testing.T) {
	m := NewManager()
	assert.Equal(t, DefaultMaxHistory, m.MaxHistory())

	// Ignore nonsense bounds.
	m = NewManager(WithMaxHistory(0))
	assert.Equal(t, DefaultMaxHistory, m.MaxHistory())
}

func TestUndoStack_DeepSequence(t *testing.T) {
	m := NewManager(WithMaxHistory(50))
	for i := 0; i < 10; i++ {
		m.Checkpoint(version(i))
	}
	current := version(10)

	// Walk all the way back, then all the way forward.
	for i := 9; i >= 0; i-- {
		current = m.Undo(current)
		require.Equal(t, i, versionOf(t, current), fmt.Sprintf("undo step to version %d", i))
	}
	for i := 1; i <= 10; i++ {
		current = m.Redo(current)
		require.Equal(t, i, versionOf(t, current))
	}
}
