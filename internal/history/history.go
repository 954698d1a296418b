package history

import (
	"errors"
	"fmt"

	"github.com/talgya/loom/internal/store"
)

var (
	// ErrInvalidHistoryOperation indicates a malformed request, such as a
	// non-positive jump distance.
	ErrInvalidHistoryOperation = errors.New("history: invalid operation")
	// ErrSnapshotNotFound indicates no snapshot was recorded for the period.
	ErrSnapshotNotFound = errors.New("history: snapshot not found")
)

// Defaults chosen to keep memory bounded for long-running simulations.
const (
	DefaultMaxHistory          = 100
	DefaultMaxMonthlySnapshots = 24
	DefaultMaxYearlySnapshots  = 10
)

// Manager holds the undo/redo stacks and snapshot caches for one simulation.
type Manager struct {
	maxHistory int
	undo       []store.Store
	redo       []store.Store
	monthly    *periodCache
	yearly     *periodCache
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxHistory bounds the undo stack. Values below 1 are ignored.
func WithMaxHistory(n int) Option {
	return func(m *Manager) {
		if n >= 1 {
			m.maxHistory = n
		}
	}
}

// WithMaxMonthlySnapshots bounds the monthly snapshot cache.
func WithMaxMonthlySnapshots(n int) Option {
	return func(m *Manager) {
		if n >= 1 {
			m.monthly.max = n
		}
	}
}

// WithMaxYearlySnapshots bounds the yearly snapshot cache.
func WithMaxYearlySnapshots(n int) Option {
	return func(m *Manager) {
		if n >= 1 {
			m.yearly.max = n
		}
	}
}

// NewManager returns a Manager with default bounds.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		maxHistory: DefaultMaxHistory,
		monthly:    newPeriodCache(DefaultMaxMonthlySnapshots),
		yearly:     newPeriodCache(DefaultMaxYearlySnapshots),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Checkpoint records current as an undoable point and discards any redo
// branch: a new forward action invalidates previously undone futures.
func (m *Manager) Checkpoint(current store.Store) {
	m.pushUndo(current)
	m.redo = nil
}

// Undo steps back one checkpoint, pushing current onto the redo stack.
// With no history it returns current unchanged.
func (m *Manager) Undo(current store.Store) store.Store {
	if len(m.undo) == 0 {
		return current
	}
	top := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, current)
	return top
}

// Redo steps forward one previously undone checkpoint, pushing current onto
// the undo stack. With nothing to redo it returns current unchanged.
func (m *Manager) Redo(current store.Store) store.Store {
	if len(m.redo) == 0 {
		return current
	}
	top := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, current)
	return top
}

// JumpBack pops n checkpoints in sequence, pushing current and every
// intermediate state onto the redo stack in traversal order, and returns the
// final popped state. A distance beyond the available depth is a no-op;
// a distance below 1 is an invalid operation.
func (m *Manager) JumpBack(current store.Store, n int) (store.Store, error) {
	if n < 1 {
		return current, fmt.Errorf("%w: jump distance %d", ErrInvalidHistoryOperation, n)
	}
	if n > len(m.undo) {
		return current, nil
	}
	m.redo = append(m.redo, current)
	for i := 1; i < n; i++ {
		m.redo = append(m.redo, m.undo[len(m.undo)-1])
		m.undo = m.undo[:len(m.undo)-1]
	}
	top := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	return top, nil
}

// Branch returns the state n checkpoints back as the start of a new forward
// timeline. Unlike JumpBack it does not unwind the stack: current is pushed
// onto the undo stack so the abandoned continuation stays recorded, and the
// redo stack is cleared because the new timeline is a forward action.
func (m *Manager) Branch(current store.Store, n int) (store.Store, error) {
	if n < 1 {
		return current, fmt.Errorf("%w: branch distance %d", ErrInvalidHistoryOperation, n)
	}
	if n > len(m.undo) {
		return current, nil
	}
	target := m.undo[len(m.undo)-n]
	m.pushUndo(current)
	m.redo = nil
	return target, nil
}

// CanUndo reports whether any checkpoint can be undone.
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether any undone checkpoint can be reapplied.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// UndoCount reports the undo stack depth.
func (m *Manager) UndoCount() int { return len(m.undo) }

// RedoCount reports the redo stack depth.
func (m *Manager) RedoCount() int { return len(m.redo) }

// MaxHistory reports the configured undo bound.
func (m *Manager) MaxHistory() int { return m.maxHistory }

// ClearHistory drops both stacks. The live store is unaffected.
func (m *Manager) ClearHistory() {
	m.undo = nil
	m.redo = nil
}

// pushUndo appends and trims the oldest entry past the bound.
func (m *Manager) pushUndo(s store.Store) {
	m.undo = append(m.undo, s)
	if len(m.undo) > m.maxHistory {
		overflow := len(m.undo) - m.maxHistory
		m.undo = append(m.undo[:0:0], m.undo[overflow:]...)
	}
}
