package engine

import (
	"fmt"

	"github.com/talgya/loom/internal/calendar"
	"github.com/talgya/loom/internal/history"
	"github.com/talgya/loom/internal/store"
)

// maxTicksPerCall bounds a single Simulate call as a defense against a
// runaway calendar (a leap year is 8784 hours).
const maxTicksPerCall = 24 * 366 * 2

// Simulation is the scheduler: an ordered registry of systems plus the
// history manager recording checkpoints.
type Simulation struct {
	systems []*systemEntry
	index   map[string]*systemEntry
	history *history.Manager
}

type systemEntry struct {
	sys         System
	enabled     bool
	initialized bool
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithHistory attaches a history manager; Simulate calls checkpoint into it.
// Without one, checkpoints are skipped and time travel is unavailable.
func WithHistory(m *history.Manager) Option {
	return func(sim *Simulation) {
		sim.history = m
	}
}

// New creates an empty Simulation.
func New(opts ...Option) *Simulation {
	sim := &Simulation{index: make(map[string]*systemEntry)}
	for _, opt := range opts {
		opt(sim)
	}
	return sim
}

// Register appends a system to the registry. Registration order is execution
// order for every tick. Names must be unique.
func (sim *Simulation) Register(sys System) error {
	if sys == nil {
		return ErrNilSystem
	}
	name := sys.Name()
	if _, dup := sim.index[name]; dup {
		return fmt.Errorf("%w: %s", ErrSystemAlreadyRegistered, name)
	}
	entry := &systemEntry{sys: sys, enabled: true}
	sim.systems = append(sim.systems, entry)
	sim.index[name] = entry
	return nil
}

// SystemNames returns the registered names in execution order.
func (sim *Simulation) SystemNames() []string {
	names := make([]string, len(sim.systems))
	for i, entry := range sim.systems {
		names[i] = entry.sys.Name()
	}
	return names
}

// IsEnabled reports a system's enabled flag.
func (sim *Simulation) IsEnabled(name string) (bool, error) {
	entry, ok := sim.index[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrSystemNotRegistered, name)
	}
	return entry.enabled, nil
}

// EnableSystem re-enables a system. Enabling an already-enabled system is a
// no-op; the system resumes without re-initialization.
func (sim *Simulation) EnableSystem(name string) error {
	entry, ok := sim.index[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSystemNotRegistered, name)
	}
	entry.enabled = true
	return nil
}

// DisableSystem skips a system on future ticks without removing it from the
// registry or losing its initialized state.
func (sim *Simulation) DisableSystem(name string) error {
	entry, ok := sim.index[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSystemNotRegistered, name)
	}
	entry.enabled = false
	return nil
}

// History returns the attached history manager, or nil.
func (sim *Simulation) History() *history.Manager {
	return sim.history
}

// Init runs every not-yet-initialized system's Initialize in registration
// order. Safe to call again after registering more systems; already
// initialized systems are not re-initialized.
func (sim *Simulation) Init(s store.Store) (store.Store, error) {
	var err error
	for _, entry := range sim.systems {
		if entry.initialized {
			continue
		}
		s, err = entry.sys.Initialize(s)
		if err != nil {
			return s, fmt.Errorf("initialize %s: %w", entry.sys.Name(), err)
		}
		entry.initialized = true
	}
	return s, nil
}

// Shutdown runs every initialized system's Shutdown in reverse registration
// order.
func (sim *Simulation) Shutdown(s store.Store) (store.Store, error) {
	var err error
	for i := len(sim.systems) - 1; i >= 0; i-- {
		entry := sim.systems[i]
		if !entry.initialized {
			continue
		}
		s, err = entry.sys.Shutdown(s)
		if err != nil {
			return s, fmt.Errorf("shutdown %s: %w", entry.sys.Name(), err)
		}
		entry.initialized = false
	}
	return s, nil
}

// Tick advances the world by one step: the tick counter increments, then
// every enabled system's Run is folded over the store in registration order.
// A failing system aborts the tick; its error propagates to the caller.
// Tick never checkpoints - history granularity belongs to the Simulate calls.
func (sim *Simulation) Tick(s store.Store) (store.Store, error) {
	s = s.AdvanceTick()
	var err error
	for _, entry := range sim.systems {
		if !entry.enabled {
			continue
		}
		s, err = entry.sys.Run(s)
		if err != nil {
			return s, fmt.Errorf("run %s: %w", entry.sys.Name(), err)
		}
	}
	return s, nil
}

// SimulateHour checkpoints the current state and runs one tick.
func (sim *Simulation) SimulateHour(s store.Store) (store.Store, error) {
	sim.checkpoint(s)
	return sim.Tick(s)
}

// SimulateDay checkpoints once, then ticks until the calendar lands on a new
// day. The date is re-read after every tick, so the tick count follows the
// calendar rather than a precomputed constant.
func (sim *Simulation) SimulateDay(s store.Store) (store.Store, error) {
	return sim.simulateUntil(s, func(from, to calendar.Date) bool {
		return !from.SameDay(to)
	})
}

// SimulateMonth checkpoints once, then ticks until the calendar month
// changes, however many days the current month has.
func (sim *Simulation) SimulateMonth(s store.Store) (store.Store, error) {
	return sim.simulateUntil(s, func(from, to calendar.Date) bool {
		return from.Month != to.Month || from.Year != to.Year
	})
}

// SimulateYear checkpoints once, then ticks until the calendar year changes.
func (sim *Simulation) SimulateYear(s store.Store) (store.Store, error) {
	return sim.simulateUntil(s, func(from, to calendar.Date) bool {
		return from.Year != to.Year
	})
}

// simulateUntil is the shared loop behind the calendar-granularity steps:
// one checkpoint, then ticks until crossed(start, current) holds. A tick
// that leaves the date unchanged means the calendar system is missing,
// disabled, or frozen; that aborts rather than spinning.
func (sim *Simulation) simulateUntil(s store.Store, crossed func(from, to calendar.Date) bool) (store.Store, error) {
	start, err := store.Singleton[calendar.Date](s)
	if err != nil {
		return s, fmt.Errorf("simulate: %w", err)
	}
	sim.checkpoint(s)

	prev := start
	for ticks := 0; ticks < maxTicksPerCall; ticks++ {
		s, err = sim.Tick(s)
		if err != nil {
			return s, err
		}
		current, err := store.Singleton[calendar.Date](s)
		if err != nil {
			return s, fmt.Errorf("simulate: %w", err)
		}
		if current == prev {
			return s, ErrCalendarStalled
		}
		if crossed(start, current) {
			return s, nil
		}
		prev = current
	}
	return s, ErrCalendarStalled
}

func (sim *Simulation) checkpoint(s store.Store) {
	if sim.history != nil {
		sim.history.Checkpoint(s)
	}
}
