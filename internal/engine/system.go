package engine

import "github.com/talgya/loom/internal/store"

// System is a named unit of simulation logic run against the store.
//
// Initialize is called once per system at Simulation start, in registration
// order; it typically registers the tables and singletons the system owns.
// Run is called once per tick while the system is enabled and must be a pure
// function of its input store (including the messages already in it) - no
// hidden external state. Shutdown is called at teardown and undoes whatever
// Initialize set up.
type System interface {
	Name() string
	Initialize(store.Store) (store.Store, error)
	Run(store.Store) (store.Store, error)
	Shutdown(store.Store) (store.Store, error)
}

// Func adapts plain functions to the System interface; nil hooks are
// identity. Used for small systems and in tests.
type Func struct {
	SystemName string
	OnInit     func(store.Store) (store.Store, error)
	OnRun      func(store.Store) (store.Store, error)
	OnShutdown func(store.Store) (store.Store, error)
}

// Name implements System.
func (f *Func) Name() string { return f.SystemName }

// Initialize implements System.
func (f *Func) Initialize(s store.Store) (store.Store, error) {
	if f.OnInit == nil {
		return s, nil
	}
	return f.OnInit(s)
}

// Run implements System.
func (f *Func) Run(s store.Store) (store.Store, error) {
	if f.OnRun == nil {
		return s, nil
	}
	return f.OnRun(s)
}

// Shutdown implements System.
func (f *Func) Shutdown(s store.Store) (store.Store, error) {
	if f.OnShutdown == nil {
		return s, nil
	}
	return f.OnShutdown(s)
}
