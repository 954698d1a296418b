// Package engine implements the simulation scheduler.
//
// A Simulation holds an ordered registry of named systems and advances the
// world by folding each enabled system's Run over the current store: system 1
// receives the tick's starting store, system 2 receives system 1's result,
// and so on. The final store is the tick's result. Systems communicate only
// through the store they receive and return - there is no shared mutable
// memory between them.
//
// ARCHITECTURE:
//
// Deterministic fold:
// Execution order within a tick is registration order, a fixed total order
// declared by the host, never inferred from dependencies. The fold is
// single-threaded and synchronous; a tick either completes and returns a new
// store or fails with the offending system's error. There is no mid-tick
// cancellation.
//
// Calendar-granularity stepping:
// SimulateHour runs one tick. SimulateDay/Month/Year repeat ticks until the
// calendar singleton's day/month/year changes, re-reading the date after
// every tick rather than precomputing a count, so month lengths and leap
// years come from the calendar itself. Only the outermost Simulate call
// pushes a checkpoint onto history - one per call, regardless of how many
// ticks ran inside.
//
// INVARIANTS:
//   - Registration order is execution order and never changes.
//   - A disabled system is skipped entirely but stays registered and keeps
//     its initialized state; re-enabling needs no re-initialization.
//   - The store's tick counter increments exactly once per Tick, before the
//     fold, so all messages sent during the tick share its stamp.
package engine
