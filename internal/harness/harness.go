// Package harness runs scripted simulation scenarios and captures
// deterministic traces of their calendar-boundary events, for golden-file
// comparison and for exercising system wiring end to end.
package harness

import (
	"fmt"

	"github.com/talgya/loom/internal/calendar"
	"github.com/talgya/loom/internal/engine"
	"github.com/talgya/loom/internal/history"
	"github.com/talgya/loom/internal/store"
)

// Scenario describes one scripted run: a start date, a number of simulated
// hours, and any systems to register after the calendar.
type Scenario struct {
	Name    string
	Start   calendar.Date
	Hours   int
	Systems []engine.System
	// Seed mutates the store after Init, before the first hour.
	Seed func(s store.Store) (store.Store, error)
}

// TraceEvent is one calendar boundary crossed during the run.
type TraceEvent struct {
	Seq  int    `json:"seq"`
	Tick int64  `json:"tick"`
	Type string `json:"type"`
	Date string `json:"date"`
}

// Result is the outcome of running a scenario.
type Result struct {
	Final       store.Store
	Trace       []TraceEvent
	Checkpoints int
}

// Run executes the scenario hour by hour, collecting a trace of every
// boundary message the calendar emitted. Each simulated hour pushes one
// checkpoint; Checkpoints reports the total, which the bounded history may
// retain only partially.
func Run(scenario *Scenario) (*Result, error) {
	sim := engine.New(engine.WithHistory(history.NewManager(history.WithMaxHistory(scenario.Hours + 1))))
	if err := sim.Register(calendar.NewSystem(scenario.Start)); err != nil {
		return nil, err
	}
	for _, sys := range scenario.Systems {
		if err := sim.Register(sys); err != nil {
			return nil, err
		}
	}

	s, err := sim.Init(store.New())
	if err != nil {
		return nil, err
	}
	if scenario.Seed != nil {
		if s, err = scenario.Seed(s); err != nil {
			return nil, fmt.Errorf("harness: seed %s: %w", scenario.Name, err)
		}
	}

	result := &Result{}
	for hour := 0; hour < scenario.Hours; hour++ {
		if s, err = sim.SimulateHour(s); err != nil {
			return nil, fmt.Errorf("harness: %s hour %d: %w", scenario.Name, hour+1, err)
		}
		result.Checkpoints++
		result.Trace = appendBoundaries(result.Trace, s)
	}
	result.Final = s
	return result, nil
}

// appendBoundaries records the boundary messages stamped with the store's
// current tick, in the order the calendar emitted them. HourPassed is
// deliberately excluded; it fires every tick and would drown the trace.
func appendBoundaries(trace []TraceEvent, s store.Store) []TraceEvent {
	tick := s.Tick()
	add := func(kind string, date calendar.Date) {
		trace = append(trace, TraceEvent{
			Seq:  len(trace) + 1,
			Tick: tick,
			Type: kind,
			Date: date.String(),
		})
	}
	for _, msg := range store.MessagesFrom(s, calendar.SystemName) {
		if msg.Tick != tick {
			continue
		}
		switch payload := msg.Payload.(type) {
		case calendar.DayStarted:
			add("day", payload.Date)
		case calendar.WeekStarted:
			add("week", payload.Date)
		case calendar.MonthStarted:
			add("month", payload.Date)
		case calendar.SeasonChanged:
			add("season:"+payload.Season.String(), payload.Date)
		case calendar.YearStarted:
			add("year", payload.Date)
		}
	}
	return trace
}
