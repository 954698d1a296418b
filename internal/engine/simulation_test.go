package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/loom/internal/calendar"
	"github.com/talgya/loom/internal/history"
	"github.com/talgya/loom/internal/store"
)

// appender records its runs by appending its name to a named string singleton,
// which also proves the fold threads each system's output into the next.
func appender(name string) *Func {
	return &Func{
		SystemName: name,
		OnRun: func(s store.Store) (store.Store, error) {
			trace, err := store.NamedSingleton[string](s, "trace")
			if err != nil {
				trace = ""
			}
			return store.PutNamedSingleton(s, "trace", trace+name), nil
		},
	}
}

func traceOf(t *testing.T, s store.Store) string {
	t.Helper()
	trace, err := store.NamedSingleton[string](s, "trace")
	require.NoError(t, err)
	return trace
}

func TestRegister_DuplicateName(t *testing.T) {
	sim := New()
	require.NoError(t, sim.Register(appender("a")))

	err := sim.Register(appender("a"))
	require.ErrorIs(t, err, ErrSystemAlreadyRegistered)

	require.ErrorIs(t, sim.Register(nil), ErrNilSystem)
}

func TestTick_FoldsInRegistrationOrder(t *testing.T) {
	sim := New()
	require.NoError(t, sim.Register(appender("a")))
	require.NoError(t, sim.Register(appender("b")))
	require.NoError(t, sim.Register(appender("c")))

	s, err := sim.Tick(store.New())
	require.NoError(t, err)
	assert.Equal(t, "abc", traceOf(t, s))
	assert.Equal(t, []string{"a", "b", "c"}, sim.SystemNames())
}

func TestTick_AdvancesTickCounterOnce(t *testing.T) {
	sim := New()
	require.NoError(t, sim.Register(appender("a")))

	s := store.New()
	s, err := sim.Tick(s)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Tick())

	s, err = sim.Tick(s)
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.Tick())
}

func TestTick_SkipsDisabledSystem(t *testing.T) {
	sim := New()
	require.NoError(t, sim.Register(appender("a")))
	require.NoError(t, sim.Register(appender("b")))
	require.NoError(t, sim.DisableSystem("a"))

	s, err := sim.Tick(store.New())
	require.NoError(t, err)
	assert.Equal(t, "b", traceOf(t, s))

	// Still registered; re-enable and it runs again.
	require.NoError(t, sim.EnableSystem("a"))
	s, err = sim.Tick(s)
	require.NoError(t, err)
	assert.Equal(t, "bab", traceOf(t, s))
}

func TestDisableSystem_UnknownName(t *testing.T) {
	sim := New()
	require.ErrorIs(t, sim.DisableSystem("ghost"), ErrSystemNotRegistered)
	require.ErrorIs(t, sim.EnableSystem("ghost"), ErrSystemNotRegistered)
	_, err := sim.IsEnabled("ghost")
	require.ErrorIs(t, err, ErrSystemNotRegistered)
}

func TestDisableSystem_AlreadyDisabledIsNoOp(t *testing.T) {
	sim := New()
	require.NoError(t, sim.Register(appender("a")))
	require.NoError(t, sim.DisableSystem("a"))
	require.NoError(t, sim.DisableSystem("a"))

	enabled, err := sim.IsEnabled("a")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestTick_SystemErrorAbortsTick(t *testing.T) {
	boom := errors.New("boom")
	sim := New()
	require.NoError(t, sim.Register(appender("a")))
	require.NoError(t, sim.Register(&Func{
		SystemName: "bad",
		OnRun: func(s store.Store) (store.Store, error) {
			return s, boom
		},
	}))
	require.NoError(t, sim.Register(appender("c")))

	s, err := sim.Tick(store.New())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad", "error names the failing system")
	// The fold stopped at the failure; c never ran.
	assert.Equal(t, "a", traceOf(t, s))
}

func TestInit_RunsOncePerSystem(t *testing.T) {
	inits := 0
	sim := New()
	require.NoError(t, sim.Register(&Func{
		SystemName: "counted",
		OnInit: func(s store.Store) (store.Store, error) {
			inits++
			return s, nil
		},
	}))

	s, err := sim.Init(store.New())
	require.NoError(t, err)
	_, err = sim.Init(s)
	require.NoError(t, err)
	assert.Equal(t, 1, inits)
}

func TestInit_LateRegistration(t *testing.T) {
	sim := New()
	require.NoError(t, sim.Register(appender("a")))
	s, err := sim.Init(store.New())
	require.NoError(t, err)

	// Registering after Init and calling Init again only touches the newcomer.
	inits := 0
	require.NoError(t, sim.Register(&Func{
		SystemName: "late",
		OnInit: func(s store.Store) (store.Store, error) {
			inits++
			return s, nil
		},
	}))
	_, err = sim.Init(s)
	require.NoError(t, err)
	assert.Equal(t, 1, inits)
}

func TestShutdown_ReverseOrder(t *testing.T) {
	var order []string
	shutdownRecorder := func(name string) *Func {
		return &Func{
			SystemName: name,
			OnShutdown: func(s store.Store) (store.Store, error) {
				order = append(order, name)
				return s, nil
			},
		}
	}

	sim := New()
	require.NoError(t, sim.Register(shutdownRecorder("a")))
	require.NoError(t, sim.Register(shutdownRecorder("b")))

	s, err := sim.Init(store.New())
	require.NoError(t, err)
	_, err = sim.Shutdown(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, order)
}

// calendarSim wires a calendar system starting at the given date, plus any
// extra systems, with a bounded history.
func calendarSim(t *testing.T, start calendar.Date, maxHistory int, extra ...System) (*Simulation, store.Store) {
	t.Helper()
	sim := New(WithHistory(history.NewManager(history.WithMaxHistory(maxHistory))))
	require.NoError(t, sim.Register(calendar.NewSystem(start)))
	for _, sys := range extra {
		require.NoError(t, sim.Register(sys))
	}
	s, err := sim.Init(store.New())
	require.NoError(t, err)
	return sim, s
}

func dateOf(t *testing.T, s store.Store) calendar.Date {
	t.Helper()
	d, err := store.Singleton[calendar.Date](s)
	require.NoError(t, err)
	return d
}

func TestSimulateDay_TicksToNextMidnight(t *testing.T) {
	sim, s := calendarSim(t, calendar.MustDate(4, 1, 1), 10)

	s, err := sim.SimulateDay(s)
	require.NoError(t, err)
	assert.Equal(t, calendar.MustDate(4, 1, 2), dateOf(t, s))
	assert.Equal(t, int64(24), s.Tick())
}

func TestSimulateMonth_LeapFebruary(t *testing.T) {
	sim, s := calendarSim(t, calendar.MustDate(4, 2, 1), 10)

	s, err := sim.SimulateMonth(s)
	require.NoError(t, err)
	assert.Equal(t, calendar.MustDate(4, 3, 1), dateOf(t, s))
	assert.Equal(t, int64(29*24), s.Tick(), "leap February is 29 days")
}

func TestSimulateMonth_PushesOneCheckpoint(t *testing.T) {
	sim, s := calendarSim(t, calendar.MustDate(4, 1, 1), 100)

	_, err := sim.SimulateMonth(s)
	require.NoError(t, err)
	assert.Equal(t, 1, sim.History().UndoCount(), "one checkpoint per Simulate call, not per tick")
}

func TestSimulateYear_CrossesIntoNextYear(t *testing.T) {
	sim, s := calendarSim(t, calendar.MustDate(2, 11, 30), 10)

	s, err := sim.SimulateYear(s)
	require.NoError(t, err)
	assert.Equal(t, calendar.MustDate(3, 1, 1), dateOf(t, s))
}

func TestSimulate_HistoryBounded(t *testing.T) {
	sim, s := calendarSim(t, calendar.MustDate(4, 1, 1), 3)

	var err error
	for i := 0; i < 5; i++ {
		s, err = sim.SimulateDay(s)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, sim.History().UndoCount())
}

func TestSimulateDay_UndoRewindsMessages(t *testing.T) {
	sim, s0 := calendarSim(t, calendar.MustDate(4, 1, 1), 10)

	s1, err := sim.SimulateHour(s0)
	require.NoError(t, err)
	assert.Len(t, store.Messages[calendar.HourPassed](s1), 1)

	back := sim.History().Undo(s1)
	assert.Empty(t, store.Messages[calendar.HourPassed](back), "undo rewinds pending messages with the rest of the state")
	assert.Equal(t, calendar.MustDate(4, 1, 1), dateOf(t, back))
}

func TestSimulateDay_NoCalendar(t *testing.T) {
	sim := New()
	require.NoError(t, sim.Register(appender("a")))

	_, err := sim.SimulateDay(store.New())
	require.ErrorIs(t, err, store.ErrSingletonNotFound)
}

func TestSimulateDay_StalledCalendar(t *testing.T) {
	// A date singleton exists but nothing advances it.
	sim := New()
	require.NoError(t, sim.Register(appender("a")))
	s := store.PutSingleton(store.New(), calendar.MustDate(4, 1, 1))

	_, err := sim.SimulateDay(s)
	require.ErrorIs(t, err, ErrCalendarStalled)
}

func TestSimulateHour_WithoutHistory(t *testing.T) {
	sim := New()
	require.NoError(t, sim.Register(calendar.NewSystem(calendar.MustDate(4, 1, 1))))
	s, err := sim.Init(store.New())
	require.NoError(t, err)

	// No history manager attached: simulate still works, nothing recorded.
	s, err = sim.SimulateHour(s)
	require.NoError(t, err)
	assert.Nil(t, sim.History())
	assert.Equal(t, calendar.Date{Year: 4, Month: 1, Day: 1, Hour: 1}, dateOf(t, s))
}

func TestBranch_DivergesWithoutLosingThePast(t *testing.T) {
	sim, s := calendarSim(t, calendar.MustDate(4, 1, 1), 10)

	s1, err := sim.SimulateDay(s)
	require.NoError(t, err)

	branched, err := sim.History().Branch(s1, 1)
	require.NoError(t, err)
	assert.Equal(t, calendar.MustDate(4, 1, 1), dateOf(t, branched), "branch returns the state one checkpoint back")
	assert.True(t, sim.History().CanUndo(), "the pre-branch state was preserved")

	// The branch diverges: simulating from it does not disturb the recorded past.
	s2, err := sim.SimulateDay(branched)
	require.NoError(t, err)
	assert.Equal(t, calendar.MustDate(4, 1, 2), dateOf(t, s2))
}
