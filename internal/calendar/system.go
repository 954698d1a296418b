package calendar

import (
	"fmt"

	"github.com/talgya/loom/internal/store"
)

// SystemName is the calendar system's registry name and message sender id.
const SystemName = "calendar"

// Boundary message payloads. HourPassed is emitted every tick; the others
// only when the corresponding boundary is crossed. Consumers should peek
// (store.Messages) rather than consume, since several systems typically react
// to the same boundary.
type (
	// HourPassed is emitted on every calendar advance.
	HourPassed struct{ Date Date }
	// DayStarted is emitted when the date rolls onto a new day.
	DayStarted struct{ Date Date }
	// WeekStarted is emitted on the first hour of weekday 0.
	WeekStarted struct{ Date Date }
	// MonthStarted is emitted on the first hour of a new month.
	MonthStarted struct{ Date Date }
	// SeasonChanged is emitted when the season of the new day differs.
	SeasonChanged struct {
		Season Season
		Date   Date
	}
	// YearStarted is emitted on the first hour of January 1.
	YearStarted struct{ Date Date }
)

// System advances the Date singleton one hour per tick and emits boundary
// messages. It should be registered before any system that reacts to them so
// consumers see the messages within the same tick.
type System struct {
	start Date
}

// NewSystem returns a calendar system that starts the world at midnight of
// the given date.
func NewSystem(start Date) *System {
	return &System{start: start}
}

// Name implements the system contract.
func (*System) Name() string { return SystemName }

// Initialize seeds the Date singleton.
func (sys *System) Initialize(s store.Store) (store.Store, error) {
	return store.PutSingleton(s, sys.start), nil
}

// Run advances time by one hour and emits boundary messages for the new date.
func (sys *System) Run(s store.Store) (store.Store, error) {
	current, err := store.Singleton[Date](s)
	if err != nil {
		return s, fmt.Errorf("calendar: %w", err)
	}
	next := current.NextHour()
	s = store.PutSingleton(s, next)

	s = store.SendMessage(s, SystemName, HourPassed{Date: next})
	if next.Hour != 0 {
		return s, nil
	}
	s = store.SendMessage(s, SystemName, DayStarted{Date: next})
	if next.Weekday() == 0 {
		s = store.SendMessage(s, SystemName, WeekStarted{Date: next})
	}
	if next.Day == 1 {
		s = store.SendMessage(s, SystemName, MonthStarted{Date: next})
	}
	if next.Season() != current.Season() {
		s = store.SendMessage(s, SystemName, SeasonChanged{Season: next.Season(), Date: next})
	}
	if next.Day == 1 && next.Month == 1 {
		s = store.SendMessage(s, SystemName, YearStarted{Date: next})
	}
	return s, nil
}

// Shutdown removes the Date singleton, undoing Initialize.
func (sys *System) Shutdown(s store.Store) (store.Store, error) {
	return store.RemoveSingleton[Date](s), nil
}
