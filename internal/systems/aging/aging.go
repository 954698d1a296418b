// Package aging increments character ages on their birthdays. It consumes
// the calendar's day-boundary messages by peeking, leaving them in the log
// for other interested systems.
package aging

import (
	"github.com/talgya/loom/internal/calendar"
	"github.com/talgya/loom/internal/store"
)

// SystemName is the aging system's registry name.
const SystemName = "aging"

// Person is a simulated character.
type Person struct {
	Name string
	Born calendar.Date
	Age  int
}

// System ages every Person row when a new day starts.
type System struct{}

// NewSystem creates the aging system.
func NewSystem() *System { return &System{} }

// Name implements the system contract.
func (a *System) Name() string { return SystemName }

// Initialize registers the Person table.
func (a *System) Initialize(s store.Store) (store.Store, error) {
	return store.RegisterTable[Person](s)
}

// Run checks each DayStarted message from the current tick and ages every
// person whose birthday the new day is. People are aged in sorted id order.
func (a *System) Run(s store.Store) (store.Store, error) {
	for _, msg := range store.Messages[calendar.DayStarted](s) {
		if msg.Tick != s.Tick() {
			continue
		}
		var err error
		if s, err = a.ageBirthdays(s, msg.Payload.Date); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Shutdown is a no-op; people outlive the system.
func (a *System) Shutdown(s store.Store) (store.Store, error) {
	return s, nil
}

func (a *System) ageBirthdays(s store.Store, today calendar.Date) (store.Store, error) {
	type update struct {
		id store.EntityID
		p  Person
	}
	// EachEntry walks in sorted id order, so the collected updates are
	// already deterministic.
	var updates []update
	err := store.EachEntry(s, func(id store.EntityID, p Person) bool {
		if IsBirthday(p.Born, today) {
			p.Age++
			updates = append(updates, update{id: id, p: p})
		}
		return true
	})
	if err != nil {
		return s, err
	}
	for _, u := range updates {
		if s, err = store.Insert(s, u.id, u.p); err != nil {
			return s, err
		}
	}
	return s, nil
}

// IsBirthday reports whether today is the anniversary of born. A February 29
// birthday falls on February 29 in leap years and March 1 otherwise, so it
// occurs exactly once every year.
func IsBirthday(born, today calendar.Date) bool {
	if born.Month == 2 && born.Day == 29 {
		if calendar.IsLeapYear(today.Year) {
			return today.Month == 2 && today.Day == 29
		}
		return today.Month == 3 && today.Day == 1
	}
	return today.Month == born.Month && today.Day == born.Day
}
