package history

import (
	"fmt"

	"github.com/talgya/loom/internal/calendar"
	"github.com/talgya/loom/internal/store"
)

// CreateMonthlySnapshot records s in the monthly cache under the period key
// derived from its calendar singleton, returning the key. Re-snapshotting the
// same period overwrites; exceeding the bound trims the oldest period.
func (m *Manager) CreateMonthlySnapshot(s store.Store) (string, error) {
	date, err := store.Singleton[calendar.Date](s)
	if err != nil {
		return "", fmt.Errorf("monthly snapshot: %w", err)
	}
	key := date.MonthKey()
	m.monthly.put(key, s)
	return key, nil
}

// CreateYearlySnapshot records s in the yearly cache under its year key.
func (m *Manager) CreateYearlySnapshot(s store.Store) (string, error) {
	date, err := store.Singleton[calendar.Date](s)
	if err != nil {
		return "", fmt.Errorf("yearly snapshot: %w", err)
	}
	key := date.YearKey()
	m.yearly.put(key, s)
	return key, nil
}

// JumpToMonth restores the snapshot for a year-month period. The current
// state is checkpointed so the jump can be undone. A period that was never
// snapshotted returns ErrSnapshotNotFound.
func (m *Manager) JumpToMonth(current store.Store, year, month int) (store.Store, error) {
	key := calendar.MonthKey(year, month)
	snap, ok := m.monthly.get(key)
	if !ok {
		return current, fmt.Errorf("%w: %s", ErrSnapshotNotFound, key)
	}
	m.Checkpoint(current)
	return snap, nil
}

// JumpToYear restores the snapshot for a year period.
func (m *Manager) JumpToYear(current store.Store, year int) (store.Store, error) {
	key := calendar.YearKey(year)
	snap, ok := m.yearly.get(key)
	if !ok {
		return current, fmt.Errorf("%w: %s", ErrSnapshotNotFound, key)
	}
	m.Checkpoint(current)
	return snap, nil
}

// MonthlySnapshotCount reports how many monthly periods are cached.
func (m *Manager) MonthlySnapshotCount() int { return len(m.monthly.order) }

// YearlySnapshotCount reports how many yearly periods are cached.
func (m *Manager) YearlySnapshotCount() int { return len(m.yearly.order) }

// MonthlySnapshotPeriods returns the cached monthly period keys, oldest first.
func (m *Manager) MonthlySnapshotPeriods() []string { return m.monthly.keys() }

// YearlySnapshotPeriods returns the cached yearly period keys, oldest first.
func (m *Manager) YearlySnapshotPeriods() []string { return m.yearly.keys() }

// ClearSnapshots empties both snapshot caches. The live store is unaffected.
func (m *Manager) ClearSnapshots() {
	m.monthly.clear()
	m.yearly.clear()
}

// periodCache is a bounded map of period key to store version, trimmed in
// insertion order.
type periodCache struct {
	max   int
	order []string
	items map[string]store.Store
}

func newPeriodCache(max int) *periodCache {
	return &periodCache{max: max, items: make(map[string]store.Store)}
}

func (c *periodCache) put(key string, s store.Store) {
	if _, exists := c.items[key]; !exists {
		c.order = append(c.order, key)
		for len(c.order) > c.max {
			oldest := c.order[0]
			c.order = append(c.order[:0:0], c.order[1:]...)
			delete(c.items, oldest)
		}
	}
	c.items[key] = s
}

func (c *periodCache) get(key string) (store.Store, bool) {
	s, ok := c.items[key]
	return s, ok
}

func (c *periodCache) clear() {
	c.order = nil
	c.items = make(map[string]store.Store)
}

func (c *periodCache) keys() []string {
	return append([]string(nil), c.order...)
}
