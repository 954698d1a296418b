// Package calendar owns simulated time. A Date singleton tracks the current
// in-game hour; the calendar System advances it by exactly one hour per tick
// and emits boundary messages (hour, day, week, month, season, year) on the
// store's message bus for other systems to consume.
//
// The scheduler's day/month/year convenience operations read the Date
// singleton between ticks, so month and year lengths (including leap
// February) come from here, never from hardcoded tick counts.
package calendar
