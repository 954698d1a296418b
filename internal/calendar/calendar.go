package calendar

import (
	"errors"
	"fmt"
)

// ErrInvalidDate indicates date components that do not name a real calendar day.
var ErrInvalidDate = errors.New("calendar: invalid date")

// HoursPerDay is the tick length of one simulated day.
const HoursPerDay = 24

// Season divides the year into four parts by month.
type Season int

const (
	Winter Season = iota
	Spring
	Summer
	Autumn
)

func (s Season) String() string {
	switch s {
	case Winter:
		return "winter"
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	default:
		return fmt.Sprintf("season(%d)", int(s))
	}
}

// Date is one simulated hour on a proleptic Gregorian calendar.
// Month is 1-12, Day 1-31, Hour 0-23. Year 1 is the earliest supported year.
type Date struct {
	Year  int
	Month int
	Day   int
	Hour  int
}

// NewDate builds a Date at midnight, validating the components.
func NewDate(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if year < 1 || month < 1 || month > 12 || day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return d, nil
}

// MustDate is NewDate for fixture code; it panics on invalid components.
func MustDate(year, month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// IsLeapYear reports whether year has a February 29.
func IsLeapYear(year int) bool {
	switch {
	case year%400 == 0:
		return true
	case year%100 == 0:
		return false
	default:
		return year%4 == 0
	}
}

// DaysInMonth reports the length of a month in a given year.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// NextHour returns the date one simulated hour later.
func (d Date) NextHour() Date {
	d.Hour++
	if d.Hour < HoursPerDay {
		return d
	}
	d.Hour = 0
	d.Day++
	if d.Day <= DaysInMonth(d.Year, d.Month) {
		return d
	}
	d.Day = 1
	d.Month++
	if d.Month <= 12 {
		return d
	}
	d.Month = 1
	d.Year++
	return d
}

// Season reports the season the date falls in. December through February is
// winter, then spring, summer, autumn in three-month blocks.
func (d Date) Season() Season {
	switch d.Month {
	case 12, 1, 2:
		return Winter
	case 3, 4, 5:
		return Spring
	case 6, 7, 8:
		return Summer
	default:
		return Autumn
	}
}

// DayOfYear reports the 1-based ordinal day within the year.
func (d Date) DayOfYear() int {
	days := d.Day
	for m := 1; m < d.Month; m++ {
		days += DaysInMonth(d.Year, m)
	}
	return days
}

// Weekday reports the day of the simulated 7-day week, 0-6. Year 1 January 1
// is weekday 0.
func (d Date) Weekday() int {
	return daysSinceEpoch(d) % 7
}

// daysSinceEpoch counts whole days from year 1 January 1.
func daysSinceEpoch(d Date) int {
	y := d.Year - 1
	leaps := y/4 - y/100 + y/400
	return y*365 + leaps + d.DayOfYear() - 1
}

// SameDay reports whether two dates fall on the same calendar day.
func (d Date) SameDay(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	if d.Day != other.Day {
		return d.Day < other.Day
	}
	return d.Hour < other.Hour
}

// MonthKey returns the calendar-period key for monthly snapshots.
func (d Date) MonthKey() string {
	return MonthKey(d.Year, d.Month)
}

// YearKey returns the calendar-period key for yearly snapshots.
func (d Date) YearKey() string {
	return YearKey(d.Year)
}

// MonthKey formats a year-month period key.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// YearKey formats a year period key.
func YearKey(year int) string {
	return fmt.Sprintf("%04d", year)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:00", d.Year, d.Month, d.Day, d.Hour)
}
