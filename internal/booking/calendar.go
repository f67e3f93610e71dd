// Package booking implements the visit-booking flow: the calendar grid,
// ticket quantity selection and payment initiation.
package booking

import (
	"fmt"
	"time"
)

// Cell is one day slot in the rendered calendar.
type Cell struct {
	Day      int
	Date     string // "2006-01-02", empty for adjacent-month padding
	InMonth  bool
	Disabled bool
	Today    bool
	Selected bool
}

// Month is a 6x7 calendar grid for one displayed month, padded with
// leading and trailing days from the adjacent months.
type Month struct {
	Year  int
	Month time.Month
	Weeks [6][7]Cell
}

// BuildMonth lays out the 42-cell grid. Padding cells are always disabled,
// days before today are disabled, and without a logged-in buyer every cell
// is disabled.
func BuildMonth(year int, month time.Month, today time.Time, selected string, loggedIn bool) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	leading := int(first.Weekday()) // Sunday-first, matches the original layout
	daysInMonth := daysIn(year, month)

	prevYear, prevMonth := PrevMonth(year, month)
	daysInPrev := daysIn(prevYear, prevMonth)

	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	grid := Month{Year: year, Month: month}
	for i := 0; i < 42; i++ {
		var cell Cell
		switch {
		case i < leading:
			cell = Cell{Day: daysInPrev - leading + i + 1, Disabled: true}
		case i < leading+daysInMonth:
			day := i - leading + 1
			date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
			thisDate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			cell = Cell{
				Day:      day,
				Date:     date,
				InMonth:  true,
				Disabled: thisDate.Before(todayDate),
				Today:    day == today.Day() && month == today.Month() && year == today.Year(),
				Selected: selected == date,
			}
		default:
			cell = Cell{Day: i - (leading + daysInMonth) + 1, Disabled: true}
		}

		if !loggedIn {
			cell.Disabled = true
		}
		grid.Weeks[i/7][i%7] = cell
	}
	return grid
}

// NextMonth advances one month, wrapping December into January of the
// following year.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// PrevMonth goes back one month, wrapping January into December of the
// previous year.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
