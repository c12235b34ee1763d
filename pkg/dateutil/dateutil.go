package dateutil

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// London is the zone UK tax years are bounded in. Calendar-year windows
// stay in UTC.
var London = mustLoadLocation("Europe/London")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("dateutil: load %s: %v", name, err))
	}
	return loc
}

// Window is an inclusive date range. End is the last instant of the final day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// CalendarYear returns the 1 January - 31 December window for a year.
func CalendarYear(year int) Window {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: EndOfYear(start)}
}

// UKTaxYear returns the 6 April - 5 April window that starts in startYear,
// bounded at local midnight in London.
func UKTaxYear(startYear int) Window {
	return Window{
		Start: time.Date(startYear, time.April, 6, 0, 0, 0, 0, London),
		End:   EndOfDay(time.Date(startYear+1, time.April, 5, 0, 0, 0, 0, London)),
	}
}

// FiscalLabel renders a split-year label such as "2024-25".
func FiscalLabel(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// EndOfDay returns the last instant of the day for a given date
func EndOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999999999, date.Location())
}

// EndOfYear returns the last instant of the year for a given date
func EndOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), 12, 31, 23, 59, 59, 999999999, date.Location())
}
