package models

import "time"

// Period is a calendar month reporting window. Start is the first instant of
// the month; End is inclusive and depends on whether the month is the current
// one (see ResolvePeriod).
type Period struct {
	Year  int
	Month time.Month
	Start time.Time
	End   time.Time
}

// ResolvePeriod turns an optional month/year pair (zero means "current") into
// a concrete window in loc. For a past or future month the window covers the
// whole month. For the current month the window ends at yesterday 23:59:59 so
// that the incomplete current day never skews the figures.
//
// Month values outside 1-12 are a DTO concern and are not validated here.
func ResolvePeriod(month, year int, now time.Time, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)

	var end time.Time
	if month == int(now.Month()) && year == now.Year() {
		yesterday := now.AddDate(0, 0, -1)
		end = time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 23, 59, 59, 0, loc)
	} else {
		// Day zero of the next month is the last day of the target month.
		lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, loc)
		end = time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, 0, loc)
	}

	return Period{Year: year, Month: time.Month(month), Start: start, End: end}
}

// Previous resolves the calendar month immediately before the period, using
// the same truncation rules relative to now.
func (p Period) Previous(now time.Time, loc *time.Location) Period {
	month := int(p.Month) - 1
	year := p.Year
	if month == 0 {
		month = 12
		year--
	}
	return ResolvePeriod(month, year, now, loc)
}

// Contains reports whether ts falls inside the window.
func (p Period) Contains(ts time.Time) bool {
	return !ts.Before(p.Start) && !ts.After(p.End)
}
