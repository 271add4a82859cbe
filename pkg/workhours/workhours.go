package workhours

import (
	"math"
	"time"
)

// Window is a same-day working interval expressed as minutes from midnight.
type Window struct {
	StartMinute int
	EndMinute   int
}

// Calendar computes elapsed working time. The default calendar covers
// Monday-Friday, 08:30-12:00 and 13:00-16:00, which is 6.5 hours per weekday.
type Calendar struct {
	Location *time.Location
	Windows  []Window
}

// NewCalendar builds a calendar with the standard support-desk windows.
func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{
		Location: loc,
		Windows: []Window{
			{StartMinute: 8*60 + 30, EndMinute: 12 * 60},
			{StartMinute: 13 * 60, EndMinute: 16 * 60},
		},
	}
}

// Elapsed returns the number of business hours between start and end,
// rounded to two decimals. It returns 0 when end is not after start.
// Weekend days contribute nothing.
func (c *Calendar) Elapsed(start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}

	start = start.In(c.Location)
	end = end.In(c.Location)

	total := 0.0
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, c.Location)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, c.Location)

	for !day.After(last) {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			for _, w := range c.Windows {
				slotStart := day.Add(time.Duration(w.StartMinute) * time.Minute)
				slotEnd := day.Add(time.Duration(w.EndMinute) * time.Minute)
				total += overlapHours(start, end, slotStart, slotEnd)
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return math.Round(total*100) / 100
}

func overlapHours(start, end, slotStart, slotEnd time.Time) float64 {
	if start.After(slotStart) {
		slotStart = start
	}
	if end.Before(slotEnd) {
		slotEnd = end
	}
	if !slotEnd.After(slotStart) {
		return 0
	}
	return slotEnd.Sub(slotStart).Hours()
}
