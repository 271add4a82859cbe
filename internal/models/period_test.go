package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolvePeriodPastMonthCoversWholeMonth(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	p := ResolvePeriod(3, 2024, now, time.UTC)

	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC), p.End)
}

func TestResolvePeriodLeapFebruary(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	p := ResolvePeriod(2, 2024, now, time.UTC)
	assert.Equal(t, 29, p.End.Day())

	p = ResolvePeriod(2, 2023, now, time.UTC)
	assert.Equal(t, 28, p.End.Day())
}

func TestResolvePeriodCurrentMonthEndsYesterday(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	p := ResolvePeriod(6, 2024, now, time.UTC)

	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2024, time.June, 14, 23, 59, 59, 0, time.UTC), p.End)
	assert.True(t, p.End.Before(now))
}

func TestResolvePeriodDefaultsToCurrentMonth(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	p := ResolvePeriod(0, 0, now, time.UTC)

	assert.Equal(t, 2024, p.Year)
	assert.Equal(t, time.June, p.Month)
	assert.Equal(t, 14, p.End.Day())
}

func TestResolvePeriodFirstOfMonthEndsLastOfPreviousDay(t *testing.T) {
	// On the 1st, "yesterday" belongs to the previous month; the window is
	// empty by construction but must not panic or extend into the future.
	now := time.Date(2024, time.July, 1, 8, 0, 0, 0, time.UTC)

	p := ResolvePeriod(7, 2024, now, time.UTC)

	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.True(t, p.End.Before(p.Start))
}

func TestPeriodPreviousCrossesYearBoundary(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	p := ResolvePeriod(1, 2024, now, time.UTC)
	prev := p.Previous(now, time.UTC)

	assert.Equal(t, 2023, prev.Year)
	assert.Equal(t, time.December, prev.Month)
	assert.Equal(t, 31, prev.End.Day())
}

func TestPeriodContains(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	p := ResolvePeriod(3, 2024, now, time.UTC)

	assert.True(t, p.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
}
