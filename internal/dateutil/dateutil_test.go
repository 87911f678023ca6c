package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayStripsTimeAndZone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	in := time.Date(2024, 3, 10, 23, 45, 0, 0, loc)
	got := Day(in)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestAddDaysCrossesMonthAndYear(t *testing.T) {
	start := time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-02", Format(AddDays(start, 3)))
	assert.Equal(t, "2023-12-27", Format(AddDays(start, -3)))
}

func TestDiffDaysIsSigned(t *testing.T) {
	a := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, DiffDays(a, b))
	assert.Equal(t, -5, DiffDays(b, a))
	assert.Equal(t, 0, DiffDays(a, a))
}

func TestDiffDaysIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2024, 6, 2, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, 6, 1, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 1, DiffDays(a, b))
}

func TestParseRoundTrip(t *testing.T) {
	d, err := Parse("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", Format(d))

	_, err = Parse("02/29/2024")
	assert.Error(t, err)
}

func TestRangeInclusive(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	dates := Range(start, end)
	require.Len(t, dates, 5)
	assert.Equal(t, start, dates[0])
	assert.Equal(t, end, dates[4])

	assert.Len(t, Range(start, start), 1)
	assert.Empty(t, Range(end, start))
}

func TestWeekend(t *testing.T) {
	sat := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	sun := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	mon := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	assert.True(t, Weekend(sat))
	assert.True(t, Weekend(sun))
	assert.False(t, Weekend(mon))
}
