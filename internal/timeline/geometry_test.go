package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gantt/internal/dateutil"
	"gantt/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestVisibleRangeEmptyTaskSet(t *testing.T) {
	today := date(2024, 6, 15)

	dates := VisibleRange(nil, ZoomDay, today)

	// Exactly [today-7, today+60] inclusive: 68 days.
	require.Len(t, dates, 68)
	assert.Equal(t, date(2024, 6, 8), dates[0])
	assert.Equal(t, date(2024, 8, 14), dates[len(dates)-1])
}

func TestVisibleRangeBufferDependsOnZoom(t *testing.T) {
	tasks := []models.Task{
		{StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 10)},
		{StartDate: date(2024, 5, 20), EndDate: date(2024, 6, 5)},
	}

	day := VisibleRange(tasks, ZoomDay, date(2024, 6, 1))
	assert.Equal(t, date(2024, 4, 20), day[0], "30-day buffer before earliest start")
	assert.Equal(t, date(2024, 7, 10), day[len(day)-1], "30-day buffer after latest end")

	month := VisibleRange(tasks, ZoomMonth, date(2024, 6, 1))
	assert.Equal(t, date(2024, 2, 20), month[0], "90-day buffer at month zoom")
	assert.Equal(t, date(2024, 9, 8), month[len(month)-1])
}

func TestDayWidthMonotonicallyDecreases(t *testing.T) {
	wide := 160
	assert.Greater(t, DayWidth(ZoomDay, wide), DayWidth(ZoomWeek, wide))
	assert.Greater(t, DayWidth(ZoomWeek, wide), DayWidth(ZoomMonth, wide))
}

func TestDayWidthAdaptsOnlyAtFinestZoom(t *testing.T) {
	assert.Equal(t, 6, DayWidth(ZoomDay, 160))
	assert.Equal(t, 4, DayWidth(ZoomDay, 80))

	// Coarser zooms ignore the viewport.
	assert.Equal(t, DayWidth(ZoomWeek, 160), DayWidth(ZoomWeek, 80))
	assert.Equal(t, DayWidth(ZoomMonth, 160), DayWidth(ZoomMonth, 80))
}

func TestDateToXRoundTrip(t *testing.T) {
	rangeStart := date(2024, 1, 1)
	for _, z := range []Zoom{ZoomDay, ZoomWeek, ZoomMonth} {
		w := DayWidth(z, 160)
		for _, days := range []int{0, 1, 7, 30, 365, -3} {
			d := dateutil.AddDays(rangeStart, days)
			x := DateToX(d, rangeStart, w)
			assert.Equal(t, days, XToDeltaDays(x, w), "zoom %v, %d days", z, days)
		}
	}
}

// Pins the rounding convention: half away from zero.
func TestXToDeltaDaysHalfBoundary(t *testing.T) {
	// dayWidth 6: 3 cells is exactly half a day.
	assert.Equal(t, 1, XToDeltaDays(3, 6))
	assert.Equal(t, -1, XToDeltaDays(-3, 6))
	assert.Equal(t, 0, XToDeltaDays(2, 6))
	assert.Equal(t, 0, XToDeltaDays(-2, 6))
	assert.Equal(t, 1, XToDeltaDays(4, 6))
	assert.Equal(t, 2, XToDeltaDays(9, 6))
	assert.Equal(t, -2, XToDeltaDays(-9, 6))

	// Degenerate width never divides by zero.
	assert.Equal(t, 0, XToDeltaDays(10, 0))
}

func TestZoomStepping(t *testing.T) {
	assert.Equal(t, ZoomWeek, ZoomDay.Out())
	assert.Equal(t, ZoomMonth, ZoomWeek.Out())
	assert.Equal(t, ZoomMonth, ZoomMonth.Out())
	assert.Equal(t, ZoomWeek, ZoomMonth.In())
	assert.Equal(t, ZoomDay, ZoomDay.In())
}

func TestParseZoomRoundTrip(t *testing.T) {
	for _, z := range []Zoom{ZoomDay, ZoomWeek, ZoomMonth} {
		assert.Equal(t, z, ParseZoom(z.String()))
	}
	assert.Equal(t, ZoomDay, ParseZoom("garbage"))
}
