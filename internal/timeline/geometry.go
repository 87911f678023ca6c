// Package timeline holds the chart's coordinate and interaction logic:
// mapping calendar days onto a horizontal cell grid, stacking tasks into
// lanes, and tracking pointer-driven drag/resize gestures. Everything here is
// independent of the terminal renderer so it can be tested without events.
package timeline

import (
	"math"
	"time"

	"gantt/internal/dateutil"
	"gantt/internal/models"
)

// Zoom selects the day-column granularity of the timeline.
type Zoom int

const (
	ZoomDay Zoom = iota
	ZoomWeek
	ZoomMonth
)

func (z Zoom) String() string {
	switch z {
	case ZoomWeek:
		return "Week"
	case ZoomMonth:
		return "Month"
	default:
		return "Day"
	}
}

// ParseZoom reads a zoom name persisted in settings; anything unrecognized
// falls back to day view.
func ParseZoom(s string) Zoom {
	switch s {
	case "Week":
		return ZoomWeek
	case "Month":
		return ZoomMonth
	default:
		return ZoomDay
	}
}

// In moves one step toward finer granularity, Out toward coarser.
func (z Zoom) In() Zoom {
	if z > ZoomDay {
		return z - 1
	}
	return z
}

func (z Zoom) Out() Zoom {
	if z < ZoomMonth {
		return z + 1
	}
	return z
}

// narrowViewport is the terminal width below which day view drops to
// narrower columns.
const narrowViewport = 100

// DayWidth returns the width of one day column in cells. Finer zoom means
// wider columns; only the finest zoom adapts to the viewport width.
func DayWidth(z Zoom, viewportWidth int) int {
	switch z {
	case ZoomWeek:
		return 3
	case ZoomMonth:
		return 1
	default:
		if viewportWidth > 0 && viewportWidth < narrowViewport {
			return 4
		}
		return 6
	}
}

// rangeBuffer is the padding added around the task extent, wider when zoomed
// out so the chart doesn't end abruptly at the edges.
func rangeBuffer(z Zoom) int {
	if z == ZoomMonth {
		return 90
	}
	return 30
}

// VisibleRange derives the ordered day sequence the chart covers. With no
// tasks it is the window [today-7, today+60]; otherwise it spans the earliest
// start to the latest end, padded by the zoom's buffer.
func VisibleRange(tasks []models.Task, z Zoom, today time.Time) []time.Time {
	if len(tasks) == 0 {
		day := dateutil.Day(today)
		return dateutil.Range(dateutil.AddDays(day, -7), dateutil.AddDays(day, 60))
	}

	minStart := dateutil.Day(tasks[0].StartDate)
	maxEnd := dateutil.Day(tasks[0].EndDate)
	for _, t := range tasks[1:] {
		if s := dateutil.Day(t.StartDate); s.Before(minStart) {
			minStart = s
		}
		if e := dateutil.Day(t.EndDate); e.After(maxEnd) {
			maxEnd = e
		}
	}

	b := rangeBuffer(z)
	return dateutil.Range(dateutil.AddDays(minStart, -b), dateutil.AddDays(maxEnd, b))
}

// DateToX converts a date to its horizontal cell offset from the range start.
func DateToX(date, rangeStart time.Time, dayWidth int) int {
	return dateutil.DiffDays(date, rangeStart) * dayWidth
}

// XToDeltaDays converts a horizontal cell delta to whole days. Rounding is
// half away from zero: +0.5 day rounds to +1, -0.5 day rounds to -1.
func XToDeltaDays(deltaX, dayWidth int) int {
	if dayWidth <= 0 {
		return 0
	}
	return int(math.Round(float64(deltaX) / float64(dayWidth)))
}
