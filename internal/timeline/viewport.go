package timeline

import (
	"time"
)

// CenterOn computes the horizontal scroll offset that centers date in the
// timeline portion of the viewport (the part to the right of the lane label
// column). The result is clamped at zero; for a fixed geometry the same date
// always yields the same offset, so repeated jump requests are idempotent.
func CenterOn(date, rangeStart time.Time, dayWidth, viewportWidth, laneColumnWidth int) int {
	x := DateToX(date, rangeStart, dayWidth)
	offset := x - (viewportWidth-laneColumnWidth)/2
	if offset < 0 {
		return 0
	}
	return offset
}

// ClampScroll keeps a scroll offset within [0, content-viewport].
func ClampScroll(offset, content, viewport int) int {
	maxOffset := content - viewport
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}
