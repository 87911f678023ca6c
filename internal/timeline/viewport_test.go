package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCenterOn(t *testing.T) {
	rangeStart := date(2024, 1, 1)
	today := date(2024, 3, 1) // 60 days in
	w := 6

	// x = 360; timeline viewport = 120-20 = 100 cells; offset = 360-50.
	got := CenterOn(today, rangeStart, w, 120, 20)
	assert.Equal(t, 310, got)
}

func TestCenterOnClampsAtZero(t *testing.T) {
	rangeStart := date(2024, 1, 1)
	near := date(2024, 1, 3)

	assert.Equal(t, 0, CenterOn(near, rangeStart, 6, 200, 20))
}

// Two jump requests with unchanged geometry compute the same target, even
// though each request is a distinct trigger.
func TestCenterOnIdempotent(t *testing.T) {
	rangeStart := date(2024, 1, 1)
	today := date(2024, 4, 1)

	first := CenterOn(today, rangeStart, 6, 150, 20)
	second := CenterOn(today, rangeStart, 6, 150, 20)
	assert.Equal(t, first, second)
}

func TestClampScroll(t *testing.T) {
	assert.Equal(t, 0, ClampScroll(-5, 100, 40))
	assert.Equal(t, 30, ClampScroll(30, 100, 40))
	assert.Equal(t, 60, ClampScroll(999, 100, 40))
	assert.Equal(t, 0, ClampScroll(10, 20, 40), "content smaller than viewport pins to 0")
}
