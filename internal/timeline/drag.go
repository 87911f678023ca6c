package timeline

import (
	"time"

	"gantt/internal/dateutil"
	"gantt/internal/models"
)

// DragKind distinguishes the three pointer edits a bar supports.
type DragKind int

const (
	DragMove DragKind = iota
	DragResizeStart
	DragResizeEnd
)

// MinHandleWidth is the narrowest rendered bar (in cells) that still exposes
// resize handles. Below this the whole bar acts as a move target, so a tiny
// bar can't be accidentally resized.
const MinHandleWidth = 3

// HandlesEnabled reports whether a bar of the given rendered width should
// offer its edge handles. Dimmed bars never do.
func HandlesEnabled(barWidth int, dimmed bool) bool {
	return barWidth >= MinHandleWidth && !dimmed
}

// Drag anchors an in-progress edit: the pointer position and the task's span
// at gesture start. It never changes once the gesture begins.
type Drag struct {
	TaskID      string
	Kind        DragKind
	AnchorX     int
	AnchorStart time.Time
	AnchorEnd   time.Time
}

// Preview is the uncommitted span proposed by the current pointer position.
// Authoritative task data is untouched until the preview is committed.
type Preview struct {
	TaskID string
	Start  time.Time
	End    time.Time
}

// Apply merges the preview's dates over the task, producing the commit value.
func (p Preview) Apply(t models.Task) models.Task {
	t.StartDate = p.Start
	t.EndDate = p.End
	return t
}

// previewAt is the pure transition function: pointer at x, given the day
// column width, yields the proposed span. Moves shift both ends by the same
// delta so the span length is preserved exactly; resizes clamp to the one-day
// floor on every call, not just at commit.
func (d Drag) previewAt(x, dayWidth int) Preview {
	delta := XToDeltaDays(x-d.AnchorX, dayWidth)
	start, end := d.AnchorStart, d.AnchorEnd

	switch d.Kind {
	case DragMove:
		start = dateutil.AddDays(start, delta)
		end = dateutil.AddDays(end, delta)
	case DragResizeStart:
		start = dateutil.AddDays(start, delta)
		if dateutil.DiffDays(end, start) < 1 {
			start = dateutil.AddDays(end, -1)
		}
	case DragResizeEnd:
		end = dateutil.AddDays(end, delta)
		if dateutil.DiffDays(end, start) < 1 {
			end = dateutil.AddDays(start, 1)
		}
	}

	return Preview{TaskID: d.TaskID, Start: start, End: end}
}

// Machine is the drag state machine: Idle, or Active with exactly one drag.
// There is no cancel path; the only exit is Release.
type Machine struct {
	active  *Drag
	preview *Preview
}

// Active reports whether a drag is in progress.
func (m *Machine) Active() bool {
	return m.active != nil
}

// Begin starts a drag for the task at pointer position x. It is refused
// while another drag is active.
func (m *Machine) Begin(kind DragKind, task models.Task, x int) bool {
	if m.active != nil {
		return false
	}
	m.active = &Drag{
		TaskID:      task.ID,
		Kind:        kind,
		AnchorX:     x,
		AnchorStart: dateutil.Day(task.StartDate),
		AnchorEnd:   dateutil.Day(task.EndDate),
	}
	m.preview = &Preview{TaskID: task.ID, Start: m.active.AnchorStart, End: m.active.AnchorEnd}
	return true
}

// Move recomputes the preview for the current pointer position. Ignored
// while idle.
func (m *Machine) Move(x, dayWidth int) {
	if m.active == nil {
		return
	}
	p := m.active.previewAt(x, dayWidth)
	m.preview = &p
}

// PreviewFor returns the live preview for the given task, if it is the one
// being dragged.
func (m *Machine) PreviewFor(taskID string) (Preview, bool) {
	if m.preview == nil || m.preview.TaskID != taskID {
		return Preview{}, false
	}
	return *m.preview, true
}

// Moved reports whether the preview differs from the gesture's anchor dates.
// A release without movement is a click, not an edit.
func (m *Machine) Moved() bool {
	if m.active == nil || m.preview == nil {
		return false
	}
	return !m.preview.Start.Equal(m.active.AnchorStart) || !m.preview.End.Equal(m.active.AnchorEnd)
}

// Release ends the drag and returns the final preview for the caller to
// commit. Every exit path clears both the drag and the preview, so the next
// gesture always starts from Idle.
func (m *Machine) Release() (Preview, bool) {
	if m.active == nil {
		return Preview{}, false
	}
	p := *m.preview
	m.active = nil
	m.preview = nil
	return p, true
}
