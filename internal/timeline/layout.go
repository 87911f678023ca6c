package timeline

import (
	"gantt/internal/models"
)

const (
	// RowHeight is the vertical size of one task row in terminal rows: a
	// label line above the bar line.
	RowHeight = 2

	// TrailingPad is the empty band under the last lane.
	TrailingPad = 2
)

// UnassignedName labels the fallback lane for tasks whose group id matches
// no known group.
const UnassignedName = "Unassigned"

// Lane is one group's horizontal band on the chart.
type Lane struct {
	Group  models.Group
	StartY int
	Height int
	Tasks  []models.Task
}

// Fallback reports whether this lane is the synthetic bucket for orphaned
// tasks rather than a real group.
func (l Lane) Fallback() bool {
	return l.Group.ID == ""
}

// LayoutGroups partitions tasks into lanes following the groups' stored
// order. A group with no tasks still reserves one empty row. Tasks keep
// their list order within a lane; row index is position in that list, not
// date order. Tasks referencing an unknown group land in a fallback lane
// appended after all real groups, so foreign or stale documents still render.
func LayoutGroups(groups []models.Group, tasks []models.Task) []Lane {
	known := make(map[string]bool, len(groups))
	for _, g := range groups {
		known[g.ID] = true
	}

	lanes := make([]Lane, 0, len(groups)+1)
	y := 0
	for _, g := range groups {
		var mine []models.Task
		for _, t := range tasks {
			if t.GroupID == g.ID {
				mine = append(mine, t)
			}
		}
		h := laneHeight(len(mine))
		lanes = append(lanes, Lane{Group: g, StartY: y, Height: h, Tasks: mine})
		y += h
	}

	var orphans []models.Task
	for _, t := range tasks {
		if !known[t.GroupID] {
			orphans = append(orphans, t)
		}
	}
	if len(orphans) > 0 {
		h := laneHeight(len(orphans))
		lanes = append(lanes, Lane{
			Group:  models.Group{Name: UnassignedName},
			StartY: y,
			Height: h,
			Tasks:  orphans,
		})
	}

	return lanes
}

func laneHeight(taskCount int) int {
	if taskCount < 1 {
		taskCount = 1
	}
	return taskCount * RowHeight
}

// RowY returns the vertical offset of the idx-th task row inside the lane.
func (l Lane) RowY(idx int) int {
	return l.StartY + idx*RowHeight
}

// TotalHeight is the full canvas height in rows, including trailing padding.
func TotalHeight(lanes []Lane) int {
	h := 0
	for _, l := range lanes {
		h += l.Height
	}
	return h + TrailingPad
}
