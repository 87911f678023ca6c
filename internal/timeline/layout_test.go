package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gantt/internal/models"
)

func TestLayoutGroupsStacksInStoredOrder(t *testing.T) {
	groups := []models.Group{
		{ID: "g1", Name: "Engineering", Position: 0},
		{ID: "g2", Name: "Design", Position: 1},
	}
	tasks := []models.Task{
		{ID: "t1", GroupID: "g1"},
		{ID: "t2", GroupID: "g2"},
		{ID: "t3", GroupID: "g1"},
	}

	lanes := LayoutGroups(groups, tasks)
	require.Len(t, lanes, 2)

	assert.Equal(t, 0, lanes[0].StartY)
	assert.Equal(t, 2*RowHeight, lanes[0].Height)
	assert.Equal(t, 2*RowHeight, lanes[1].StartY)
	assert.Equal(t, RowHeight, lanes[1].Height)
}

func TestLayoutEmptyGroupReservesOneRow(t *testing.T) {
	groups := []models.Group{{ID: "g1"}, {ID: "g2"}}
	tasks := []models.Task{{ID: "t1", GroupID: "g2"}}

	lanes := LayoutGroups(groups, tasks)
	require.Len(t, lanes, 2)

	assert.Empty(t, lanes[0].Tasks)
	assert.Equal(t, RowHeight, lanes[0].Height, "empty group still renders a placeholder row")
	assert.Equal(t, RowHeight, lanes[1].StartY)
}

// Row index comes from task list order, not date order.
func TestLayoutRowOrderIsListOrder(t *testing.T) {
	groups := []models.Group{{ID: "g1"}}
	tasks := []models.Task{
		{ID: "later", GroupID: "g1", StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5)},
		{ID: "earlier", GroupID: "g1", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 5)},
	}

	lanes := LayoutGroups(groups, tasks)
	require.Len(t, lanes[0].Tasks, 2)

	assert.Equal(t, "later", lanes[0].Tasks[0].ID)
	assert.Equal(t, "earlier", lanes[0].Tasks[1].ID)
	assert.Equal(t, 0, lanes[0].RowY(0))
	assert.Equal(t, RowHeight, lanes[0].RowY(1))
}

func TestLayoutOrphansLandInFallbackLane(t *testing.T) {
	groups := []models.Group{{ID: "g1", Name: "Engineering"}}
	tasks := []models.Task{
		{ID: "t1", GroupID: "g1"},
		{ID: "lost", GroupID: "deleted-group"},
	}

	lanes := LayoutGroups(groups, tasks)
	require.Len(t, lanes, 2)

	fallback := lanes[1]
	assert.True(t, fallback.Fallback())
	assert.Equal(t, UnassignedName, fallback.Group.Name)
	require.Len(t, fallback.Tasks, 1)
	assert.Equal(t, "lost", fallback.Tasks[0].ID)
}

func TestLayoutNoFallbackLaneWithoutOrphans(t *testing.T) {
	groups := []models.Group{{ID: "g1"}}
	tasks := []models.Task{{ID: "t1", GroupID: "g1"}}

	lanes := LayoutGroups(groups, tasks)
	assert.Len(t, lanes, 1)
}

func TestTotalHeight(t *testing.T) {
	groups := []models.Group{{ID: "g1"}, {ID: "g2"}}
	tasks := []models.Task{
		{ID: "t1", GroupID: "g1"},
		{ID: "t2", GroupID: "g1"},
	}

	lanes := LayoutGroups(groups, tasks)
	assert.Equal(t, 3*RowHeight+TrailingPad, TotalHeight(lanes))
}
