package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gantt/internal/models"
)

func TestSelectionToggleIdempotence(t *testing.T) {
	var s Selection

	s.Toggle("t1")
	assert.Equal(t, "t1", s.ID())

	// Selecting the selected task clears it.
	s.Toggle("t1")
	assert.False(t, s.Active())

	// Toggling twice always lands back where you started.
	s.Toggle("t2")
	s.Toggle("t2")
	assert.Equal(t, "", s.ID())
}

func TestSelectionSwitch(t *testing.T) {
	var s Selection
	s.Toggle("t1")
	s.Toggle("t2")
	assert.Equal(t, "t2", s.ID())

	s.Clear()
	assert.False(t, s.Active())
}

func TestHighlightSet(t *testing.T) {
	doc := &models.Document{
		Tasks: []models.Task{
			{ID: "a", RelatedTaskIDs: []string{"b", "dangling"}},
			{ID: "b"},
			{ID: "c"},
		},
	}

	set := HighlightSet(doc, "a")
	assert.True(t, set["b"])
	assert.False(t, set["dangling"], "references to deleted tasks never highlight")
	assert.False(t, set["c"])

	assert.Nil(t, HighlightSet(doc, ""))
	assert.Nil(t, HighlightSet(doc, "c"), "no related ids means empty set")
}

func TestDimmedPolicy(t *testing.T) {
	highlights := map[string]bool{"b": true}

	// With no selection nothing is dimmed.
	assert.False(t, Dimmed("a", "", nil))

	// With a selection, everything outside selection+highlights dims.
	assert.False(t, Dimmed("a", "a", highlights))
	assert.False(t, Dimmed("b", "a", highlights))
	assert.True(t, Dimmed("c", "a", highlights))
}
