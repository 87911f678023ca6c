package timeline

import (
	"gantt/internal/models"
)

// Selection tracks the single selected task. The zero value is "nothing
// selected".
type Selection struct {
	id string
}

// Toggle selects id, or clears the selection when id is already selected.
func (s *Selection) Toggle(id string) {
	if s.id == id {
		s.id = ""
		return
	}
	s.id = id
}

// Clear drops any selection (background click).
func (s *Selection) Clear() {
	s.id = ""
}

// ID returns the selected task id, or "".
func (s *Selection) ID() string {
	return s.id
}

// Active reports whether anything is selected.
func (s *Selection) Active() bool {
	return s.id != ""
}

// HighlightSet returns the set of task ids highlighted because they are
// related to the selection. Dangling references are already filtered by the
// document.
func HighlightSet(doc *models.Document, selectedID string) map[string]bool {
	if selectedID == "" {
		return nil
	}
	ids := doc.RelatedTo(selectedID)
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Dimmed reports whether a task should render dimmed: a selection exists and
// the task is neither the selection nor in its highlight set.
func Dimmed(taskID, selectedID string, highlights map[string]bool) bool {
	if selectedID == "" {
		return false
	}
	return taskID != selectedID && !highlights[taskID]
}
