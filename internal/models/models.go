package models

import (
	"math"
	"time"

	"github.com/google/uuid"

	"gantt/internal/dateutil"
)

// DefaultTaskColor is used for tasks created without an explicit color.
const DefaultTaskColor = "#94a3b8"

// Group represents a named vertical lane (department) that owns tasks.
// Position defines the stacking order on the chart and is user-reorderable.
type Group struct {
	ID       string
	Name     string
	Position int
}

// Task represents a single schedulable work item. StartDate and EndDate are
// day-granularity (midnight UTC); the distance between them is the span,
// with a minimum length of one day.
type Task struct {
	ID             string
	Name           string
	StartDate      time.Time
	EndDate        time.Time
	Color          string
	Progress       int // 0-100
	Notes          string
	GroupID        string
	Position       int
	RelatedTaskIDs []string
}

// Span returns the task's length in days, never less than 1.
func (t Task) Span() int {
	if d := dateutil.DiffDays(t.EndDate, t.StartDate); d > 1 {
		return d
	}
	return 1
}

// ActiveOn reports whether date falls inside the task's span.
func (t Task) ActiveOn(date time.Time) bool {
	d := dateutil.Day(date)
	return !d.Before(dateutil.Day(t.StartDate)) && !d.After(dateutil.Day(t.EndDate))
}

// Delayed reports whether the task's end date has passed without the work
// being complete.
func (t Task) Delayed(today time.Time) bool {
	return dateutil.Day(t.EndDate).Before(dateutil.Day(today)) && t.Progress < 100
}

// ExpectedProgress returns the percentage of the span that has elapsed by the
// given date, clamped to [0, 100]. Comparing it to Progress shows whether the
// task is ahead of or behind schedule.
func (t Task) ExpectedProgress(on time.Time) int {
	total := dateutil.DiffDays(t.EndDate, t.StartDate)
	if total < 1 {
		total = 1
	}
	elapsed := dateutil.DiffDays(on, t.StartDate)
	pct := int(math.Round(float64(elapsed) / float64(total) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Related reports whether other is in the task's related set.
func (t Task) Related(other string) bool {
	for _, id := range t.RelatedTaskIDs {
		if id == other {
			return true
		}
	}
	return false
}

// Document is the persisted aggregate: one project schedule.
type Document struct {
	Title    string
	Subtitle string
	Groups   []Group
	Tasks    []Task
}

// Task returns a pointer into the document's task list, or nil.
func (d *Document) Task(id string) *Task {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return &d.Tasks[i]
		}
	}
	return nil
}

// Group looks up a group by id.
func (d *Document) Group(id string) (Group, bool) {
	for _, g := range d.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// GroupName returns the group's display name, or a fallback label when the
// task points at a group that no longer exists.
func (d *Document) GroupName(id string) string {
	if g, ok := d.Group(id); ok {
		return g.Name
	}
	return "Unassigned"
}

// RelatedTo returns the related ids of the given task, filtered down to
// tasks that still exist. Deleting a task never prunes references held by
// others, so dangling ids are dropped here at read time.
func (d *Document) RelatedTo(id string) []string {
	t := d.Task(id)
	if t == nil {
		return nil
	}
	var live []string
	for _, rid := range t.RelatedTaskIDs {
		if d.Task(rid) != nil {
			live = append(live, rid)
		}
	}
	return live
}

// NewID returns a fresh opaque task/group identifier.
func NewID() string {
	return uuid.NewString()
}

// NewTask creates a task with the standard defaults: a four-day window
// starting today, zero progress, assigned to the given group.
func NewTask(groupID string, today time.Time) Task {
	day := dateutil.Day(today)
	return Task{
		ID:        NewID(),
		Name:      "New task",
		StartDate: day,
		EndDate:   dateutil.AddDays(day, 3),
		Color:     DefaultTaskColor,
		Progress:  0,
		GroupID:   groupID,
	}
}

// DefaultDocument is the seed schedule written on first run.
func DefaultDocument(today time.Time) Document {
	groups := []Group{
		{ID: NewID(), Name: "Engineering", Position: 0},
		{ID: NewID(), Name: "Design", Position: 1},
		{ID: NewID(), Name: "Operations", Position: 2},
	}
	day := dateutil.Day(today)
	sample := Task{
		ID:        NewID(),
		Name:      "Requirements & planning",
		StartDate: day,
		EndDate:   dateutil.AddDays(day, 5),
		Color:     "#6366f1",
		Progress:  80,
		Notes:     "Initial client interviews done; budget details pending.",
		GroupID:   groups[0].ID,
	}
	return Document{
		Title:    "Project Schedule",
		Subtitle: "Departmental plan",
		Groups:   groups,
		Tasks:    []Task{sample},
	}
}

// Suggestion is one AI-proposed work item, expressed relative to a base date.
type Suggestion struct {
	Name           string
	DurationDays   int
	OffsetFromBase int
	Color          string
	Progress       int
}

// Materialize converts a suggestion batch to concrete tasks anchored at
// baseDate and assigned to groupID.
func Materialize(suggestions []Suggestion, baseDate time.Time, groupID string) []Task {
	base := dateutil.Day(baseDate)
	tasks := make([]Task, 0, len(suggestions))
	for _, s := range suggestions {
		color := s.Color
		if color == "" {
			color = "#6366f1"
		}
		tasks = append(tasks, Task{
			ID:        NewID(),
			Name:      s.Name,
			StartDate: dateutil.AddDays(base, s.OffsetFromBase),
			EndDate:   dateutil.AddDays(base, s.OffsetFromBase+s.DurationDays),
			Color:     color,
			Progress:  s.Progress,
			Notes:     "Generated from prompt",
			GroupID:   groupID,
		})
	}
	return tasks
}
