package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gantt/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "gantt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGroupCRUDAndOrder(t *testing.T) {
	database := openTestDB(t)

	a, err := database.CreateGroup("g1", "Engineering")
	require.NoError(t, err)
	b, err := database.CreateGroup("g2", "Design")
	require.NoError(t, err)
	assert.Equal(t, 0, a.Position)
	assert.Equal(t, 1, b.Position)

	require.NoError(t, database.SwapGroupPositions(*a, *b))
	groups, err := database.ListGroups()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "g2", groups[0].ID, "list follows position order")

	require.NoError(t, database.RenameGroup("g1", "Platform"))
	require.NoError(t, database.DeleteGroup("g2"))
	groups, err = database.ListGroups()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Platform", groups[0].Name)
}

func TestTaskRoundTripWithRelations(t *testing.T) {
	database := openTestDB(t)
	_, err := database.CreateGroup("g1", "Engineering")
	require.NoError(t, err)

	task := models.Task{
		ID:             "t1",
		Name:           "Pour foundation",
		StartDate:      testDate(2024, 1, 5),
		EndDate:        testDate(2024, 1, 10),
		Color:          "#6366f1",
		Progress:       40,
		Notes:          "ready-mix ordered",
		GroupID:        "g1",
		RelatedTaskIDs: []string{"t9"},
	}
	require.NoError(t, database.CreateTask(task))

	got, err := database.GetTask("t1")
	require.NoError(t, err)
	assert.Equal(t, task.Name, got.Name)
	assert.Equal(t, task.StartDate, got.StartDate)
	assert.Equal(t, task.EndDate, got.EndDate)
	assert.Equal(t, []string{"t9"}, got.RelatedTaskIDs)

	// Drag commit touches dates only.
	moved := *got
	moved.StartDate = testDate(2024, 1, 8)
	moved.EndDate = testDate(2024, 1, 13)
	require.NoError(t, database.UpdateTaskSpan("t1", moved))

	got, err = database.GetTask("t1")
	require.NoError(t, err)
	assert.Equal(t, testDate(2024, 1, 8), got.StartDate)
	assert.Equal(t, testDate(2024, 1, 13), got.EndDate)
	assert.Equal(t, "Pour foundation", got.Name)
}

func TestDeleteTaskKeepsInboundRelations(t *testing.T) {
	database := openTestDB(t)
	_, err := database.CreateGroup("g1", "Engineering")
	require.NoError(t, err)

	a := models.Task{ID: "a", Name: "A", StartDate: testDate(2024, 1, 1), EndDate: testDate(2024, 1, 2), GroupID: "g1", RelatedTaskIDs: []string{"b"}}
	b := models.Task{ID: "b", Name: "B", StartDate: testDate(2024, 1, 1), EndDate: testDate(2024, 1, 2), GroupID: "g1"}
	require.NoError(t, database.CreateTask(a))
	require.NoError(t, database.CreateTask(b))

	require.NoError(t, database.DeleteTask("b"))

	// The dangling reference survives in storage; the model filters it.
	got, err := database.GetTask("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, got.RelatedTaskIDs)
}

func TestListTasksSkipsMalformedRows(t *testing.T) {
	database := openTestDB(t)
	_, err := database.Exec(`
		INSERT INTO tasks (id, name, start_date, end_date, group_id)
		VALUES ('bad', 'Broken', 'not-a-date', '2024-01-02', 'g1'),
		       ('ok', 'Fine', '2024-01-01', '2024-01-03', 'g1')
	`)
	require.NoError(t, err)

	tasks, err := database.ListTasks(nil)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "ok", tasks[0].ID)
}

func TestDocumentSaveLoadRoundTrip(t *testing.T) {
	database := openTestDB(t)

	doc := &models.Document{
		Title:    "Build",
		Subtitle: "Q3",
		Groups: []models.Group{
			{ID: "g1", Name: "Engineering"},
			{ID: "g2", Name: "Design"},
		},
		Tasks: []models.Task{
			{ID: "t1", Name: "One", StartDate: testDate(2024, 1, 1), EndDate: testDate(2024, 1, 4), Color: "#fff", GroupID: "g1", RelatedTaskIDs: []string{"t2"}},
			{ID: "t2", Name: "Two", StartDate: testDate(2024, 1, 2), EndDate: testDate(2024, 1, 6), Color: "#000", GroupID: "g2"},
		},
	}
	require.NoError(t, database.SaveDocument(doc))

	got, err := database.LoadDocument(nil)
	require.NoError(t, err)
	assert.Equal(t, "Build", got.Title)
	assert.Equal(t, "Q3", got.Subtitle)
	require.Len(t, got.Groups, 2)
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, []string{"t2"}, got.Tasks[0].RelatedTaskIDs)

	// Positions are assigned from list order on save.
	assert.Equal(t, "g1", got.Groups[0].ID)
	assert.Equal(t, "t1", got.Tasks[0].ID)

	// A second save replaces, never appends.
	doc.Tasks = doc.Tasks[:1]
	require.NoError(t, database.SaveDocument(doc))
	got, err = database.LoadDocument(nil)
	require.NoError(t, err)
	assert.Len(t, got.Tasks, 1)
}

func TestSeedIfEmpty(t *testing.T) {
	database := openTestDB(t)

	require.NoError(t, database.SeedIfEmpty(testDate(2024, 1, 1)))
	doc, err := database.LoadDocument(nil)
	require.NoError(t, err)
	assert.Len(t, doc.Groups, 3)
	assert.Len(t, doc.Tasks, 1)

	// Seeding again is a no-op.
	require.NoError(t, database.SeedIfEmpty(testDate(2024, 1, 1)))
	doc, err = database.LoadDocument(nil)
	require.NoError(t, err)
	assert.Len(t, doc.Tasks, 1)
}

func TestSettings(t *testing.T) {
	database := openTestDB(t)

	val, err := database.GetSetting("zoom")
	require.NoError(t, err)
	assert.Equal(t, "", val, "missing key reads as empty")

	require.NoError(t, database.SetSetting("zoom", "Week"))
	require.NoError(t, database.SetSetting("zoom", "Month"))
	val, err = database.GetSetting("zoom")
	require.NoError(t, err)
	assert.Equal(t, "Month", val)
}
