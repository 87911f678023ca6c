package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gantt/internal/models"
)

func testDoc() *models.Document {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}
	return &models.Document{
		Title:  "Plan",
		Groups: []models.Group{{ID: "g1", Name: "Engineering"}},
		Tasks: []models.Task{
			{ID: "t1", Name: "Dig, then pour", StartDate: d(2024, 1, 5), EndDate: d(2024, 1, 10), Progress: 40, Notes: "wet weather risk", GroupID: "g1", Color: "#fff"},
			{ID: "t2", Name: "Stray", StartDate: d(2024, 1, 6), EndDate: d(2024, 1, 8), GroupID: "gone", Color: "#fff"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testDoc()))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Task", "Group", "Start", "End", "Progress (%)", "Notes"}, rows[0])
	assert.Equal(t, []string{"Dig, then pour", "Engineering", "2024-01-05", "2024-01-10", "40", "wet weather risk"}, rows[1])
	assert.Equal(t, "Unassigned", rows[2][1], "orphan tasks export under the fallback label")
}

func TestJSONBackupRoundTrip(t *testing.T) {
	doc := testDoc()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))

	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.Title, got.Title)
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, doc.Tasks[0].StartDate, got.Tasks[0].StartDate)
	assert.Equal(t, "gone", got.Tasks[1].GroupID)
}

func TestReadJSONRejectsGarbage(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("not json at all"))
	assert.Error(t, err)
}
