package share

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gantt/internal/models"
)

func sampleDoc() *models.Document {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}
	return &models.Document{
		Title:    "Launch plan",
		Subtitle: "Q3 schedule",
		Groups: []models.Group{
			{ID: "g1", Name: "Engineering", Position: 0},
			{ID: "g2", Name: "Design", Position: 1},
		},
		Tasks: []models.Task{
			{
				ID: "t1", Name: "API freeze",
				StartDate: d(2024, 7, 1), EndDate: d(2024, 7, 5),
				Color: "#6366f1", Progress: 60, Notes: "blocked on review",
				GroupID: "g1", RelatedTaskIDs: []string{"t2"},
			},
			{
				ID: "t2", Name: "Mockups",
				StartDate: d(2024, 7, 3), EndDate: d(2024, 7, 10),
				Color: "#10b981", Progress: 0, GroupID: "g2", Position: 1,
			},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := sampleDoc()

	token, err := Encode(doc)
	require.NoError(t, err)
	assert.NotContains(t, token, "+", "token must be URL-safe")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")

	got, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestDecodeGarbageYieldsSentinel(t *testing.T) {
	for _, token := range []string{"", "!!!not-base64!!!", "aGVsbG8", "QUFBQUFBQUFBQUFBQUFBQQ"} {
		doc, err := Decode(token)
		assert.Error(t, err, "token %q", token)
		assert.Nil(t, doc)
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	payload := `{
		"title": "Imported",
		"futureField": {"nested": true},
		"groups": [{"id": "g1", "name": "Ops", "legacyColor": "#fff"}],
		"tasks": [{
			"id": "t1", "name": "Thing",
			"startDate": "2024-01-01", "endDate": "2024-01-03",
			"groupId": "g1", "progress": 250, "extra": 42
		}]
	}`

	doc, err := UnmarshalJSON([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "Imported", doc.Title)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, 100, doc.Tasks[0].Progress, "out-of-range progress clamps")
	assert.Equal(t, models.DefaultTaskColor, doc.Tasks[0].Color, "missing color defaults")
}

func TestUnmarshalDropsTasksWithBadDates(t *testing.T) {
	payload := `{
		"tasks": [
			{"id": "bad", "name": "Broken", "startDate": "tomorrow", "endDate": "2024-01-03", "groupId": "g1"},
			{"id": "ok", "name": "Fine", "startDate": "2024-01-01", "endDate": "2024-01-03", "groupId": "g1"}
		]
	}`

	doc, err := UnmarshalJSON([]byte(payload))
	require.NoError(t, err)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "ok", doc.Tasks[0].ID)
}

// A task pointing at a group missing from the document must survive decode;
// layout buckets it later.
func TestUnmarshalKeepsOrphanGroupReferences(t *testing.T) {
	payload := `{
		"groups": [{"id": "g1", "name": "Ops"}],
		"tasks": [{"id": "t1", "name": "Stray", "startDate": "2024-01-01", "endDate": "2024-01-02", "groupId": "deleted"}]
	}`

	doc, err := UnmarshalJSON([]byte(payload))
	require.NoError(t, err)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "deleted", doc.Tasks[0].GroupID)
}
