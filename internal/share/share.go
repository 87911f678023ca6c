// Package share turns a schedule document into an opaque token that can ride
// in a URL query parameter or a chat message, and back again. Tokens are
// deflate-compressed JSON in URL-safe base64.
package share

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"gantt/internal/dateutil"
	"gantt/internal/models"
)

// wireDocument is the JSON shape shared between tokens and file backups.
// Dates travel as YYYY-MM-DD strings. Unknown fields in foreign documents
// are ignored on decode; missing optionals take defaults.
type wireDocument struct {
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Groups   []wireGroup `json:"groups"`
	Tasks    []wireTask  `json:"tasks"`
}

type wireGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireTask struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Color     string   `json:"color,omitempty"`
	Progress  int      `json:"progress"`
	Notes     string   `json:"notes,omitempty"`
	GroupID   string   `json:"groupId"`
	Related   []string `json:"relatedTaskIds,omitempty"`
}

// MarshalJSON renders the document in the wire format (also used for file
// backups).
func MarshalJSON(doc *models.Document) ([]byte, error) {
	w := wireDocument{
		Title:    doc.Title,
		Subtitle: doc.Subtitle,
		Groups:   make([]wireGroup, 0, len(doc.Groups)),
		Tasks:    make([]wireTask, 0, len(doc.Tasks)),
	}
	for _, g := range doc.Groups {
		w.Groups = append(w.Groups, wireGroup{ID: g.ID, Name: g.Name})
	}
	for _, t := range doc.Tasks {
		w.Tasks = append(w.Tasks, wireTask{
			ID:        t.ID,
			Name:      t.Name,
			StartDate: dateutil.Format(t.StartDate),
			EndDate:   dateutil.Format(t.EndDate),
			Color:     t.Color,
			Progress:  t.Progress,
			Notes:     t.Notes,
			GroupID:   t.GroupID,
			Related:   t.RelatedTaskIDs,
		})
	}
	return json.MarshalIndent(w, "", "  ")
}

// UnmarshalJSON parses a wire-format document. Tasks with unparseable dates
// are dropped individually; a missing color or out-of-range progress is
// defaulted rather than rejected, so older or foreign exports still load.
func UnmarshalJSON(data []byte) (*models.Document, error) {
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("share: parse document: %w", err)
	}

	doc := &models.Document{Title: w.Title, Subtitle: w.Subtitle}
	for i, g := range w.Groups {
		if g.ID == "" {
			continue
		}
		doc.Groups = append(doc.Groups, models.Group{ID: g.ID, Name: g.Name, Position: i})
	}
	for i, t := range w.Tasks {
		start, err := dateutil.Parse(t.StartDate)
		if err != nil {
			continue
		}
		end, err := dateutil.Parse(t.EndDate)
		if err != nil {
			continue
		}
		color := t.Color
		if color == "" {
			color = models.DefaultTaskColor
		}
		progress := t.Progress
		if progress < 0 {
			progress = 0
		} else if progress > 100 {
			progress = 100
		}
		doc.Tasks = append(doc.Tasks, models.Task{
			ID:             t.ID,
			Name:           t.Name,
			StartDate:      start,
			EndDate:        end,
			Color:          color,
			Progress:       progress,
			Notes:          t.Notes,
			GroupID:        t.GroupID,
			Position:       i,
			RelatedTaskIDs: t.Related,
		})
	}
	return doc, nil
}

// Encode produces a URL-safe token for the document.
func Encode(doc *models.Document) (string, error) {
	payload, err := MarshalJSON(doc)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(payload); err != nil {
		return "", err
	}
	if err := fw.Close(); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode parses a token back into a document. Any failure yields (nil, err);
// callers fall back to local data instead of surfacing a hard error.
func Decode(token string) (*models.Document, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("share: decode token: %w", err)
	}

	fr := flate.NewReader(bytes.NewReader(raw))
	defer fr.Close()
	payload, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("share: decompress token: %w", err)
	}

	return UnmarshalJSON(payload)
}
