package db

import (
	"time"

	"gantt/internal/dateutil"
	"gantt/internal/logging"
	"gantt/internal/models"
)

// Settings keys for document-level fields.
const (
	SettingTitle    = "title"
	SettingSubtitle = "subtitle"
	SettingZoom     = "zoom"
)

// LoadDocument assembles the full schedule from the database.
func (db *DB) LoadDocument(log *logging.Logger) (*models.Document, error) {
	groups, err := db.ListGroups()
	if err != nil {
		return nil, err
	}
	tasks, err := db.ListTasks(log)
	if err != nil {
		return nil, err
	}
	title, err := db.GetSetting(SettingTitle)
	if err != nil {
		return nil, err
	}
	subtitle, err := db.GetSetting(SettingSubtitle)
	if err != nil {
		return nil, err
	}

	return &models.Document{
		Title:    title,
		Subtitle: subtitle,
		Groups:   groups,
		Tasks:    tasks,
	}, nil
}

// SaveDocument replaces the stored schedule wholesale. Used by share-link and
// file imports; incremental edits go through the per-entity methods.
func (db *DB) SaveDocument(doc *models.Document) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"task_relations", "tasks", "groups"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	for i, g := range doc.Groups {
		if _, err := tx.Exec(
			"INSERT INTO groups (id, name, position) VALUES (?, ?, ?)",
			g.ID, g.Name, i,
		); err != nil {
			return err
		}
	}

	for i, t := range doc.Tasks {
		if _, err := tx.Exec(`
			INSERT INTO tasks (id, name, start_date, end_date, color, progress, notes, group_id, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, t.ID, t.Name, dateutil.Format(t.StartDate), dateutil.Format(t.EndDate),
			t.Color, t.Progress, t.Notes, t.GroupID, i); err != nil {
			return err
		}
		for _, rid := range t.RelatedTaskIDs {
			if _, err := tx.Exec(
				"INSERT OR IGNORE INTO task_relations (task_id, related_id) VALUES (?, ?)",
				t.ID, rid,
			); err != nil {
				return err
			}
		}
	}

	for _, kv := range [][2]string{
		{SettingTitle, doc.Title},
		{SettingSubtitle, doc.Subtitle},
	} {
		if _, err := tx.Exec(`
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, kv[0], kv[1]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SeedIfEmpty writes the default document on first run.
func (db *DB) SeedIfEmpty(today time.Time) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM groups").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	doc := models.DefaultDocument(today)
	return db.SaveDocument(&doc)
}
