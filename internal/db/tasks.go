package db

import (
	"gantt/internal/dateutil"
	"gantt/internal/models"

	"gantt/internal/logging"
)

// CreateTask inserts a task at the end of its group's row order
func (db *DB) CreateTask(t models.Task) error {
	var next int
	err := db.QueryRow(
		"SELECT COALESCE(MAX(position)+1, 0) FROM tasks WHERE group_id = ?", t.GroupID,
	).Scan(&next)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO tasks (id, name, start_date, end_date, color, progress, notes, group_id, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, dateutil.Format(t.StartDate), dateutil.Format(t.EndDate),
		t.Color, t.Progress, t.Notes, t.GroupID, next)
	if err != nil {
		return err
	}

	return db.setRelations(t.ID, t.RelatedTaskIDs)
}

// GetTask retrieves a task by ID with its related ids
func (db *DB) GetTask(id string) (*models.Task, error) {
	var t models.Task
	var start, end string
	err := db.QueryRow(`
		SELECT id, name, start_date, end_date, color, progress, notes, group_id, position
		FROM tasks WHERE id = ?
	`, id).Scan(&t.ID, &t.Name, &start, &end, &t.Color, &t.Progress, &t.Notes, &t.GroupID, &t.Position)
	if err != nil {
		return nil, err
	}

	if t.StartDate, err = dateutil.Parse(start); err != nil {
		return nil, err
	}
	if t.EndDate, err = dateutil.Parse(end); err != nil {
		return nil, err
	}

	related, err := db.relations(t.ID)
	if err != nil {
		return nil, err
	}
	t.RelatedTaskIDs = related

	return &t, nil
}

// ListTasks returns every task in row order. Rows with unparseable dates are
// skipped and logged rather than failing the whole load.
func (db *DB) ListTasks(log *logging.Logger) ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT id, name, start_date, end_date, color, progress, notes, group_id, position
		FROM tasks ORDER BY position, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var start, end string
		if err := rows.Scan(&t.ID, &t.Name, &start, &end, &t.Color, &t.Progress, &t.Notes, &t.GroupID, &t.Position); err != nil {
			return nil, err
		}
		if t.StartDate, err = dateutil.Parse(start); err != nil {
			log.Printf("skipping task %s: bad start_date %q", t.ID, start)
			continue
		}
		if t.EndDate, err = dateutil.Parse(end); err != nil {
			log.Printf("skipping task %s: bad end_date %q", t.ID, end)
			continue
		}
		if t.Progress < 0 {
			t.Progress = 0
		} else if t.Progress > 100 {
			t.Progress = 100
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load related ids for each task
	for i := range tasks {
		related, err := db.relations(tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].RelatedTaskIDs = related
	}

	return tasks, nil
}

// UpdateTask writes all editable fields of a task
func (db *DB) UpdateTask(t models.Task) error {
	_, err := db.Exec(`
		UPDATE tasks SET name = ?, start_date = ?, end_date = ?, color = ?,
			progress = ?, notes = ?, group_id = ?
		WHERE id = ?
	`, t.Name, dateutil.Format(t.StartDate), dateutil.Format(t.EndDate),
		t.Color, t.Progress, t.Notes, t.GroupID, t.ID)
	if err != nil {
		return err
	}
	return db.setRelations(t.ID, t.RelatedTaskIDs)
}

// UpdateTaskSpan persists a drag/resize commit: only the dates change
func (db *DB) UpdateTaskSpan(id string, t models.Task) error {
	_, err := db.Exec(`
		UPDATE tasks SET start_date = ?, end_date = ? WHERE id = ?
	`, dateutil.Format(t.StartDate), dateutil.Format(t.EndDate), id)
	return err
}

// DeleteTask deletes a task and the relations it owns. Relations held by
// other tasks that point here are left in place; readers filter them out.
func (db *DB) DeleteTask(id string) error {
	if _, err := db.Exec("DELETE FROM tasks WHERE id = ?", id); err != nil {
		return err
	}
	_, err := db.Exec("DELETE FROM task_relations WHERE task_id = ?", id)
	return err
}

// relations returns the related ids a task points at
func (db *DB) relations(taskID string) ([]string, error) {
	rows, err := db.Query(`
		SELECT related_id FROM task_relations WHERE task_id = ? ORDER BY related_id
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// setRelations replaces a task's related set
func (db *DB) setRelations(taskID string, related []string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM task_relations WHERE task_id = ?", taskID); err != nil {
		return err
	}
	for _, id := range related {
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO task_relations (task_id, related_id) VALUES (?, ?)
		`, taskID, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}
