package db

import (
	"gantt/internal/models"
)

// CreateGroup inserts a new group at the end of the stacking order
func (db *DB) CreateGroup(id, name string) (*models.Group, error) {
	var next int
	if err := db.QueryRow("SELECT COALESCE(MAX(position)+1, 0) FROM groups").Scan(&next); err != nil {
		return nil, err
	}

	_, err := db.Exec(`
		INSERT INTO groups (id, name, position) VALUES (?, ?, ?)
	`, id, name, next)
	if err != nil {
		return nil, err
	}

	return &models.Group{ID: id, Name: name, Position: next}, nil
}

// ListGroups returns all groups in stacking order
func (db *DB) ListGroups() ([]models.Group, error) {
	rows, err := db.Query(`
		SELECT id, name, position FROM groups ORDER BY position, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Position); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// RenameGroup updates a group's display name
func (db *DB) RenameGroup(id, name string) error {
	_, err := db.Exec("UPDATE groups SET name = ? WHERE id = ?", name, id)
	return err
}

// DeleteGroup removes a group. Its tasks keep their group_id and surface in
// the fallback lane until reassigned.
func (db *DB) DeleteGroup(id string) error {
	_, err := db.Exec("DELETE FROM groups WHERE id = ?", id)
	return err
}

// SwapGroupPositions exchanges the stacking positions of two groups
func (db *DB) SwapGroupPositions(a, b models.Group) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE groups SET position = ? WHERE id = ?", b.Position, a.ID); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE groups SET position = ? WHERE id = ?", a.Position, b.ID); err != nil {
		return err
	}
	return tx.Commit()
}
