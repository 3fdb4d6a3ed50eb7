package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ProjectRecord is one locally saved project.
type ProjectRecord struct {
	ID          string
	Description string
	Data        []byte
	UpdatedAt   time.Time
}

// SaveProject inserts or replaces a local project.
func (s *Store) SaveProject(ctx context.Context, rec ProjectRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("project id cannot be empty")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, description, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			description = excluded.description,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Description, string(rec.Data), s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("save project %s: %w", rec.ID, err)
	}
	return nil
}

// LoadProject returns the project with id or ErrNotFound.
func (s *Store) LoadProject(ctx context.Context, id string) (ProjectRecord, error) {
	var (
		rec     = ProjectRecord{ID: id}
		data    string
		updated int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT description, data, updated_at FROM projects WHERE id = ?", id).
		Scan(&rec.Description, &data, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return rec, fmt.Errorf("load project %s: %w", id, err)
	}
	rec.Data = []byte(data)
	rec.UpdatedAt = time.Unix(0, updated)
	return rec, nil
}

// ListProjects returns all local projects, most recently saved first. Data
// is not loaded.
func (s *Store) ListProjects(ctx context.Context) ([]ProjectRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, updated_at FROM projects ORDER BY updated_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []ProjectRecord
	for rows.Next() {
		var (
			rec     ProjectRecord
			updated int64
		)
		if err := rows.Scan(&rec.ID, &rec.Description, &updated); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		rec.UpdatedAt = time.Unix(0, updated)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteProject removes a local project.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}
