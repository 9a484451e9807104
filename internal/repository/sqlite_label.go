package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/trellis/internal/db"
	"github.com/alexanderramin/trellis/internal/domain"
)

// SQLiteLabelRepo implements LabelRepo over a DBTX connection.
type SQLiteLabelRepo struct {
	conn db.DBTX
}

// NewSQLiteLabelRepo creates a new SQLiteLabelRepo.
func NewSQLiteLabelRepo(conn db.DBTX) *SQLiteLabelRepo {
	return &SQLiteLabelRepo{conn: conn}
}

func (r *SQLiteLabelRepo) Create(ctx context.Context, l *domain.Label) error {
	query := `INSERT INTO labels (id, project_id, name, color) VALUES (?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query, l.ID, l.ProjectID, l.Name, l.Color)
	if err != nil {
		return fmt.Errorf("inserting label: %w", err)
	}
	return nil
}

func (r *SQLiteLabelRepo) GetByID(ctx context.Context, id string) (*domain.Label, error) {
	query := `SELECT id, project_id, name, color FROM labels WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	var l domain.Label
	if err := row.Scan(&l.ID, &l.ProjectID, &l.Name, &l.Color); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("label: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning label: %w", err)
	}
	return &l, nil
}

func (r *SQLiteLabelRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Label, error) {
	query := `SELECT id, project_id, name, color FROM labels WHERE project_id = ? ORDER BY name`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	defer rows.Close()
	return r.scanLabels(rows)
}

func (r *SQLiteLabelRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.Label, error) {
	query := `SELECT l.id, l.project_id, l.name, l.color
		FROM labels l
		JOIN task_labels tl ON tl.label_id = l.id
		WHERE tl.task_id = ?
		ORDER BY l.name`
	rows, err := r.conn.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing task labels: %w", err)
	}
	defer rows.Close()
	return r.scanLabels(rows)
}

func (r *SQLiteLabelRepo) Attach(ctx context.Context, taskID, labelID string) error {
	query := `INSERT OR IGNORE INTO task_labels (task_id, label_id) VALUES (?, ?)`
	_, err := r.conn.ExecContext(ctx, query, taskID, labelID)
	if err != nil {
		return fmt.Errorf("attaching label: %w", err)
	}
	return nil
}

func (r *SQLiteLabelRepo) Detach(ctx context.Context, taskID, labelID string) error {
	query := `DELETE FROM task_labels WHERE task_id = ? AND label_id = ?`
	_, err := r.conn.ExecContext(ctx, query, taskID, labelID)
	if err != nil {
		return fmt.Errorf("detaching label: %w", err)
	}
	return nil
}

func (r *SQLiteLabelRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM labels WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting label: %w", err)
	}
	return nil
}

// scanLabels scans multiple label rows from *sql.Rows.
func (r *SQLiteLabelRepo) scanLabels(rows *sql.Rows) ([]*domain.Label, error) {
	var labels []*domain.Label
	for rows.Next() {
		var l domain.Label
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.Name, &l.Color); err != nil {
			return nil, fmt.Errorf("scanning label row: %w", err)
		}
		labels = append(labels, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating labels: %w", err)
	}
	return labels, nil
}
