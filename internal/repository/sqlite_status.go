package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/trellis/internal/db"
	"github.com/alexanderramin/trellis/internal/domain"
)

// SQLiteStatusRepo implements StatusRepo over a DBTX connection.
type SQLiteStatusRepo struct {
	conn db.DBTX
}

// NewSQLiteStatusRepo creates a new SQLiteStatusRepo.
func NewSQLiteStatusRepo(conn db.DBTX) *SQLiteStatusRepo {
	return &SQLiteStatusRepo{conn: conn}
}

func (r *SQLiteStatusRepo) Create(ctx context.Context, s *domain.TaskStatus) error {
	query := `INSERT INTO task_statuses (id, project_id, name, position, is_terminal) VALUES (?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query, s.ID, s.ProjectID, s.Name, s.Position, boolToInt(s.IsTerminal))
	if err != nil {
		return fmt.Errorf("inserting task status: %w", err)
	}
	return nil
}

func (r *SQLiteStatusRepo) GetByID(ctx context.Context, id string) (*domain.TaskStatus, error) {
	query := `SELECT id, project_id, name, position, is_terminal FROM task_statuses WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	var s domain.TaskStatus
	var terminalInt int
	if err := row.Scan(&s.ID, &s.ProjectID, &s.Name, &s.Position, &terminalInt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task status: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task status: %w", err)
	}
	s.IsTerminal = intToBool(terminalInt)
	return &s, nil
}

func (r *SQLiteStatusRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.TaskStatus, error) {
	query := `SELECT id, project_id, name, position, is_terminal
		FROM task_statuses WHERE project_id = ? ORDER BY position, name`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing task statuses: %w", err)
	}
	defer rows.Close()

	var statuses []*domain.TaskStatus
	for rows.Next() {
		var s domain.TaskStatus
		var terminalInt int
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Name, &s.Position, &terminalInt); err != nil {
			return nil, fmt.Errorf("scanning task status row: %w", err)
		}
		s.IsTerminal = intToBool(terminalInt)
		statuses = append(statuses, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task statuses: %w", err)
	}
	return statuses, nil
}

func (r *SQLiteStatusRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM task_statuses WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting task status: %w", err)
	}
	return nil
}
