package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/trellis/internal/db"
	"github.com/alexanderramin/trellis/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo over a DBTX connection.
type SQLiteDependencyRepo struct {
	conn db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{conn: conn}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	query := `INSERT INTO task_dependencies (id, blocked_task_id, blocking_task_id, created_at)
		VALUES (?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		d.ID, d.BlockedTaskID, d.BlockingTaskID, d.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) GetByID(ctx context.Context, id string) (*domain.Dependency, error) {
	query := `SELECT id, blocked_task_id, blocking_task_id, created_at
		FROM task_dependencies WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	var d domain.Dependency
	var createdAtStr string
	if err := row.Scan(&d.ID, &d.BlockedTaskID, &d.BlockingTaskID, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("dependency: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning dependency: %w", err)
	}
	var parseErr error
	d.CreatedAt, parseErr = time.Parse(time.RFC3339Nano, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return &d, nil
}

func (r *SQLiteDependencyRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error) {
	query := `SELECT d.id, d.blocked_task_id, d.blocking_task_id, d.created_at
		FROM task_dependencies d
		JOIN tasks t ON d.blocked_task_id = t.id
		WHERE t.project_id = ?`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project dependencies: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) ListBlockedBy(ctx context.Context, taskID string) ([]domain.Dependency, error) {
	query := `SELECT id, blocked_task_id, blocking_task_id, created_at
		FROM task_dependencies WHERE blocked_task_id = ?`
	rows, err := r.conn.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing blocked-by edges: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) ListBlocking(ctx context.Context, taskID string) ([]domain.Dependency, error) {
	query := `SELECT id, blocked_task_id, blocking_task_id, created_at
		FROM task_dependencies WHERE blocking_task_id = ?`
	rows, err := r.conn.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing blocking edges: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM task_dependencies WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) DeleteTouching(ctx context.Context, taskID string) error {
	query := `DELETE FROM task_dependencies WHERE blocked_task_id = ? OR blocking_task_id = ?`
	_, err := r.conn.ExecContext(ctx, query, taskID, taskID)
	if err != nil {
		return fmt.Errorf("deleting dependencies touching task: %w", err)
	}
	return nil
}

// scanDependencies scans multiple dependency rows from *sql.Rows.
func (r *SQLiteDependencyRepo) scanDependencies(rows *sql.Rows) ([]domain.Dependency, error) {
	var deps []domain.Dependency
	for rows.Next() {
		var d domain.Dependency
		var createdAtStr string
		if err := rows.Scan(&d.ID, &d.BlockedTaskID, &d.BlockingTaskID, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		var parseErr error
		d.CreatedAt, parseErr = time.Parse(time.RFC3339Nano, createdAtStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing created_at: %w", parseErr)
		}
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}
