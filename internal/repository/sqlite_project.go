package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/trellis/internal/db"
	"github.com/alexanderramin/trellis/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo over a DBTX connection.
type SQLiteProjectRepo struct {
	conn db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{conn: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		p.ID, p.Name, p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT id, name, created_at, updated_at FROM projects WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	var p domain.Project
	var createdAtStr, updatedAtStr string
	if err := row.Scan(&p.ID, &p.Name, &createdAtStr, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT id, name, created_at, updated_at FROM projects ORDER BY created_at, id`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&p.ID, &p.Name, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) AddMember(ctx context.Context, projectID, userID string) error {
	query := `INSERT OR IGNORE INTO project_members (project_id, user_id) VALUES (?, ?)`
	_, err := r.conn.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("adding project member: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) RemoveMember(ctx context.Context, projectID, userID string) error {
	query := `DELETE FROM project_members WHERE project_id = ? AND user_id = ?`
	_, err := r.conn.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("removing project member: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	query := `SELECT COUNT(*) FROM project_members WHERE project_id = ? AND user_id = ?`
	var count int
	if err := r.conn.QueryRowContext(ctx, query, projectID, userID).Scan(&count); err != nil {
		return false, fmt.Errorf("checking project membership: %w", err)
	}
	return count > 0, nil
}
