package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/trellis/internal/db"
	"github.com/alexanderramin/trellis/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, project_id, status_id, title, description, assignee_id,
		priority, start_date, due_date, sort_rank, parent_task_id, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo over a DBTX connection.
type SQLiteTaskRepo struct {
	conn db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{conn: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.StatusID,
		t.Title,
		t.Description,
		nullableStrToValue(t.AssigneeID),
		string(t.Priority),
		nullableTimeToString(t.StartDate, dateLayout),
		nullableTimeToString(t.DueDate, dateLayout),
		t.SortRank,
		nullableStrToValue(t.ParentTaskID),
		t.CreatedAt.Format(time.RFC3339Nano),
		t.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return r.scanTask(row)
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY created_at, id`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by project: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListByColumn(ctx context.Context, statusID string) ([]*domain.Task, error) {
	// Ties on sort_rank should not survive a rebalance, but when they occur
	// the display order stays deterministic: creation time, then ID.
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status_id = ?
		ORDER BY sort_rank, created_at, id`
	rows, err := r.conn.QueryContext(ctx, query, statusID)
	if err != nil {
		return nil, fmt.Errorf("listing column tasks: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListByIDs(ctx context.Context, projectID string, ids []string) ([]*domain.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE project_id = ? AND id IN (` + placeholders + `)`
	args := make([]any, 0, len(ids)+1)
	args = append(args, projectID)
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by ids: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListSubtasks(ctx context.Context, parentTaskID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE parent_task_id = ? ORDER BY created_at, id`
	rows, err := r.conn.QueryContext(ctx, query, parentTaskID)
	if err != nil {
		return nil, fmt.Errorf("listing subtasks: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) MaxRankInColumn(ctx context.Context, statusID, excludeTaskID string) (*float64, error) {
	query := `SELECT MAX(sort_rank) FROM tasks WHERE status_id = ? AND id != ?`
	var max sql.NullFloat64
	if err := r.conn.QueryRowContext(ctx, query, statusID, excludeTaskID).Scan(&max); err != nil {
		return nil, fmt.Errorf("reading max column rank: %w", err)
	}
	if !max.Valid {
		return nil, nil
	}
	v := max.Float64
	return &v, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET project_id = ?, status_id = ?, title = ?, description = ?,
		assignee_id = ?, priority = ?, start_date = ?, due_date = ?, sort_rank = ?,
		parent_task_id = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		t.ProjectID,
		t.StatusID,
		t.Title,
		t.Description,
		nullableStrToValue(t.AssigneeID),
		string(t.Priority),
		nullableTimeToString(t.StartDate, dateLayout),
		nullableTimeToString(t.DueDate, dateLayout),
		t.SortRank,
		nullableStrToValue(t.ParentTaskID),
		t.UpdatedAt.Format(time.RFC3339Nano),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) UpdatePlacement(ctx context.Context, id, statusID string, rank float64, updatedAt time.Time) error {
	query := `UPDATE tasks SET status_id = ?, sort_rank = ?, updated_at = ? WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, statusID, rank, updatedAt.Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("updating task placement: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) UpdateRank(ctx context.Context, id string, rank float64, updatedAt time.Time) error {
	query := `UPDATE tasks SET sort_rank = ?, updated_at = ? WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, rank, updatedAt.Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("updating task rank: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// scanTask scans a single task from a *sql.Row.
func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var priorityStr, createdAtStr, updatedAtStr string
	var assigneeStr, startDateStr, dueDateStr, parentStr sql.NullString

	err := row.Scan(
		&t.ID, &t.ProjectID, &t.StatusID, &t.Title, &t.Description, &assigneeStr,
		&priorityStr, &startDateStr, &dueDateStr, &t.SortRank, &parentStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return r.populateTask(&t, priorityStr, assigneeStr, startDateStr, dueDateStr, parentStr, createdAtStr, updatedAtStr)
}

// scanTasks scans multiple tasks from *sql.Rows.
func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var priorityStr, createdAtStr, updatedAtStr string
		var assigneeStr, startDateStr, dueDateStr, parentStr sql.NullString

		err := rows.Scan(
			&t.ID, &t.ProjectID, &t.StatusID, &t.Title, &t.Description, &assigneeStr,
			&priorityStr, &startDateStr, &dueDateStr, &t.SortRank, &parentStr,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}

		task, err := r.populateTask(&t, priorityStr, assigneeStr, startDateStr, dueDateStr, parentStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// populateTask fills in parsed fields on a Task after scanning raw values.
func (r *SQLiteTaskRepo) populateTask(
	t *domain.Task,
	priorityStr string,
	assigneeStr, startDateStr, dueDateStr, parentStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.Task, error) {
	t.Priority = domain.Priority(priorityStr)
	t.AssigneeID = nullStringToPtr(assigneeStr)
	t.ParentTaskID = nullStringToPtr(parentStr)
	t.StartDate = parseNullableTime(startDateStr, dateLayout)
	t.DueDate = parseNullableTime(dueDateStr, dateLayout)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339Nano, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339Nano, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return t, nil
}
