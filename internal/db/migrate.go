package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_members (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		PRIMARY KEY (project_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS task_statuses (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		position    INTEGER NOT NULL DEFAULT 0,
		is_terminal INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_task_statuses_project ON task_statuses(project_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id             TEXT PRIMARY KEY,
		project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		status_id      TEXT NOT NULL REFERENCES task_statuses(id),
		title          TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		assignee_id    TEXT,
		priority       TEXT NOT NULL DEFAULT 'none'
		               CHECK(priority IN ('none','low','medium','high','urgent')),
		start_date     TEXT,
		due_date       TEXT,
		sort_rank      REAL NOT NULL DEFAULT 0,
		parent_task_id TEXT REFERENCES tasks(id) ON DELETE CASCADE,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_column ON tasks(status_id, sort_rank)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_task_id)`,

	`CREATE TABLE IF NOT EXISTS task_dependencies (
		id               TEXT PRIMARY KEY,
		blocked_task_id  TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		blocking_task_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		created_at       TEXT NOT NULL,
		UNIQUE (blocked_task_id, blocking_task_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_dependencies_blocked ON task_dependencies(blocked_task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_dependencies_blocking ON task_dependencies(blocking_task_id)`,

	`CREATE TABLE IF NOT EXISTS labels (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS task_labels (
		task_id  TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		label_id TEXT NOT NULL REFERENCES labels(id) ON DELETE CASCADE,
		PRIMARY KEY (task_id, label_id)
	)`,
}
