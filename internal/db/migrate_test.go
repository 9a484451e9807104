package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time — should succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"projects", "project_members", "task_statuses", "tasks", "task_dependencies", "labels", "task_labels"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_task_statuses_project",
		"idx_tasks_project",
		"idx_tasks_column",
		"idx_tasks_parent",
		"idx_dependencies_blocked",
		"idx_dependencies_blocking",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_TasksPriorityCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO projects (id, name, created_at, updated_at)
		VALUES ('p1', 'Test', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO task_statuses (id, project_id, name) VALUES ('s1', 'p1', 'Todo')`)
	require.NoError(t, err)

	// Invalid priority should fail.
	_, err = db.Exec(`INSERT INTO tasks (id, project_id, status_id, title, priority, created_at, updated_at)
		VALUES ('t1', 'p1', 's1', 'Task', 'INVALID', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "invalid priority should be rejected by CHECK constraint")

	// Valid priority should succeed.
	_, err = db.Exec(`INSERT INTO tasks (id, project_id, status_id, title, priority, created_at, updated_at)
		VALUES ('t1', 'p1', 's1', 'Task', 'high', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_DependenciesUniquePair(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO projects (id, name, created_at, updated_at)
		VALUES ('p1', 'Test', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO task_statuses (id, project_id, name) VALUES ('s1', 'p1', 'Todo')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tasks (id, project_id, status_id, title, created_at, updated_at)
		VALUES ('t1', 'p1', 's1', 'Task 1', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tasks (id, project_id, status_id, title, created_at, updated_at)
		VALUES ('t2', 'p1', 's1', 'Task 2', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO task_dependencies (id, blocked_task_id, blocking_task_id, created_at)
		VALUES ('d1', 't1', 't2', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO task_dependencies (id, blocked_task_id, blocking_task_id, created_at)
		VALUES ('d2', 't1', 't2', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "duplicate ordered pair should violate unique constraint")

	// The reverse pair is a different ordered pair as far as the schema is
	// concerned; cycle rejection is the graph validator's job, not the DB's.
	_, err = db.Exec(`INSERT INTO task_dependencies (id, blocked_task_id, blocking_task_id, created_at)
		VALUES ('d3', 't2', 't1', '2026-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_TaskStatusForeignKey(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO projects (id, name, created_at, updated_at)
		VALUES ('p1', 'Test', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO tasks (id, project_id, status_id, title, created_at, updated_at)
		VALUES ('t1', 'p1', 'missing-status', 'Task', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "task with nonexistent status should fail FK constraint")
}
