package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/trellis/internal/domain"
	"github.com/alexanderramin/trellis/internal/testutil"
)

func seedTwoTasks(t *testing.T, tasks *SQLiteTaskRepo, projects *SQLiteProjectRepo, statuses *SQLiteStatusRepo) (*domain.Task, *domain.Task) {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject("Dep Test")
	require.NoError(t, projects.Create(ctx, proj))
	status := testutil.NewTestStatus(proj.ID, "To Do")
	require.NoError(t, statuses.Create(ctx, status))

	a := testutil.NewTestTask(proj.ID, status.ID, "a")
	b := testutil.NewTestTask(proj.ID, status.ID, "b")
	require.NoError(t, tasks.Create(ctx, a))
	require.NoError(t, tasks.Create(ctx, b))
	return a, b
}

func TestDependencyRepo_CreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	statuses := NewSQLiteStatusRepo(db)
	tasks := NewSQLiteTaskRepo(db)
	deps := NewSQLiteDependencyRepo(db)

	a, b := seedTwoTasks(t, tasks, projects, statuses)

	dep := testutil.NewTestDependency(b.ID, a.ID)
	require.NoError(t, deps.Create(ctx, dep))

	blockedBy, err := deps.ListBlockedBy(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, blockedBy, 1)
	assert.Equal(t, a.ID, blockedBy[0].BlockingTaskID)

	blocking, err := deps.ListBlocking(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, blocking, 1)
	assert.Equal(t, b.ID, blocking[0].BlockedTaskID)

	all, err := deps.ListByProject(ctx, a.ProjectID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDependencyRepo_UniquePair(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	statuses := NewSQLiteStatusRepo(db)
	tasks := NewSQLiteTaskRepo(db)
	deps := NewSQLiteDependencyRepo(db)

	a, b := seedTwoTasks(t, tasks, projects, statuses)

	require.NoError(t, deps.Create(ctx, testutil.NewTestDependency(b.ID, a.ID)))
	err := deps.Create(ctx, testutil.NewTestDependency(b.ID, a.ID))
	assert.Error(t, err, "duplicate ordered pair violates the schema")
}

func TestDependencyRepo_DeleteTouching(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	statuses := NewSQLiteStatusRepo(db)
	tasks := NewSQLiteTaskRepo(db)
	deps := NewSQLiteDependencyRepo(db)

	a, b := seedTwoTasks(t, tasks, projects, statuses)
	c := testutil.NewTestTask(a.ProjectID, a.StatusID, "c")
	require.NoError(t, tasks.Create(ctx, c))

	// b blocked by a, c blocked by b: both edges touch b.
	require.NoError(t, deps.Create(ctx, testutil.NewTestDependency(b.ID, a.ID)))
	require.NoError(t, deps.Create(ctx, testutil.NewTestDependency(c.ID, b.ID)))

	require.NoError(t, deps.DeleteTouching(ctx, b.ID))

	all, err := deps.ListByProject(ctx, a.ProjectID)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDependencyRepo_CascadeOnTaskDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	statuses := NewSQLiteStatusRepo(db)
	tasks := NewSQLiteTaskRepo(db)
	deps := NewSQLiteDependencyRepo(db)

	a, b := seedTwoTasks(t, tasks, projects, statuses)
	require.NoError(t, deps.Create(ctx, testutil.NewTestDependency(b.ID, a.ID)))

	require.NoError(t, tasks.Delete(ctx, a.ID))

	all, err := deps.ListByProject(ctx, b.ProjectID)
	require.NoError(t, err)
	assert.Empty(t, all, "edges follow their endpoints")
}

func TestTaskRepo_SubtaskCascadeOnParentDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	statuses := NewSQLiteStatusRepo(db)
	tasks := NewSQLiteTaskRepo(db)

	parent, _ := seedTwoTasks(t, tasks, projects, statuses)
	sub := testutil.NewTestTask(parent.ProjectID, parent.StatusID, "sub", testutil.WithParentTask(parent.ID))
	require.NoError(t, tasks.Create(ctx, sub))

	require.NoError(t, tasks.Delete(ctx, parent.ID))

	_, err := tasks.GetByID(ctx, sub.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
