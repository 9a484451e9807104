package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/trellis/internal/domain"
	"github.com/alexanderramin/trellis/internal/testutil"
)

func TestBulkMove_PreservesInputOrderAtTail(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Launch")
	todo, doing := columns[0], columns[1]
	ctx := context.Background()

	a := seedTask(t, env, proj.ID, todo.ID, "A")
	b := seedTask(t, env, proj.ID, todo.ID, "B")
	c := seedTask(t, env, proj.ID, todo.ID, "C")
	already := seedTask(t, env, proj.ID, doing.ID, "Already there")

	res, err := env.bulkSvc.MoveTasks(ctx, []string{c.ID, a.ID}, doing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BulkMove, res.Operation)
	assert.Equal(t, 2, res.Count)

	column, err := env.taskSvc.ListByColumn(ctx, doing.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{already.ID, c.ID, a.ID}, columnIDs(column))

	left, err := env.taskSvc.ListByColumn(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, columnIDs(left))
}

func TestBulkMove_DedupesIDs(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Launch")
	ctx := context.Background()

	a := seedTask(t, env, proj.ID, columns[0].ID, "A")
	res, err := env.bulkSvc.MoveTasks(ctx, []string{a.ID, a.ID, a.ID}, columns[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}

func TestBulkMove_MissingTaskMovesNothing(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Launch")
	todo, doing := columns[0], columns[1]
	ctx := context.Background()

	a := seedTask(t, env, proj.ID, todo.ID, "A")

	_, err := env.bulkSvc.MoveTasks(ctx, []string{a.ID, "no-such-task"}, doing.ID)
	assert.ErrorIs(t, err, domain.ErrPartialTaskSet)
	assert.Contains(t, err.Error(), "no-such-task")

	// The resolvable task stayed put.
	current, err := env.taskSvc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, current.StatusID)
}

func TestBulkMove_TaskFromOtherProjectMovesNothing(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Launch")
	other, otherColumns := seedBoard(t, env, "Other")
	ctx := context.Background()

	local := seedTask(t, env, proj.ID, columns[0].ID, "Local")
	foreign := seedTask(t, env, other.ID, otherColumns[0].ID, "Foreign")

	_, err := env.bulkSvc.MoveTasks(ctx, []string{local.ID, foreign.ID}, columns[1].ID)
	assert.ErrorIs(t, err, domain.ErrPartialTaskSet)

	current, err := env.taskSvc.GetByID(ctx, local.ID)
	require.NoError(t, err)
	assert.Equal(t, columns[0].ID, current.StatusID)
}

func TestBulkMove_EmptyInput(t *testing.T) {
	env := newTestEnv(t)
	_, columns := seedBoard(t, env, "Launch")

	res, err := env.bulkSvc.MoveTasks(context.Background(), nil, columns[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
}

func TestBulkDelete_RemovesAllWithCascade(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Launch")
	todo := columns[0]
	ctx := context.Background()

	a := seedTask(t, env, proj.ID, todo.ID, "A")
	b := seedTask(t, env, proj.ID, todo.ID, "B")
	sub := &domain.Task{ProjectID: proj.ID, StatusID: todo.ID, Title: "Sub of A", ParentTaskID: &a.ID}
	require.NoError(t, env.taskSvc.Create(ctx, sub))
	keeper := seedTask(t, env, proj.ID, todo.ID, "Keeper")
	_, err := env.taskSvc.AddDependency(ctx, keeper.ID, a.ID)
	require.NoError(t, err)

	res, err := env.bulkSvc.DeleteTasks(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.BulkDelete, res.Operation)
	assert.Equal(t, 2, res.Count)

	remaining, err := env.taskSvc.ListByColumn(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{keeper.ID}, columnIDs(remaining))

	blockers, err := env.taskSvc.BlockedBy(ctx, keeper.ID)
	require.NoError(t, err)
	assert.Empty(t, blockers)
}

func TestBulkDelete_MissingTaskDeletesNothing(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Launch")
	ctx := context.Background()

	a := seedTask(t, env, proj.ID, columns[0].ID, "A")

	_, err := env.bulkSvc.DeleteTasks(ctx, []string{"ghost", a.ID})
	assert.ErrorIs(t, err, domain.ErrPartialTaskSet)

	_, err = env.taskSvc.GetByID(ctx, a.ID)
	require.NoError(t, err)
}

func TestBulkDelete_RollsBackOnBackendFailure(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Launch")
	ctx := context.Background()

	a := seedTask(t, env, proj.ID, columns[0].ID, "A")
	b := seedTask(t, env, proj.ID, columns[0].ID, "B")

	// Per task: one dependency sweep, one delete. Fail the final delete so
	// the first task's removal must be undone.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     env.database,
		FailOn: 4,
		Err:    fmt.Errorf("injected delete failure"),
	}
	svc := NewBulkService(failUoW, env.published)

	env.published.Reset()
	_, err := svc.DeleteTasks(ctx, []string{a.ID, b.ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected delete failure")
	assert.True(t, IsRetryable(err))

	for _, id := range []string{a.ID, b.ID} {
		_, err := env.taskSvc.GetByID(ctx, id)
		require.NoError(t, err, "task should survive the rolled-back bulk delete")
	}
	assert.Empty(t, env.published.Events(), "no events for a rolled-back operation")
}
