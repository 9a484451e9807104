package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/trellis/internal/domain"
	"github.com/alexanderramin/trellis/internal/testutil"
)

func TestEvents_OnePerCommittedMutation(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Launch")
	todo, doing := columns[0], columns[1]
	ctx := context.Background()

	a := seedTask(t, env, proj.ID, todo.ID, "A")
	b := seedTask(t, env, proj.ID, todo.ID, "B")
	env.published.Reset()

	title := "A2"
	_, err := env.taskSvc.Update(ctx, a.ID, domain.TaskPatch{Title: &title})
	require.NoError(t, err)

	_, err = env.taskSvc.ChangeStatus(ctx, a.ID, doing.ID, nil)
	require.NoError(t, err)

	_, err = env.taskSvc.Reorder(ctx, b.ID, 100)
	require.NoError(t, err)

	_, err = env.taskSvc.AddDependency(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.NoError(t, env.taskSvc.RemoveDependency(ctx, a.ID, b.ID))

	require.NoError(t, env.taskSvc.Delete(ctx, b.ID))

	assert.Equal(t, []domain.EventKind{
		domain.EventTaskUpdated,
		domain.EventTaskMoved,
		domain.EventTaskReordered,
		domain.EventDependencyAdded,
		domain.EventDependencyRemoved,
		domain.EventTaskDeleted,
	}, env.published.Kinds())

	for _, e := range env.published.Events() {
		assert.Equal(t, proj.ID, e.ProjectID)
	}
}

func TestEvents_CreateCarriesTaskAndProject(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Launch")

	task := seedTask(t, env, proj.ID, columns[0].ID, "A")

	events := env.published.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTaskCreated, events[0].Kind)
	assert.Equal(t, task.ID, events[0].TaskID)
	assert.Equal(t, proj.ID, events[0].ProjectID)
}

func TestEvents_BulkMoveEmitsOnePerTask(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Launch")
	ctx := context.Background()

	a := seedTask(t, env, proj.ID, columns[0].ID, "A")
	b := seedTask(t, env, proj.ID, columns[0].ID, "B")
	env.published.Reset()

	_, err := env.bulkSvc.MoveTasks(ctx, []string{a.ID, b.ID}, columns[1].ID)
	require.NoError(t, err)

	events := env.published.Events()
	require.Len(t, events, 2)
	assert.Equal(t, a.ID, events[0].TaskID)
	assert.Equal(t, b.ID, events[1].TaskID)
	for _, e := range events {
		assert.Equal(t, domain.EventTaskMoved, e.Kind)
	}
}

func TestEvents_NoneOnRolledBackCreate(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Launch")
	ctx := context.Background()

	failUoW := &testutil.FailOnNthExecUoW{
		DB:     env.database,
		FailOn: 1,
		Err:    fmt.Errorf("injected insert failure"),
	}
	svc := NewTaskService(env.taskRepo, env.statuses, env.projects, env.deps, env.labels, failUoW, env.published)

	env.published.Reset()
	task := &domain.Task{ProjectID: proj.ID, StatusID: columns[0].ID, Title: "Doomed"}
	err := svc.Create(ctx, task)
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
	assert.Empty(t, env.published.Events())

	tasks, err := env.taskSvc.ListByColumn(ctx, columns[0].ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestEvents_NoneOnRejectedMutation(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Launch")
	ctx := context.Background()

	task := seedTask(t, env, proj.ID, columns[0].ID, "A")
	env.published.Reset()

	_, err := env.taskSvc.ChangeStatus(ctx, task.ID, "no-such-column", nil)
	require.Error(t, err)
	assert.Empty(t, env.published.Events())
}

func TestLogPublisher_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(&buf)
	p.Publish(context.Background(), domain.Event{
		ProjectID: "proj-1",
		TaskID:    "task-1",
		Kind:      domain.EventTaskMoved,
	})
	out := buf.String()
	assert.Contains(t, out, "task_event")
	assert.Contains(t, out, "kind=task_moved")
	assert.Contains(t, out, "project_id=proj-1")
	assert.Contains(t, out, "task_id=task-1")
}

func TestLogPublisher_NilWriterIsNoop(t *testing.T) {
	p := NewLogPublisher(nil)
	assert.IsType(t, NoopPublisher{}, p)
}
