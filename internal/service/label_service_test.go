package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/trellis/internal/domain"
)

func TestLabels_AttachAndDetach(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Website")
	ctx := context.Background()

	task := seedTask(t, env, proj.ID, columns[0].ID, "Task")
	label := &domain.Label{ProjectID: proj.ID, Name: "bug", Color: "#d73a4a"}
	require.NoError(t, env.labelSvc.Create(ctx, label))

	require.NoError(t, env.taskSvc.AttachLabel(ctx, task.ID, label.ID))
	// Attaching twice is harmless.
	require.NoError(t, env.taskSvc.AttachLabel(ctx, task.ID, label.ID))

	attached, err := env.labelSvc.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, attached, 1)
	assert.Equal(t, "bug", attached[0].Name)

	require.NoError(t, env.taskSvc.DetachLabel(ctx, task.ID, label.ID))
	attached, err = env.labelSvc.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, attached)
}

func TestAttachLabel_RejectsCrossProject(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Website")
	other, _ := seedBoard(t, env, "Other")
	ctx := context.Background()

	task := seedTask(t, env, proj.ID, columns[0].ID, "Task")
	label := &domain.Label{ProjectID: other.ID, Name: "bug"}
	require.NoError(t, env.labelSvc.Create(ctx, label))

	err := env.taskSvc.AttachLabel(ctx, task.ID, label.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLabelCreate_RejectsEmptyName(t *testing.T) {
	env := newTestEnv(t)
	proj, _ := seedBoard(t, env, "Website")

	err := env.labelSvc.Create(context.Background(), &domain.Label{ProjectID: proj.ID, Name: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
