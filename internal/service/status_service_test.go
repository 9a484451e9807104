package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/trellis/internal/domain"
	"github.com/alexanderramin/trellis/internal/repository"
)

func TestStatusCreate_AppendsToBoard(t *testing.T) {
	env := newTestEnv(t)
	proj, _ := seedBoard(t, env, "Website")
	ctx := context.Background()

	status := &domain.TaskStatus{ProjectID: proj.ID, Name: "Review"}
	require.NoError(t, env.statusSvc.Create(ctx, status))
	assert.Equal(t, 3, status.Position)

	columns, err := env.statusSvc.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, columns, 4)
	assert.Equal(t, "Review", columns[3].Name)
}

func TestStatusCreate_RejectsDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	proj, _ := seedBoard(t, env, "Website")

	status := &domain.TaskStatus{ProjectID: proj.ID, Name: "done"}
	err := env.statusSvc.Create(context.Background(), status)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStatusCreate_RejectsUnknownProject(t *testing.T) {
	env := newTestEnv(t)

	status := &domain.TaskStatus{ProjectID: "no-such-project", Name: "Review"}
	err := env.statusSvc.Create(context.Background(), status)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStatusDelete_EmptyColumn(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Website")
	ctx := context.Background()

	require.NoError(t, env.statusSvc.Delete(ctx, columns[1].ID))

	remaining, err := env.statusSvc.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestStatusDelete_RefusesNonEmptyColumn(t *testing.T) {
	env := newTestEnv(t)
	proj, columns := seedBoard(t, env, "Website")
	ctx := context.Background()

	seedTask(t, env, proj.ID, columns[0].ID, "Occupant")

	err := env.statusSvc.Delete(ctx, columns[0].ID)
	assert.ErrorIs(t, err, domain.ErrValidation)

	remaining, err := env.statusSvc.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 3)
}
