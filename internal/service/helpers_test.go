package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/trellis/internal/db"
	"github.com/alexanderramin/trellis/internal/domain"
	"github.com/alexanderramin/trellis/internal/repository"
	"github.com/alexanderramin/trellis/internal/testutil"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) Events() []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Event, len(p.events))
	copy(out, p.events)
	return out
}

func (p *recordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

func (p *recordingPublisher) Kinds() []domain.EventKind {
	kinds := make([]domain.EventKind, 0)
	for _, e := range p.Events() {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

type testEnv struct {
	database  *sql.DB
	uow       db.UnitOfWork
	projects  *repository.SQLiteProjectRepo
	statuses  *repository.SQLiteStatusRepo
	taskRepo  *repository.SQLiteTaskRepo
	deps      *repository.SQLiteDependencyRepo
	labels    *repository.SQLiteLabelRepo
	published *recordingPublisher

	projectSvc ProjectService
	statusSvc  StatusService
	taskSvc    TaskService
	bulkSvc    BulkService
	labelSvc   LabelService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	env := &testEnv{
		database:  database,
		uow:       uow,
		projects:  repository.NewSQLiteProjectRepo(database),
		statuses:  repository.NewSQLiteStatusRepo(database),
		taskRepo:  repository.NewSQLiteTaskRepo(database),
		deps:      repository.NewSQLiteDependencyRepo(database),
		labels:    repository.NewSQLiteLabelRepo(database),
		published: &recordingPublisher{},
	}
	env.projectSvc = NewProjectService(env.projects, uow)
	env.statusSvc = NewStatusService(env.statuses, env.projects, uow)
	env.taskSvc = NewTaskService(env.taskRepo, env.statuses, env.projects, env.deps, env.labels, uow, env.published)
	env.bulkSvc = NewBulkService(uow, env.published)
	env.labelSvc = NewLabelService(env.labels, env.projects)
	return env
}

// seedBoard creates a project with the default three columns and returns the
// project plus its columns in board order.
func seedBoard(t *testing.T, env *testEnv, name string) (*domain.Project, []*domain.TaskStatus) {
	t.Helper()
	ctx := context.Background()
	proj := &domain.Project{Name: name}
	require.NoError(t, env.projectSvc.Create(ctx, proj))
	columns, err := env.statusSvc.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	return proj, columns
}

// seedTask creates a task through the service so rank assignment applies.
func seedTask(t *testing.T, env *testEnv, projectID, statusID, title string) *domain.Task {
	t.Helper()
	task := &domain.Task{ProjectID: projectID, StatusID: statusID, Title: title}
	require.NoError(t, env.taskSvc.Create(context.Background(), task))
	return task
}
