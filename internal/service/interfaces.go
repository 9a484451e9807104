package service

import (
	"context"

	"github.com/alexanderramin/trellis/internal/domain"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, projectID, userID string) error
	RemoveMember(ctx context.Context, projectID, userID string) error
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
}

type StatusService interface {
	Create(ctx context.Context, s *domain.TaskStatus) error
	GetByID(ctx context.Context, id string) (*domain.TaskStatus, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.TaskStatus, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	ListByColumn(ctx context.Context, statusID string) ([]*domain.Task, error)
	ListSubtasks(ctx context.Context, parentTaskID string) ([]*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	// ChangeStatus moves a task to another column. With a nil rank the task
	// is placed after every task already there; otherwise it lands at the
	// position the requested rank implies, as in Reorder.
	ChangeStatus(ctx context.Context, id, statusID string, requestedRank *float64) (*domain.Task, error)
	// Reorder moves a task within its column to the position implied by the
	// requested rank. The stored rank is recomputed from the neighbors, so
	// it may differ from the requested value.
	Reorder(ctx context.Context, id string, requestedRank float64) (*domain.Task, error)
	Delete(ctx context.Context, id string) error

	AddDependency(ctx context.Context, blockedTaskID, blockingTaskID string) (*domain.Dependency, error)
	RemoveDependency(ctx context.Context, blockedTaskID, blockingTaskID string) error
	// BlockedBy returns the tasks that block taskID.
	BlockedBy(ctx context.Context, taskID string) ([]*domain.Task, error)
	// Blocking returns the tasks that taskID blocks.
	Blocking(ctx context.Context, taskID string) ([]*domain.Task, error)

	AttachLabel(ctx context.Context, taskID, labelID string) error
	DetachLabel(ctx context.Context, taskID, labelID string) error
}

// BulkResult holds the outcome of an atomic multi-task operation.
type BulkResult struct {
	Operation domain.BulkOperation
	Count     int
}

type BulkService interface {
	// MoveTasks moves every listed task to the target column in input order.
	// All tasks move or none do.
	MoveTasks(ctx context.Context, taskIDs []string, statusID string) (*BulkResult, error)
	// DeleteTasks deletes every listed task, including subtasks and
	// dependency edges. All tasks go or none do.
	DeleteTasks(ctx context.Context, taskIDs []string) (*BulkResult, error)
}

type LabelService interface {
	Create(ctx context.Context, l *domain.Label) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Label, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.Label, error)
	Delete(ctx context.Context, id string) error
}
