package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/trellis/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, projectID, userID string) error
	RemoveMember(ctx context.Context, projectID, userID string) error
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
}

type StatusRepo interface {
	Create(ctx context.Context, s *domain.TaskStatus) error
	GetByID(ctx context.Context, id string) (*domain.TaskStatus, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.TaskStatus, error)
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	// ListByColumn returns the tasks of one status column in display order:
	// sort rank ascending, ties broken by creation time then ID.
	ListByColumn(ctx context.Context, statusID string) ([]*domain.Task, error)
	ListByIDs(ctx context.Context, projectID string, ids []string) ([]*domain.Task, error)
	ListSubtasks(ctx context.Context, parentTaskID string) ([]*domain.Task, error)
	// MaxRankInColumn returns the highest sort rank in a column, or nil if
	// the column is empty. excludeTaskID (may be "") leaves one task out,
	// so a moving task does not count against its own placement.
	MaxRankInColumn(ctx context.Context, statusID, excludeTaskID string) (*float64, error)
	Update(ctx context.Context, t *domain.Task) error
	// UpdatePlacement writes status and rank in one statement.
	UpdatePlacement(ctx context.Context, id, statusID string, rank float64, updatedAt time.Time) error
	UpdateRank(ctx context.Context, id string, rank float64, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	GetByID(ctx context.Context, id string) (*domain.Dependency, error)
	// ListByProject returns every edge whose endpoints live in the project.
	ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error)
	// ListBlockedBy returns edges where taskID is the blocked endpoint.
	ListBlockedBy(ctx context.Context, taskID string) ([]domain.Dependency, error)
	// ListBlocking returns edges where taskID is the blocking endpoint.
	ListBlocking(ctx context.Context, taskID string) ([]domain.Dependency, error)
	Delete(ctx context.Context, id string) error
	// DeleteTouching removes every edge with taskID on either side.
	DeleteTouching(ctx context.Context, taskID string) error
}

type LabelRepo interface {
	Create(ctx context.Context, l *domain.Label) error
	GetByID(ctx context.Context, id string) (*domain.Label, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Label, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.Label, error)
	Attach(ctx context.Context, taskID, labelID string) error
	Detach(ctx context.Context, taskID, labelID string) error
	Delete(ctx context.Context, id string) error
}
