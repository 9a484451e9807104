package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/trellis/internal/domain"
)

// Project options
type ProjectOption func(*domain.Project)

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Status options
type StatusOption func(*domain.TaskStatus)

func WithPosition(pos int) StatusOption {
	return func(s *domain.TaskStatus) {
		s.Position = pos
	}
}

func WithTerminal() StatusOption {
	return func(s *domain.TaskStatus) {
		s.IsTerminal = true
	}
}

func NewTestStatus(projectID, name string, opts ...StatusOption) *domain.TaskStatus {
	s := &domain.TaskStatus{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Task options
type TaskOption func(*domain.Task)

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithAssignee(userID string) TaskOption {
	return func(t *domain.Task) {
		t.AssigneeID = &userID
	}
}

func WithDescription(desc string) TaskOption {
	return func(t *domain.Task) {
		t.Description = desc
	}
}

func WithStartDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = &d
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithSortRank(r float64) TaskOption {
	return func(t *domain.Task) {
		t.SortRank = r
	}
}

func WithParentTask(id string) TaskOption {
	return func(t *domain.Task) {
		t.ParentTaskID = &id
	}
}

func WithCreatedAt(ts time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = ts
		t.UpdatedAt = ts
	}
}

func NewTestTask(projectID, statusID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		StatusID:  statusID,
		Title:     title,
		Priority:  domain.PriorityNone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestDependency(blockedTaskID, blockingTaskID string) *domain.Dependency {
	return &domain.Dependency{
		ID:             uuid.New().String(),
		BlockedTaskID:  blockedTaskID,
		BlockingTaskID: blockingTaskID,
		CreatedAt:      time.Now().UTC(),
	}
}

func NewTestLabel(projectID, name, color string) *domain.Label {
	return &domain.Label{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Color:     color,
	}
}
