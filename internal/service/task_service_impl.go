package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/trellis/internal/db"
	"github.com/alexanderramin/trellis/internal/domain"
	"github.com/alexanderramin/trellis/internal/graph"
	"github.com/alexanderramin/trellis/internal/ordering"
	"github.com/alexanderramin/trellis/internal/repository"
	"github.com/alexanderramin/trellis/internal/workflow"
)

type taskService struct {
	tasks        repository.TaskRepo
	statuses     repository.StatusRepo
	projects     repository.ProjectRepo
	dependencies repository.DependencyRepo
	labels       repository.LabelRepo
	uow          db.UnitOfWork
	publisher    Publisher
}

func NewTaskService(
	tasks repository.TaskRepo,
	statuses repository.StatusRepo,
	projects repository.ProjectRepo,
	dependencies repository.DependencyRepo,
	labels repository.LabelRepo,
	uow db.UnitOfWork,
	publisher Publisher,
) TaskService {
	return &taskService{
		tasks:        tasks,
		statuses:     statuses,
		projects:     projects,
		dependencies: dependencies,
		labels:       labels,
		uow:          uow,
		publisher:    publisherOrNoop(publisher),
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if err := domain.ValidateTitle(t.Title); err != nil {
		return err
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityNone
	}
	if !domain.ValidPriorities[t.Priority] {
		return fmt.Errorf("priority %q: %w", t.Priority, domain.ErrValidation)
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	var events []domain.Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStatuses := repository.NewSQLiteStatusRepo(tx)
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		columns, err := txStatuses.ListByProject(ctx, t.ProjectID)
		if err != nil {
			return err
		}
		if err := workflow.ValidateTransition(derefStatuses(columns), t.StatusID); err != nil {
			return err
		}

		if t.AssigneeID != nil {
			member, err := txProjects.IsMember(ctx, t.ProjectID, *t.AssigneeID)
			if err != nil {
				return err
			}
			if !member {
				return fmt.Errorf("assignee %s is not a project member: %w", *t.AssigneeID, domain.ErrValidation)
			}
		}

		if t.ParentTaskID != nil {
			parent, err := txTasks.GetByID(ctx, *t.ParentTaskID)
			if err != nil {
				return fmt.Errorf("parent task: %w", err)
			}
			if parent.ProjectID != t.ProjectID {
				return fmt.Errorf("parent task belongs to another project: %w", domain.ErrValidation)
			}
			// Nesting is one level deep: a subtask cannot parent another.
			if parent.IsSubtask() {
				return fmt.Errorf("parent task is itself a subtask: %w", domain.ErrValidation)
			}
		}

		max, err := txTasks.MaxRankInColumn(ctx, t.StatusID, "")
		if err != nil {
			return err
		}
		t.SortRank = ordering.Append(max)

		if err := txTasks.Create(ctx, t); err != nil {
			return err
		}
		events = append(events, domain.Event{ProjectID: t.ProjectID, TaskID: t.ID, Kind: domain.EventTaskCreated})
		return nil
	})
	if err != nil {
		return classify("creating task", err)
	}
	publishAll(ctx, s.publisher, events)
	return nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, classify("loading task", err)
	}
	return t, nil
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, classify("listing tasks", err)
	}
	return tasks, nil
}

func (s *taskService) ListByColumn(ctx context.Context, statusID string) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByColumn(ctx, statusID)
	if err != nil {
		return nil, classify("listing column", err)
	}
	return tasks, nil
}

func (s *taskService) ListSubtasks(ctx context.Context, parentTaskID string) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListSubtasks(ctx, parentTaskID)
	if err != nil {
		return nil, classify("listing subtasks", err)
	}
	return tasks, nil
}

func (s *taskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil {
		if err := domain.ValidateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}
	if patch.Priority != nil && !domain.ValidPriorities[*patch.Priority] {
		return nil, fmt.Errorf("priority %q: %w", *patch.Priority, domain.ErrValidation)
	}

	var updated *domain.Task
	var events []domain.Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txProjects := repository.NewSQLiteProjectRepo(tx)

		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.Empty() {
			updated = t
			return nil
		}

		if patch.AssigneeID != nil && !patch.ClearAssignee {
			member, err := txProjects.IsMember(ctx, t.ProjectID, *patch.AssigneeID)
			if err != nil {
				return err
			}
			if !member {
				return fmt.Errorf("assignee %s is not a project member: %w", *patch.AssigneeID, domain.ErrValidation)
			}
		}

		patch.Apply(t)
		t.UpdatedAt = time.Now().UTC()
		if err := txTasks.Update(ctx, t); err != nil {
			return err
		}
		updated = t
		events = append(events, domain.Event{ProjectID: t.ProjectID, TaskID: t.ID, Kind: domain.EventTaskUpdated})
		return nil
	})
	if err != nil {
		return nil, classify("updating task", err)
	}
	publishAll(ctx, s.publisher, events)
	return updated, nil
}

func (s *taskService) ChangeStatus(ctx context.Context, id, statusID string, requestedRank *float64) (*domain.Task, error) {
	var moved *domain.Task
	var events []domain.Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txStatuses := repository.NewSQLiteStatusRepo(tx)

		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		columns, err := txStatuses.ListByProject(ctx, t.ProjectID)
		if err != nil {
			return err
		}
		if err := workflow.ValidateTransition(derefStatuses(columns), statusID); err != nil {
			return err
		}

		now := time.Now().UTC()
		var rank float64
		if requestedRank == nil {
			// The mover is excluded so re-entering its own column still
			// lands at the end.
			max, err := txTasks.MaxRankInColumn(ctx, statusID, t.ID)
			if err != nil {
				return err
			}
			rank = ordering.Append(max)
		} else {
			rank, err = placeInColumn(ctx, txTasks, statusID, t.ID, *requestedRank, now)
			if err != nil {
				return err
			}
		}
		t.StatusID = statusID
		t.SortRank = rank
		t.UpdatedAt = now
		if err := txTasks.UpdatePlacement(ctx, t.ID, t.StatusID, t.SortRank, t.UpdatedAt); err != nil {
			return err
		}
		moved = t
		events = append(events, domain.Event{ProjectID: t.ProjectID, TaskID: t.ID, Kind: domain.EventTaskMoved})
		return nil
	})
	if err != nil {
		return nil, classify("moving task", err)
	}
	publishAll(ctx, s.publisher, events)
	return moved, nil
}

func (s *taskService) Reorder(ctx context.Context, id string, requestedRank float64) (*domain.Task, error) {
	var reordered *domain.Task
	var events []domain.Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)

		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		rank, err := placeInColumn(ctx, txTasks, t.StatusID, t.ID, requestedRank, now)
		if err != nil {
			return err
		}

		t.SortRank = rank
		t.UpdatedAt = now
		if err := txTasks.UpdateRank(ctx, t.ID, t.SortRank, now); err != nil {
			return err
		}
		reordered = t
		events = append(events, domain.Event{ProjectID: t.ProjectID, TaskID: t.ID, Kind: domain.EventTaskReordered})
		return nil
	})
	if err != nil {
		return nil, classify("reordering task", err)
	}
	publishAll(ctx, s.publisher, events)
	return reordered, nil
}

// placeInColumn computes the stored rank for putting the mover at the
// position requestedRank asks for within statusID's column. The mover's own
// row is excluded so its current rank never influences its new position. On
// floating-point exhaustion the whole column is rewritten with evenly spaced
// integer ranks, mover included at its target slot.
func placeInColumn(ctx context.Context, txTasks *repository.SQLiteTaskRepo, statusID, moverID string, requestedRank float64, now time.Time) (float64, error) {
	column, err := txTasks.ListByColumn(ctx, statusID)
	if err != nil {
		return 0, err
	}
	others := make([]*domain.Task, 0, len(column))
	for _, c := range column {
		if c.ID != moverID {
			others = append(others, c)
		}
	}
	ranks := make([]float64, len(others))
	for i, c := range others {
		ranks[i] = c.SortRank
	}
	index := ordering.IndexForRank(ranks, requestedRank)

	rank, ok := ordering.RankForInsert(ranks, index)
	if !ok {
		fresh := ordering.Rebalanced(len(others) + 1)
		for i, c := range others {
			slot := i
			if i >= index {
				slot = i + 1
			}
			if err := txTasks.UpdateRank(ctx, c.ID, fresh[slot], now); err != nil {
				return 0, err
			}
		}
		rank = fresh[index]
	}
	return rank, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	var events []domain.Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		subtasks, err := txTasks.ListSubtasks(ctx, t.ID)
		if err != nil {
			return err
		}

		// Edges first, then children, then the task. The schema would
		// cascade these anyway; doing it explicitly keeps the deletes
		// visible in one place.
		for _, st := range subtasks {
			if err := txDeps.DeleteTouching(ctx, st.ID); err != nil {
				return err
			}
			if err := txTasks.Delete(ctx, st.ID); err != nil {
				return err
			}
		}
		if err := txDeps.DeleteTouching(ctx, t.ID); err != nil {
			return err
		}
		if err := txTasks.Delete(ctx, t.ID); err != nil {
			return err
		}
		events = append(events, domain.Event{ProjectID: t.ProjectID, TaskID: t.ID, Kind: domain.EventTaskDeleted})
		return nil
	})
	if err != nil {
		return classify("deleting task", err)
	}
	publishAll(ctx, s.publisher, events)
	return nil
}

func (s *taskService) AddDependency(ctx context.Context, blockedTaskID, blockingTaskID string) (*domain.Dependency, error) {
	if blockedTaskID == blockingTaskID {
		return nil, domain.ErrSelfDependency
	}

	dep := &domain.Dependency{
		ID:             uuid.New().String(),
		BlockedTaskID:  blockedTaskID,
		BlockingTaskID: blockingTaskID,
		CreatedAt:      time.Now().UTC(),
	}
	var events []domain.Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		blocked, err := txTasks.GetByID(ctx, blockedTaskID)
		if err != nil {
			return fmt.Errorf("blocked task: %w", err)
		}
		blocking, err := txTasks.GetByID(ctx, blockingTaskID)
		if err != nil {
			return fmt.Errorf("blocking task: %w", err)
		}
		if blocked.ProjectID != blocking.ProjectID {
			return fmt.Errorf("tasks %s and %s: %w", blockedTaskID, blockingTaskID, domain.ErrCrossProjectDependency)
		}

		edges, err := txDeps.ListByProject(ctx, blocked.ProjectID)
		if err != nil {
			return err
		}
		if err := graph.ValidateNewEdge(edges, blockedTaskID, blockingTaskID); err != nil {
			return err
		}

		if err := txDeps.Create(ctx, dep); err != nil {
			return err
		}
		events = append(events, domain.Event{ProjectID: blocked.ProjectID, TaskID: blockedTaskID, Kind: domain.EventDependencyAdded})
		return nil
	})
	if err != nil {
		return nil, classify("adding dependency", err)
	}
	publishAll(ctx, s.publisher, events)
	return dep, nil
}

func (s *taskService) RemoveDependency(ctx context.Context, blockedTaskID, blockingTaskID string) error {
	var events []domain.Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		blocked, err := txTasks.GetByID(ctx, blockedTaskID)
		if err != nil {
			return fmt.Errorf("blocked task: %w", err)
		}
		edges, err := txDeps.ListBlockedBy(ctx, blockedTaskID)
		if err != nil {
			return err
		}
		for _, e := range edges {
			if e.BlockingTaskID == blockingTaskID {
				if err := txDeps.Delete(ctx, e.ID); err != nil {
					return err
				}
				events = append(events, domain.Event{ProjectID: blocked.ProjectID, TaskID: blockedTaskID, Kind: domain.EventDependencyRemoved})
				return nil
			}
		}
		return fmt.Errorf("dependency %s <- %s: %w", blockedTaskID, blockingTaskID, repository.ErrNotFound)
	})
	if err != nil {
		return classify("removing dependency", err)
	}
	publishAll(ctx, s.publisher, events)
	return nil
}

func (s *taskService) BlockedBy(ctx context.Context, taskID string) ([]*domain.Task, error) {
	edges, err := s.dependencies.ListBlockedBy(ctx, taskID)
	if err != nil {
		return nil, classify("listing blockers", err)
	}
	ids := make([]string, len(edges))
	for i, e := range edges {
		ids[i] = e.BlockingTaskID
	}
	return s.loadTasks(ctx, ids)
}

func (s *taskService) Blocking(ctx context.Context, taskID string) ([]*domain.Task, error) {
	edges, err := s.dependencies.ListBlocking(ctx, taskID)
	if err != nil {
		return nil, classify("listing blocked tasks", err)
	}
	ids := make([]string, len(edges))
	for i, e := range edges {
		ids[i] = e.BlockedTaskID
	}
	return s.loadTasks(ctx, ids)
}

func (s *taskService) loadTasks(ctx context.Context, ids []string) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(ids))
	for _, id := range ids {
		t, err := s.tasks.GetByID(ctx, id)
		if err != nil {
			return nil, classify("loading task", err)
		}
		tasks = append(tasks, t)
	}
	ordering.SortForDisplay(tasks)
	return tasks, nil
}

func (s *taskService) AttachLabel(ctx context.Context, taskID, labelID string) error {
	var events []domain.Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txLabels := repository.NewSQLiteLabelRepo(tx)

		t, err := txTasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		l, err := txLabels.GetByID(ctx, labelID)
		if err != nil {
			return err
		}
		if l.ProjectID != t.ProjectID {
			return fmt.Errorf("label belongs to another project: %w", domain.ErrValidation)
		}
		if err := txLabels.Attach(ctx, taskID, labelID); err != nil {
			return err
		}
		events = append(events, domain.Event{ProjectID: t.ProjectID, TaskID: taskID, Kind: domain.EventLabelAttached})
		return nil
	})
	if err != nil {
		return classify("attaching label", err)
	}
	publishAll(ctx, s.publisher, events)
	return nil
}

func (s *taskService) DetachLabel(ctx context.Context, taskID, labelID string) error {
	var events []domain.Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txLabels := repository.NewSQLiteLabelRepo(tx)

		t, err := txTasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := txLabels.Detach(ctx, taskID, labelID); err != nil {
			return err
		}
		events = append(events, domain.Event{ProjectID: t.ProjectID, TaskID: taskID, Kind: domain.EventLabelDetached})
		return nil
	})
	if err != nil {
		return classify("detaching label", err)
	}
	publishAll(ctx, s.publisher, events)
	return nil
}

func derefStatuses(in []*domain.TaskStatus) []domain.TaskStatus {
	out := make([]domain.TaskStatus, len(in))
	for i, s := range in {
		out[i] = *s
	}
	return out
}
