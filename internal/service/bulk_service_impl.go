package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/trellis/internal/db"
	"github.com/alexanderramin/trellis/internal/domain"
	"github.com/alexanderramin/trellis/internal/ordering"
	"github.com/alexanderramin/trellis/internal/repository"
)

type bulkService struct {
	uow       db.UnitOfWork
	publisher Publisher
}

func NewBulkService(uow db.UnitOfWork, publisher Publisher) BulkService {
	return &bulkService{uow: uow, publisher: publisherOrNoop(publisher)}
}

func (s *bulkService) MoveTasks(ctx context.Context, taskIDs []string, statusID string) (*BulkResult, error) {
	ids := dedupe(taskIDs)
	if len(ids) == 0 {
		return &BulkResult{Operation: domain.BulkMove}, nil
	}

	var events []domain.Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txStatuses := repository.NewSQLiteStatusRepo(tx)

		status, err := txStatuses.GetByID(ctx, statusID)
		if err != nil {
			return fmt.Errorf("target status: %w", err)
		}
		tasks, err := resolveAll(ctx, txTasks, status.ProjectID, ids)
		if err != nil {
			return err
		}

		// One rank read up front, then in-memory bookkeeping: each moved
		// task lands after the previous one, preserving input order.
		max, err := txTasks.MaxRankInColumn(ctx, statusID, "")
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		for _, t := range tasks {
			rank := ordering.Append(max)
			max = &rank
			if err := txTasks.UpdatePlacement(ctx, t.ID, statusID, rank, now); err != nil {
				return err
			}
			events = append(events, domain.Event{ProjectID: t.ProjectID, TaskID: t.ID, Kind: domain.EventTaskMoved})
		}
		return nil
	})
	if err != nil {
		return nil, classify("bulk moving tasks", err)
	}
	publishAll(ctx, s.publisher, events)
	return &BulkResult{Operation: domain.BulkMove, Count: len(ids)}, nil
}

func (s *bulkService) DeleteTasks(ctx context.Context, taskIDs []string) (*BulkResult, error) {
	ids := dedupe(taskIDs)
	if len(ids) == 0 {
		return &BulkResult{Operation: domain.BulkDelete}, nil
	}

	var events []domain.Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		// Deletes are not column-scoped, so resolve each ID directly.
		var missing []string
		tasks := make([]*domain.Task, 0, len(ids))
		for _, id := range ids {
			t, err := txTasks.GetByID(ctx, id)
			if errors.Is(err, repository.ErrNotFound) {
				missing = append(missing, id)
				continue
			}
			if err != nil {
				return err
			}
			tasks = append(tasks, t)
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing tasks %s: %w", strings.Join(missing, ", "), domain.ErrPartialTaskSet)
		}

		deleted := make(map[string]bool, len(tasks))
		for _, t := range tasks {
			subtasks, err := txTasks.ListSubtasks(ctx, t.ID)
			if err != nil {
				return err
			}
			for _, st := range subtasks {
				if deleted[st.ID] {
					continue
				}
				if err := txDeps.DeleteTouching(ctx, st.ID); err != nil {
					return err
				}
				if err := txTasks.Delete(ctx, st.ID); err != nil {
					return err
				}
				deleted[st.ID] = true
			}
			if deleted[t.ID] {
				continue
			}
			if err := txDeps.DeleteTouching(ctx, t.ID); err != nil {
				return err
			}
			if err := txTasks.Delete(ctx, t.ID); err != nil {
				return err
			}
			deleted[t.ID] = true
			events = append(events, domain.Event{ProjectID: t.ProjectID, TaskID: t.ID, Kind: domain.EventTaskDeleted})
		}
		return nil
	})
	if err != nil {
		return nil, classify("bulk deleting tasks", err)
	}
	publishAll(ctx, s.publisher, events)
	return &BulkResult{Operation: domain.BulkDelete, Count: len(ids)}, nil
}

// resolveAll loads every requested task from one project and fails if any is
// missing, keeping the result in input order.
func resolveAll(ctx context.Context, tasks repository.TaskRepo, projectID string, ids []string) ([]*domain.Task, error) {
	found, err := tasks.ListByIDs(ctx, projectID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Task, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}
	if len(byID) != len(ids) {
		var missing []string
		for _, id := range ids {
			if byID[id] == nil {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("missing tasks %s: %w", strings.Join(missing, ", "), domain.ErrPartialTaskSet)
	}
	ordered := make([]*domain.Task, len(ids))
	for i, id := range ids {
		ordered[i] = byID[id]
	}
	return ordered, nil
}

// dedupe drops repeated IDs, keeping first occurrence order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
