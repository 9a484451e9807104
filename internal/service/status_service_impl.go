package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/trellis/internal/db"
	"github.com/alexanderramin/trellis/internal/domain"
	"github.com/alexanderramin/trellis/internal/repository"
)

type statusService struct {
	statuses repository.StatusRepo
	projects repository.ProjectRepo
	uow      db.UnitOfWork
}

func NewStatusService(statuses repository.StatusRepo, projects repository.ProjectRepo, uow db.UnitOfWork) StatusService {
	return &statusService{statuses: statuses, projects: projects, uow: uow}
}

func (s *statusService) Create(ctx context.Context, status *domain.TaskStatus) error {
	if strings.TrimSpace(status.Name) == "" {
		return fmt.Errorf("status name must not be empty: %w", domain.ErrValidation)
	}
	if status.ID == "" {
		status.ID = uuid.New().String()
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStatuses := repository.NewSQLiteStatusRepo(tx)
		txProjects := repository.NewSQLiteProjectRepo(tx)

		if _, err := txProjects.GetByID(ctx, status.ProjectID); err != nil {
			return fmt.Errorf("project: %w", err)
		}
		existing, err := txStatuses.ListByProject(ctx, status.ProjectID)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if strings.EqualFold(e.Name, status.Name) {
				return fmt.Errorf("status %q already exists: %w", status.Name, domain.ErrValidation)
			}
		}
		// New columns go to the right edge of the board.
		status.Position = len(existing)
		return txStatuses.Create(ctx, status)
	})
	return classify("creating status", err)
}

func (s *statusService) GetByID(ctx context.Context, id string) (*domain.TaskStatus, error) {
	status, err := s.statuses.GetByID(ctx, id)
	if err != nil {
		return nil, classify("loading status", err)
	}
	return status, nil
}

func (s *statusService) ListByProject(ctx context.Context, projectID string) ([]*domain.TaskStatus, error) {
	statuses, err := s.statuses.ListByProject(ctx, projectID)
	if err != nil {
		return nil, classify("listing statuses", err)
	}
	return statuses, nil
}

func (s *statusService) Delete(ctx context.Context, id string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStatuses := repository.NewSQLiteStatusRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		if _, err := txStatuses.GetByID(ctx, id); err != nil {
			return err
		}
		tasks, err := txTasks.ListByColumn(ctx, id)
		if err != nil {
			return err
		}
		if len(tasks) > 0 {
			return fmt.Errorf("column still holds %d tasks: %w", len(tasks), domain.ErrValidation)
		}
		return txStatuses.Delete(ctx, id)
	})
	return classify("deleting status", err)
}
