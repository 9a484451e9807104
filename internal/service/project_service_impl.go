package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/trellis/internal/db"
	"github.com/alexanderramin/trellis/internal/domain"
	"github.com/alexanderramin/trellis/internal/repository"
)

// defaultColumns are seeded into every new project so a board is usable
// immediately.
var defaultColumns = []struct {
	name     string
	terminal bool
}{
	{"To Do", false},
	{"In Progress", false},
	{"Done", true},
}

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork) ProjectService {
	return &projectService{projects: projects, uow: uow}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name must not be empty: %w", domain.ErrValidation)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txStatuses := repository.NewSQLiteStatusRepo(tx)

		if err := txProjects.Create(ctx, p); err != nil {
			return err
		}
		for i, col := range defaultColumns {
			status := &domain.TaskStatus{
				ID:         uuid.New().String(),
				ProjectID:  p.ID,
				Name:       col.name,
				Position:   i,
				IsTerminal: col.terminal,
			}
			if err := txStatuses.Create(ctx, status); err != nil {
				return err
			}
		}
		return nil
	})
	return classify("creating project", err)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, classify("loading project", err)
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, classify("listing projects", err)
	}
	return projects, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		if _, err := txProjects.GetByID(ctx, id); err != nil {
			return err
		}
		return txProjects.Delete(ctx, id)
	})
	return classify("deleting project", err)
}

func (s *projectService) AddMember(ctx context.Context, projectID, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id must not be empty: %w", domain.ErrValidation)
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return classify("loading project", err)
	}
	return classify("adding member", s.projects.AddMember(ctx, projectID, userID))
}

func (s *projectService) RemoveMember(ctx context.Context, projectID, userID string) error {
	return classify("removing member", s.projects.RemoveMember(ctx, projectID, userID))
}

func (s *projectService) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	member, err := s.projects.IsMember(ctx, projectID, userID)
	if err != nil {
		return false, classify("checking membership", err)
	}
	return member, nil
}
