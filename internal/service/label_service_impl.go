package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/trellis/internal/domain"
	"github.com/alexanderramin/trellis/internal/repository"
)

type labelService struct {
	labels   repository.LabelRepo
	projects repository.ProjectRepo
}

func NewLabelService(labels repository.LabelRepo, projects repository.ProjectRepo) LabelService {
	return &labelService{labels: labels, projects: projects}
}

func (s *labelService) Create(ctx context.Context, l *domain.Label) error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("label name must not be empty: %w", domain.ErrValidation)
	}
	if _, err := s.projects.GetByID(ctx, l.ProjectID); err != nil {
		return classify("loading project", fmt.Errorf("project: %w", err))
	}
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return classify("creating label", s.labels.Create(ctx, l))
}

func (s *labelService) ListByProject(ctx context.Context, projectID string) ([]*domain.Label, error) {
	labels, err := s.labels.ListByProject(ctx, projectID)
	if err != nil {
		return nil, classify("listing labels", err)
	}
	return labels, nil
}

func (s *labelService) ListByTask(ctx context.Context, taskID string) ([]*domain.Label, error) {
	labels, err := s.labels.ListByTask(ctx, taskID)
	if err != nil {
		return nil, classify("listing task labels", err)
	}
	return labels, nil
}

func (s *labelService) Delete(ctx context.Context, id string) error {
	return classify("deleting label", s.labels.Delete(ctx, id))
}
