package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aka1453/promin/internal/domain"
	"github.com/aka1453/promin/internal/repository"
	"github.com/google/uuid"
)

type milestoneService struct {
	milestones repository.MilestoneRepo
	rollup     RollupService
}

func NewMilestoneService(milestones repository.MilestoneRepo, rollup RollupService) MilestoneService {
	return &milestoneService{milestones: milestones, rollup: rollup}
}

func (s *milestoneService) Create(ctx context.Context, m *domain.Milestone) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Weight < 0 {
		return fmt.Errorf("milestone weight must be non-negative, got %v", m.Weight)
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Status == "" {
		m.Status = domain.StatusPending
	}
	if err := s.milestones.Create(ctx, m); err != nil {
		return err
	}
	return s.rollup.RecalcProject(ctx, m.ProjectID)
}

func (s *milestoneService) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	return s.milestones.GetByID(ctx, id)
}

func (s *milestoneService) ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error) {
	return s.milestones.ListByProject(ctx, projectID)
}

func (s *milestoneService) Update(ctx context.Context, m *domain.Milestone) error {
	if m.Weight < 0 {
		return fmt.Errorf("milestone weight must be non-negative, got %v", m.Weight)
	}
	m.UpdatedAt = time.Now().UTC()
	if err := s.milestones.Update(ctx, m); err != nil {
		return err
	}
	// Weight edits change the project's weighted averages.
	return s.rollup.RecalcMilestone(ctx, m.ID)
}

func (s *milestoneService) Delete(ctx context.Context, id string) error {
	m, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.milestones.Delete(ctx, id); err != nil {
		return err
	}
	return s.rollup.RecalcProject(ctx, m.ProjectID)
}
