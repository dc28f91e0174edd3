package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aka1453/promin/internal/domain"
	"github.com/aka1453/promin/internal/repository"
	"github.com/google/uuid"
)

type deliverableService struct {
	deliverables repository.DeliverableRepo
	rollup       RollupService
}

func NewDeliverableService(deliverables repository.DeliverableRepo, rollup RollupService) DeliverableService {
	return &deliverableService{deliverables: deliverables, rollup: rollup}
}

func (s *deliverableService) Create(ctx context.Context, d *domain.Deliverable) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Weight < 0 {
		return fmt.Errorf("deliverable weight must be non-negative, got %v", d.Weight)
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	if err := s.deliverables.Create(ctx, d); err != nil {
		return err
	}
	return s.rollup.RecalcTask(ctx, d.TaskID, now)
}

func (s *deliverableService) GetByID(ctx context.Context, id string) (*domain.Deliverable, error) {
	return s.deliverables.GetByID(ctx, id)
}

func (s *deliverableService) ListByTask(ctx context.Context, taskID string) ([]*domain.Deliverable, error) {
	return s.deliverables.ListByTask(ctx, taskID)
}

func (s *deliverableService) Update(ctx context.Context, d *domain.Deliverable) error {
	if d.Weight < 0 {
		return fmt.Errorf("deliverable weight must be non-negative, got %v", d.Weight)
	}
	now := time.Now().UTC()
	d.UpdatedAt = now
	if err := s.deliverables.Update(ctx, d); err != nil {
		return err
	}
	return s.rollup.RecalcTask(ctx, d.TaskID, now)
}

func (s *deliverableService) Check(ctx context.Context, id string, now time.Time) error {
	return s.setDone(ctx, id, true, now)
}

func (s *deliverableService) Uncheck(ctx context.Context, id string, now time.Time) error {
	return s.setDone(ctx, id, false, now)
}

func (s *deliverableService) setDone(ctx context.Context, id string, done bool, now time.Time) error {
	d, err := s.deliverables.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d.IsDone == done {
		return nil
	}
	d.IsDone = done
	if done {
		completed := now.UTC()
		d.CompletedAt = &completed
	} else {
		d.CompletedAt = nil
	}
	d.UpdatedAt = now.UTC()
	if err := s.deliverables.Update(ctx, d); err != nil {
		return err
	}
	return s.rollup.RecalcTask(ctx, d.TaskID, now)
}

func (s *deliverableService) Delete(ctx context.Context, id string, now time.Time) error {
	d, err := s.deliverables.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.deliverables.Delete(ctx, id); err != nil {
		return err
	}
	// Deleting the last deliverable resets the task's derived fields.
	return s.rollup.RecalcTask(ctx, d.TaskID, now)
}
