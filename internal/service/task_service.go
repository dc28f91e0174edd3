package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aka1453/promin/internal/domain"
	"github.com/aka1453/promin/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks        repository.TaskRepo
	deliverables repository.DeliverableRepo
	rollup       RollupService
}

func NewTaskService(tasks repository.TaskRepo, deliverables repository.DeliverableRepo, rollup RollupService) TaskService {
	return &taskService{tasks: tasks, deliverables: deliverables, rollup: rollup}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Weight < 0 {
		return fmt.Errorf("task weight must be non-negative, got %v", t.Weight)
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.StatusPending
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return err
	}
	// A new task changes the milestone's weight base and date range.
	return s.rollup.RecalcMilestone(ctx, t.MilestoneID)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByMilestone(ctx context.Context, milestoneID string) ([]*domain.Task, error) {
	return s.tasks.ListByMilestone(ctx, milestoneID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if t.Weight < 0 {
		return fmt.Errorf("task weight must be non-negative, got %v", t.Weight)
	}
	now := time.Now().UTC()
	t.UpdatedAt = now
	if err := s.tasks.Update(ctx, t); err != nil {
		return err
	}
	return s.rollup.RecalcTask(ctx, t.ID, now)
}

func (s *taskService) Start(ctx context.Context, id string, day time.Time) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.ActualEnd != nil {
		return fmt.Errorf("task %q is already completed", t.Title)
	}
	if t.ActualStart != nil {
		return fmt.Errorf("task %q is already started", t.Title)
	}
	t.ActualStart = &day
	t.Status = domain.StatusInProgress
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, t); err != nil {
		return err
	}
	return s.rollup.RecalcTask(ctx, t.ID, day)
}

func (s *taskService) Complete(ctx context.Context, id string, day time.Time) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.ActualEnd != nil {
		return fmt.Errorf("task %q is already completed", t.Title)
	}

	deliverables, err := s.deliverables.ListByTask(ctx, id)
	if err != nil {
		return err
	}
	rollup := ComputeTaskRollup(t, deliverables, day)
	if !rollup.AllDone {
		return fmt.Errorf("task %q has unchecked deliverables; complete them first", t.Title)
	}

	if t.ActualStart == nil {
		t.ActualStart = &day
	}
	t.ActualEnd = &day
	t.Status = domain.StatusCompleted
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, t); err != nil {
		return err
	}
	return s.rollup.RecalcTask(ctx, t.ID, day)
}

func (s *taskService) Reopen(ctx context.Context, id string, now time.Time) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.ActualEnd == nil {
		return fmt.Errorf("task %q is not completed", t.Title)
	}
	t.ActualEnd = nil
	t.Status = domain.DeriveStatus(t.ActualStart, nil)
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, t); err != nil {
		return err
	}
	return s.rollup.RecalcTask(ctx, t.ID, now)
}

func (s *taskService) Delete(ctx context.Context, id string, now time.Time) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	// Removing a task can empty the milestone, which resets it.
	return s.rollup.RecalcMilestone(ctx, t.MilestoneID)
}
