package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aka1453/promin/internal/repository"
)

type rollupService struct {
	projects     repository.ProjectRepo
	milestones   repository.MilestoneRepo
	tasks        repository.TaskRepo
	deliverables repository.DeliverableRepo
	observer     CascadeObserver
}

// NewRollupService creates the cascading rollup engine. Pass observers to
// receive per-stage telemetry; nil observers are ignored.
func NewRollupService(
	projects repository.ProjectRepo,
	milestones repository.MilestoneRepo,
	tasks repository.TaskRepo,
	deliverables repository.DeliverableRepo,
	observers ...CascadeObserver,
) RollupService {
	return &rollupService{
		projects:     projects,
		milestones:   milestones,
		tasks:        tasks,
		deliverables: deliverables,
		observer:     cascadeObserverOrNoop(observers),
	}
}

func (s *rollupService) RecalcTask(ctx context.Context, taskID string, now time.Time) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("loading task for rollup: %w", err)
	}

	deliverables, err := s.deliverables.ListByTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("loading deliverables for rollup: %w", err)
	}

	rollup := ComputeTaskRollup(task, deliverables, now)
	applyTaskRollup(task, rollup)
	task.UpdatedAt = now.UTC()
	if err := s.tasks.UpdateRollup(ctx, task); err != nil {
		return fmt.Errorf("persisting task rollup: %w", err)
	}
	s.observer.StageRecalced(ctx, StageTask, task.ID)

	// A parent deleted mid-cascade stops the cascade without failing the
	// stage that already committed.
	if err := s.RecalcMilestone(ctx, task.MilestoneID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.observer.StageSkipped(ctx, StageMilestone, task.MilestoneID)
			return nil
		}
		return err
	}
	return nil
}

func (s *rollupService) RecalcMilestone(ctx context.Context, milestoneID string) error {
	milestone, err := s.milestones.GetByID(ctx, milestoneID)
	if err != nil {
		return fmt.Errorf("loading milestone for rollup: %w", err)
	}

	tasks, err := s.tasks.ListByMilestone(ctx, milestoneID)
	if err != nil {
		return fmt.Errorf("loading tasks for rollup: %w", err)
	}

	rollup := ComputeMilestoneRollup(milestone, tasks)
	applyMilestoneRollup(milestone, rollup)
	milestone.UpdatedAt = time.Now().UTC()
	if err := s.milestones.UpdateRollup(ctx, milestone); err != nil {
		return fmt.Errorf("persisting milestone rollup: %w", err)
	}
	s.observer.StageRecalced(ctx, StageMilestone, milestone.ID)

	if err := s.RecalcProject(ctx, milestone.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.observer.StageSkipped(ctx, StageProject, milestone.ProjectID)
			return nil
		}
		return err
	}
	return nil
}

func (s *rollupService) RecalcProject(ctx context.Context, projectID string) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("loading project for rollup: %w", err)
	}

	milestones, err := s.milestones.ListByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("loading milestones for rollup: %w", err)
	}

	rollup := ComputeProjectRollup(project, milestones)
	applyProjectRollup(project, rollup)
	project.UpdatedAt = time.Now().UTC()
	if err := s.projects.UpdateRollup(ctx, project); err != nil {
		return fmt.Errorf("persisting project rollup: %w", err)
	}
	s.observer.StageRecalced(ctx, StageProject, project.ID)
	return nil
}
