package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aka1453/promin/internal/repository"
)

type statusService struct {
	projects     repository.ProjectRepo
	milestones   repository.MilestoneRepo
	tasks        repository.TaskRepo
	deliverables repository.DeliverableRepo
}

func NewStatusService(
	projects repository.ProjectRepo,
	milestones repository.MilestoneRepo,
	tasks repository.TaskRepo,
	deliverables repository.DeliverableRepo,
) StatusService {
	return &statusService{
		projects:     projects,
		milestones:   milestones,
		tasks:        tasks,
		deliverables: deliverables,
	}
}

func (s *statusService) ProjectTree(ctx context.Context, projectID string, today time.Time) (*ProjectTree, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}

	milestones, err := s.milestones.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading milestones: %w", err)
	}

	tree := &ProjectTree{Project: project}
	for _, m := range milestones {
		tasks, err := s.tasks.ListByMilestone(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("loading tasks for milestone %s: %w", m.ID, err)
		}

		flags := DetectCritical(tasks, today)

		node := MilestoneNode{Milestone: m}
		for i, t := range tasks {
			deliverables, err := s.deliverables.ListByTask(ctx, t.ID)
			if err != nil {
				return nil, fmt.Errorf("loading deliverables for task %s: %w", t.ID, err)
			}
			node.Tasks = append(node.Tasks, TaskNode{
				Task:         t,
				Deliverables: deliverables,
				Critical:     flags[i].Critical,
				Reason:       flags[i].Reason,
			})
		}
		tree.Milestones = append(tree.Milestones, node)
	}

	return tree, nil
}
