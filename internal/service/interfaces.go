package service

import (
	"context"
	"time"

	"github.com/aka1453/promin/internal/domain"
)

// RollupService is the cascading recompute engine. Each entry point
// recomputes one entity from its children, persists the result in a single
// update, then triggers the next stage upward. Every stage is idempotent:
// re-running it with unchanged children produces identical output.
type RollupService interface {
	// RecalcTask recomputes a task from its deliverables as of now, then
	// cascades to the parent milestone and project.
	RecalcTask(ctx context.Context, taskID string, now time.Time) error
	// RecalcMilestone recomputes a milestone from its tasks, then cascades
	// to the parent project.
	RecalcMilestone(ctx context.Context, milestoneID string) error
	// RecalcProject recomputes a project from its milestones. Terminal.
	RecalcProject(ctx context.Context, projectID string) error
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type MilestoneService interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByMilestone(ctx context.Context, milestoneID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// Start marks the task in progress as of the given day. This is the only
	// code path that writes Task.ActualStart.
	Start(ctx context.Context, id string, day time.Time) error
	// Complete marks the task finished as of the given day. It fails unless
	// every deliverable is done.
	Complete(ctx context.Context, id string, day time.Time) error
	// Reopen clears the task's completion and re-rolls the tree.
	Reopen(ctx context.Context, id string, now time.Time) error
	Delete(ctx context.Context, id string, now time.Time) error
}

type DeliverableService interface {
	Create(ctx context.Context, d *domain.Deliverable) error
	GetByID(ctx context.Context, id string) (*domain.Deliverable, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.Deliverable, error)
	Update(ctx context.Context, d *domain.Deliverable) error
	// Check marks the deliverable done and cascades the rollup upward.
	Check(ctx context.Context, id string, now time.Time) error
	// Uncheck reverts the deliverable and cascades; any completed ancestor
	// is reopened in the same pass.
	Uncheck(ctx context.Context, id string, now time.Time) error
	Delete(ctx context.Context, id string, now time.Time) error
}

// ProjectTree is the fully loaded hierarchy for one project, used by the
// status view and the board.
type ProjectTree struct {
	Project    *domain.Project
	Milestones []MilestoneNode
}

type MilestoneNode struct {
	Milestone *domain.Milestone
	Tasks     []TaskNode
}

type TaskNode struct {
	Task         *domain.Task
	Deliverables []*domain.Deliverable
	Critical     bool
	Reason       string
}

type StatusService interface {
	// ProjectTree loads the full hierarchy with critical-item annotations
	// computed as of today. Read-only; no rollup runs.
	ProjectTree(ctx context.Context, projectID string, today time.Time) (*ProjectTree, error)
}

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	Project          *domain.Project
	MilestoneCount   int
	TaskCount        int
	DeliverableCount int
}

type PlanImportService interface {
	ImportPlan(ctx context.Context, filePath string, now time.Time) (*ImportResult, error)
}
