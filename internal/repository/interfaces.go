package repository

import (
	"context"
	"errors"

	"github.com/aka1453/promin/internal/domain"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// UpdateRollup persists only the derived fields recomputed by the
	// rollup engine, in a single statement.
	UpdateRollup(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	UpdateRollup(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByMilestone(ctx context.Context, milestoneID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// UpdateRollup never touches actual_start: that column belongs to the
	// explicit Start action alone.
	UpdateRollup(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type DeliverableRepo interface {
	Create(ctx context.Context, d *domain.Deliverable) error
	GetByID(ctx context.Context, id string) (*domain.Deliverable, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.Deliverable, error)
	Update(ctx context.Context, d *domain.Deliverable) error
	Delete(ctx context.Context, id string) error
}
