package testutil

import (
	"time"

	"github.com/aka1453/promin/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.Status) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Milestone options
type MilestoneOption func(*domain.Milestone)

func WithMilestoneWeight(w float64) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Weight = w
	}
}

func NewTestMilestone(projectID, title string, opts ...MilestoneOption) *domain.Milestone {
	now := time.Now().UTC()
	m := &domain.Milestone{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		Weight:    1,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskWeight(w float64) TaskOption {
	return func(t *domain.Task) {
		t.Weight = w
	}
}

func WithSequenceGroup(g string) TaskOption {
	return func(t *domain.Task) {
		t.SequenceGroup = g
	}
}

func WithTaskPlannedRange(start, end string) TaskOption {
	return func(t *domain.Task) {
		t.PlannedStart = domain.ParseLocalDate(start)
		t.PlannedEnd = domain.ParseLocalDate(end)
	}
}

func WithTaskActualStart(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.ActualStart = &d
		t.Status = domain.StatusInProgress
	}
}

func WithTaskActualEnd(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.ActualEnd = &d
		t.Status = domain.StatusCompleted
	}
}

func WithTaskProgress(planned, actual float64) TaskOption {
	return func(t *domain.Task) {
		t.PlannedProgress = planned
		t.Progress = actual
	}
}

func NewTestTask(milestoneID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:          uuid.New().String(),
		MilestoneID: milestoneID,
		Title:       title,
		Weight:      1,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Deliverable options
type DeliverableOption func(*domain.Deliverable)

func WithDeliverableWeight(w float64) DeliverableOption {
	return func(d *domain.Deliverable) {
		d.Weight = w
	}
}

func WithPlannedRange(start, end string) DeliverableOption {
	return func(d *domain.Deliverable) {
		d.PlannedStart = domain.ParseLocalDate(start)
		d.PlannedEnd = domain.ParseLocalDate(end)
	}
}

func WithCosts(budgeted, actual domain.Cents) DeliverableOption {
	return func(d *domain.Deliverable) {
		d.BudgetedCost = budgeted
		d.ActualCost = actual
	}
}

func WithDone() DeliverableOption {
	return func(d *domain.Deliverable) {
		now := time.Now().UTC()
		d.IsDone = true
		d.CompletedAt = &now
	}
}

func NewTestDeliverable(taskID, title string, opts ...DeliverableOption) *domain.Deliverable {
	now := time.Now().UTC()
	d := &domain.Deliverable{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Title:     title,
		Weight:    1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}
