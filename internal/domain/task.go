package domain

import "time"

type Task struct {
	ID          string
	MilestoneID string
	Title       string

	// Relative share within the milestone.
	Weight float64

	// Lane grouping for board display; not a rollup input.
	SequenceGroup string

	PlannedStart *time.Time
	PlannedEnd   *time.Time

	// ActualStart is set only by an explicit Start action, never by a rollup.
	ActualStart *time.Time

	// ActualEnd is set only by an explicit Complete action; the rollup may
	// clear it when a deliverable regresses.
	ActualEnd *time.Time

	// PlannedProgress is the time-based earned-schedule value in weight
	// points; Progress is the completion-weight fraction (0-100).
	PlannedProgress float64
	Progress        float64

	BudgetedCost Cents
	ActualCost   Cents

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
