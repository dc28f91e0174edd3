package domain

import "time"

// Deliverable is the leaf of the tree. Checking one off is the sole progress
// driver upward.
type Deliverable struct {
	ID     string
	TaskID string
	Title  string

	Weight float64

	PlannedStart *time.Time
	PlannedEnd   *time.Time

	BudgetedCost Cents
	ActualCost   Cents

	IsDone bool
	// CompletedAt is set iff IsDone.
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
