package domain

import "time"

type Milestone struct {
	ID        string
	ProjectID string
	Title     string

	// Relative share within the project. Weights are not required to sum
	// to 100; zero is allowed.
	Weight float64

	PlannedStart *time.Time
	PlannedEnd   *time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time

	PlannedProgress float64
	ActualProgress  float64

	BudgetedCost Cents
	ActualCost   Cents

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
