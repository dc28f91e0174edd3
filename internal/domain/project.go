package domain

import "time"

type Project struct {
	ID   string
	Name string

	// Derived schedule
	PlannedStart *time.Time
	PlannedEnd   *time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time

	// Derived progress (0-100)
	PlannedProgress float64
	ActualProgress  float64

	// Derived cost
	BudgetedCost Cents
	ActualCost   Cents

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayID returns a short identifier for display, truncating the UUID
// to 8 characters.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
