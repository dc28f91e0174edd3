package service

import (
	"time"

	"github.com/aka1453/promin/internal/domain"
)

// ProjectRollup holds the derived fields recomputed for one project from its
// milestones. Structurally the milestone rollup one level up.
type ProjectRollup struct {
	PlannedStart    *time.Time
	PlannedEnd      *time.Time
	ActualStart     *time.Time
	ActualEnd       *time.Time
	PlannedProgress float64
	ActualProgress  float64
	BudgetedCost    domain.Cents
	ActualCost      domain.Cents
	Status          domain.Status
}

// ComputeProjectRollup recomputes a project's derived fields from its
// milestones. Same rules as the milestone rollup: non-regressing ActualStart,
// gated ActualEnd (latest milestone completion, only when all are complete),
// weighted progress averages over Milestone.Weight, unconditional reset when
// the project has no milestones.
func ComputeProjectRollup(p *domain.Project, milestones []*domain.Milestone) ProjectRollup {
	var r ProjectRollup

	if len(milestones) == 0 {
		r.Status = domain.StatusPending
		return r
	}

	allComplete := true
	for _, m := range milestones {
		r.PlannedStart = domain.MinDate(r.PlannedStart, m.PlannedStart)
		r.PlannedEnd = domain.MaxDate(r.PlannedEnd, m.PlannedEnd)
		r.ActualStart = domain.MinDate(r.ActualStart, m.ActualStart)
		r.BudgetedCost += m.BudgetedCost
		r.ActualCost += m.ActualCost
		if m.ActualEnd == nil {
			allComplete = false
		}
	}

	r.ActualStart = domain.MinDate(r.ActualStart, p.ActualStart)

	if allComplete {
		for _, m := range milestones {
			r.ActualEnd = domain.MaxDate(r.ActualEnd, m.ActualEnd)
		}
	}

	r.PlannedProgress = domain.WeightedAverage(milestones,
		func(m *domain.Milestone) float64 { return m.Weight },
		func(m *domain.Milestone) float64 { return m.PlannedProgress })
	r.ActualProgress = domain.WeightedAverage(milestones,
		func(m *domain.Milestone) float64 { return m.Weight },
		func(m *domain.Milestone) float64 { return m.ActualProgress })

	r.Status = domain.DeriveStatus(r.ActualStart, r.ActualEnd)
	return r
}

// applyProjectRollup copies the recomputed fields onto the project struct.
func applyProjectRollup(p *domain.Project, r ProjectRollup) {
	p.PlannedStart = r.PlannedStart
	p.PlannedEnd = r.PlannedEnd
	p.ActualStart = r.ActualStart
	p.ActualEnd = r.ActualEnd
	p.PlannedProgress = r.PlannedProgress
	p.ActualProgress = r.ActualProgress
	p.BudgetedCost = r.BudgetedCost
	p.ActualCost = r.ActualCost
	p.Status = r.Status
}
