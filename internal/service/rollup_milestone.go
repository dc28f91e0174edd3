package service

import (
	"time"

	"github.com/aka1453/promin/internal/domain"
)

// MilestoneRollup holds the derived fields recomputed for one milestone from
// its tasks.
type MilestoneRollup struct {
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

// ComputeMilestoneRollup recomputes a milestone's derived fields from its
// tasks. Pure; callers persist the result.
//
// ActualStart is non-regressing: the earliest task start may only move the
// stored value earlier, never later, and never clears it. ActualEnd is gated:
// it is the latest task completion when every task is complete, and null
// otherwise, which reopens the milestone the moment any task regresses.
//
// Progress is a weighted average over all tasks using Task.Weight; the time
// ratio was already folded into each task's planned progress, so none is
// recomputed here.
//
// A milestone with no tasks resets every derived field to its identity,
// unconditionally.
func ComputeMilestoneRollup(m *domain.Milestone, tasks []*domain.Task) MilestoneRollup {
	var r MilestoneRollup

	if len(tasks) == 0 {
		r.Status = domain.StatusPending
		return r
	}

	allComplete := true
	for _, t := range tasks {
		r.PlannedStart = domain.MinDate(r.PlannedStart, t.PlannedStart)
		r.PlannedEnd = domain.MaxDate(r.PlannedEnd, t.PlannedEnd)
		r.ActualStart = domain.MinDate(r.ActualStart, t.ActualStart)
		r.BudgetedCost += t.BudgetedCost
		r.ActualCost += t.ActualCost
		if t.ActualEnd == nil {
			allComplete = false
		}
	}

	// Never regress a start the milestone already has.
	r.ActualStart = domain.MinDate(r.ActualStart, m.ActualStart)

	if allComplete {
		for _, t := range tasks {
			r.ActualEnd = domain.MaxDate(r.ActualEnd, t.ActualEnd)
		}
	}

	r.PlannedProgress = domain.WeightedAverage(tasks,
		func(t *domain.Task) float64 { return t.Weight },
		func(t *domain.Task) float64 { return t.PlannedProgress })
	r.ActualProgress = domain.WeightedAverage(tasks,
		func(t *domain.Task) float64 { return t.Weight },
		func(t *domain.Task) float64 { return t.Progress })

	r.Status = domain.DeriveStatus(r.ActualStart, r.ActualEnd)
	return r
}

// applyMilestoneRollup copies the recomputed fields onto the milestone struct.
func applyMilestoneRollup(m *domain.Milestone, r MilestoneRollup) {
	m.PlannedStart = r.PlannedStart
	m.PlannedEnd = r.PlannedEnd
	m.ActualStart = r.ActualStart
	m.ActualEnd = r.ActualEnd
	m.PlannedProgress = r.PlannedProgress
	m.ActualProgress = r.ActualProgress
	m.BudgetedCost = r.BudgetedCost
	m.ActualCost = r.ActualCost
	m.Status = r.Status
}
