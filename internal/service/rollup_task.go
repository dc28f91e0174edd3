package service

import (
	"time"

	"github.com/aka1453/promin/internal/domain"
)

// TaskRollup holds the derived fields recomputed for one task from its
// deliverables. ActualStart is deliberately absent: rollups only read it.
type TaskRollup struct {
	PlannedStart    *time.Time
	PlannedEnd      *time.Time
	BudgetedCost    domain.Cents
	ActualCost      domain.Cents
	PlannedProgress float64
	Progress        float64
	ActualEnd       *time.Time
	Status          domain.Status

	// AllDone reports whether the task has deliverables and every one is
	// checked off. It is the predicate the explicit Complete action consumes.
	AllDone bool
}

// ComputeTaskRollup recomputes a task's derived fields from its deliverables
// as of now. Pure; callers persist the result.
//
// Planned progress is time-based earned schedule in weight points: each
// deliverable with a planned range and positive weight contributes
// timeRatio * weight, without normalizing by the weight total. Actual
// progress is the checked-off share of the weight total.
//
// The rollup never grants completion: an existing ActualEnd survives only
// while every deliverable stays done. When the total weight is zero the
// done fraction falls back to a plain count ratio, matching the unweighted
// fallback used at the milestone and project levels.
func ComputeTaskRollup(task *domain.Task, deliverables []*domain.Deliverable, now time.Time) TaskRollup {
	var r TaskRollup

	var totalWeight, doneWeight, planned float64
	var doneCount int
	for _, d := range deliverables {
		r.PlannedStart = domain.MinDate(r.PlannedStart, d.PlannedStart)
		r.PlannedEnd = domain.MaxDate(r.PlannedEnd, d.PlannedEnd)
		r.BudgetedCost += d.BudgetedCost
		r.ActualCost += d.ActualCost

		totalWeight += d.Weight
		if d.IsDone {
			doneWeight += d.Weight
			doneCount++
		}
		if d.Weight > 0 && d.PlannedStart != nil && d.PlannedEnd != nil {
			planned += domain.TimeRatio(now, *d.PlannedStart, *d.PlannedEnd) * d.Weight
		}
	}

	r.PlannedProgress = domain.Round2(domain.Clamp100(planned))

	switch {
	case totalWeight > 0:
		r.Progress = domain.Round2(domain.Clamp100(100 * doneWeight / totalWeight))
	case len(deliverables) > 0:
		r.Progress = domain.Round2(domain.Clamp100(100 * float64(doneCount) / float64(len(deliverables))))
	default:
		r.Progress = 0
	}

	r.AllDone = len(deliverables) > 0 && doneCount == len(deliverables)

	// Keep a completion the user granted, unless a deliverable regressed.
	if task.ActualEnd != nil && r.AllDone {
		r.ActualEnd = task.ActualEnd
	}

	r.Status = domain.DeriveStatus(task.ActualStart, r.ActualEnd)
	return r
}

// applyTaskRollup copies the recomputed fields onto the task struct.
func applyTaskRollup(task *domain.Task, r TaskRollup) {
	task.PlannedStart = r.PlannedStart
	task.PlannedEnd = r.PlannedEnd
	task.BudgetedCost = r.BudgetedCost
	task.ActualCost = r.ActualCost
	task.PlannedProgress = r.PlannedProgress
	task.Progress = r.Progress
	task.ActualEnd = r.ActualEnd
	task.Status = r.Status
}
