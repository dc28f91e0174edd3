package service

import (
	"fmt"
	"time"

	"github.com/aka1453/promin/internal/domain"
)

// CriticalFlag annotates one task with the result of critical-item detection.
type CriticalFlag struct {
	Task     *domain.Task
	Critical bool
	Reason   string
}

// DetectCritical flags schedule risk among the tasks of one milestone. A task
// is critical when it is open (no actual end), has a planned end, and is
// either overdue as of today or is the long pole: the latest planned end
// among open tasks, ties included. Overdue takes precedence in the reason.
//
// This is a two-rule heuristic, not a critical-path computation; there is no
// dependency graph and no float. Pure function, nothing is persisted.
func DetectCritical(tasks []*domain.Task, today time.Time) []CriticalFlag {
	var longPole *time.Time
	for _, t := range tasks {
		if t.ActualEnd != nil || t.PlannedEnd == nil {
			continue
		}
		longPole = domain.MaxDate(longPole, t.PlannedEnd)
	}

	flags := make([]CriticalFlag, len(tasks))
	for i, t := range tasks {
		flags[i] = CriticalFlag{Task: t}
		if t.ActualEnd != nil || t.PlannedEnd == nil {
			continue
		}
		switch {
		case t.PlannedEnd.Before(today) && !domain.SameDay(*t.PlannedEnd, today):
			days := domain.DaysBetween(*t.PlannedEnd, today)
			flags[i].Critical = true
			flags[i].Reason = fmt.Sprintf("overdue: planned end %s is %d day(s) past",
				t.PlannedEnd.Format(domain.DateLayout), days)
		case longPole != nil && t.PlannedEnd.Equal(*longPole):
			flags[i].Critical = true
			flags[i].Reason = fmt.Sprintf("long pole: latest planned end (%s) among open tasks",
				t.PlannedEnd.Format(domain.DateLayout))
		}
	}
	return flags
}
