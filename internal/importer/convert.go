package importer

import (
	"time"

	"github.com/google/uuid"

	"github.com/aka1453/promin/internal/domain"
)

// GeneratedPlan holds the domain objects produced from a plan schema,
// ready for persistence. Rollup fields are left at their zero values; the
// caller runs the rollup after inserting.
type GeneratedPlan struct {
	Project      *domain.Project
	Milestones   []*domain.Milestone
	Tasks        []*domain.Task
	Deliverables []*domain.Deliverable
}

// Convert transforms a validated plan schema into domain objects.
// Call ValidatePlanSchema first; Convert assumes the schema is valid.
func Convert(schema *PlanSchema, now time.Time) *GeneratedPlan {
	project := &domain.Project{
		ID:        uuid.New().String(),
		Name:      schema.Project.Name,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	milestoneIDs := make(map[string]string, len(schema.Milestones))
	milestones := make([]*domain.Milestone, 0, len(schema.Milestones))
	for _, m := range schema.Milestones {
		id := uuid.New().String()
		milestoneIDs[m.Ref] = id
		milestones = append(milestones, &domain.Milestone{
			ID:        id,
			ProjectID: project.ID,
			Title:     m.Title,
			Weight:    weightOrZero(m.Weight),
			Status:    domain.StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	taskIDs := make(map[string]string, len(schema.Tasks))
	tasks := make([]*domain.Task, 0, len(schema.Tasks))
	for _, t := range schema.Tasks {
		id := uuid.New().String()
		taskIDs[t.Ref] = id
		tasks = append(tasks, &domain.Task{
			ID:            id,
			MilestoneID:   milestoneIDs[t.MilestoneRef],
			Title:         t.Title,
			Weight:        weightOrZero(t.Weight),
			SequenceGroup: t.SequenceGroup,
			Status:        domain.StatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	deliverables := make([]*domain.Deliverable, 0, len(schema.Deliverables))
	for _, d := range schema.Deliverables {
		item := &domain.Deliverable{
			ID:           uuid.New().String(),
			TaskID:       taskIDs[d.TaskRef],
			Title:        d.Title,
			Weight:       weightOrZero(d.Weight),
			PlannedStart: parseOptionalDate(d.PlannedStart),
			PlannedEnd:   parseOptionalDate(d.PlannedEnd),
			IsDone:       d.Done,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if d.BudgetedCost != nil {
			item.BudgetedCost = domain.CentsFromFloat(*d.BudgetedCost)
		}
		if d.ActualCost != nil {
			item.ActualCost = domain.CentsFromFloat(*d.ActualCost)
		}
		if d.Done {
			done := now
			item.CompletedAt = &done
		}
		deliverables = append(deliverables, item)
	}

	return &GeneratedPlan{
		Project:      project,
		Milestones:   milestones,
		Tasks:        tasks,
		Deliverables: deliverables,
	}
}

func weightOrZero(w *float64) float64 {
	if w == nil {
		return 0
	}
	return *w
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
