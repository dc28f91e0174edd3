package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aka1453/promin/internal/domain"
)

func TestConvert_MinimalPlan(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	gen := Convert(validMinimalSchema(), now)

	assert.NotEmpty(t, gen.Project.ID)
	assert.Equal(t, "Test Project", gen.Project.Name)
	assert.Equal(t, domain.StatusPending, gen.Project.Status)
	assert.Equal(t, now, gen.Project.CreatedAt)

	require.Len(t, gen.Milestones, 1)
	assert.Equal(t, gen.Project.ID, gen.Milestones[0].ProjectID)
	assert.Equal(t, "Milestone 1", gen.Milestones[0].Title)
	assert.Zero(t, gen.Milestones[0].Weight)

	require.Len(t, gen.Tasks, 1)
	assert.Equal(t, gen.Milestones[0].ID, gen.Tasks[0].MilestoneID)
	assert.Equal(t, "Task 1", gen.Tasks[0].Title)
	assert.Nil(t, gen.Tasks[0].ActualStart)

	require.Len(t, gen.Deliverables, 1)
	assert.Equal(t, gen.Tasks[0].ID, gen.Deliverables[0].TaskID)
	assert.False(t, gen.Deliverables[0].IsDone)
	assert.Nil(t, gen.Deliverables[0].CompletedAt)
}

func TestConvert_FullPlan(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	schema := &PlanSchema{
		Project: ProjectPlan{Name: "Office Build-Out"},
		Milestones: []MilestonePlan{
			{Ref: "m1", Title: "Design", Weight: ptrFloat(30)},
			{Ref: "m2", Title: "Construction", Weight: ptrFloat(70)},
		},
		Tasks: []TaskPlan{
			{Ref: "t1", MilestoneRef: "m1", Title: "Floor plan", Weight: ptrFloat(50), SequenceGroup: "design"},
			{Ref: "t2", MilestoneRef: "m2", Title: "Framing", Weight: ptrFloat(100)},
		},
		Deliverables: []DeliverablePlan{
			{Ref: "d1", TaskRef: "t1", Title: "Draft plan", Weight: ptrFloat(40), PlannedStart: ptrStr("2026-03-01"), PlannedEnd: ptrStr("2026-03-10"), BudgetedCost: ptrFloat(1500.50)},
			{Ref: "d2", TaskRef: "t1", Title: "Final plan", Weight: ptrFloat(60), Done: true, ActualCost: ptrFloat(900)},
		},
	}

	gen := Convert(schema, now)

	require.Len(t, gen.Milestones, 2)
	assert.Equal(t, 30.0, gen.Milestones[0].Weight)
	assert.Equal(t, 70.0, gen.Milestones[1].Weight)

	require.Len(t, gen.Tasks, 2)
	assert.Equal(t, gen.Milestones[0].ID, gen.Tasks[0].MilestoneID)
	assert.Equal(t, gen.Milestones[1].ID, gen.Tasks[1].MilestoneID)
	assert.Equal(t, "design", gen.Tasks[0].SequenceGroup)

	require.Len(t, gen.Deliverables, 2)
	d1 := gen.Deliverables[0]
	assert.Equal(t, gen.Tasks[0].ID, d1.TaskID)
	assert.Equal(t, domain.Cents(150050), d1.BudgetedCost)
	require.NotNil(t, d1.PlannedStart)
	assert.Equal(t, "2026-03-01", d1.PlannedStart.Format("2006-01-02"))
	require.NotNil(t, d1.PlannedEnd)
	assert.Equal(t, "2026-03-10", d1.PlannedEnd.Format("2006-01-02"))

	d2 := gen.Deliverables[1]
	assert.True(t, d2.IsDone)
	require.NotNil(t, d2.CompletedAt)
	assert.Equal(t, now, *d2.CompletedAt)
	assert.Equal(t, domain.Cents(90000), d2.ActualCost)
	assert.Nil(t, d2.PlannedStart)
}

func TestConvert_DistinctIDs(t *testing.T) {
	schema := validMinimalSchema()
	now := time.Now().UTC()

	a := Convert(schema, now)
	b := Convert(schema, now)

	assert.NotEqual(t, a.Project.ID, b.Project.ID)
	assert.NotEqual(t, a.Tasks[0].ID, b.Tasks[0].ID)
}
