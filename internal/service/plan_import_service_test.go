package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aka1453/promin/internal/repository"
	"github.com/aka1453/promin/internal/testutil"
)

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validPlanJSON = `{
  "project": {"name": "Office Build-Out"},
  "milestones": [
    {"ref": "m1", "title": "Design", "weight": 30},
    {"ref": "m2", "title": "Construction", "weight": 70}
  ],
  "tasks": [
    {"ref": "t1", "milestone_ref": "m1", "title": "Floor plan", "weight": 100, "sequence_group": "design"},
    {"ref": "t2", "milestone_ref": "m2", "title": "Framing", "weight": 100}
  ],
  "deliverables": [
    {"ref": "d1", "task_ref": "t1", "title": "Draft plan", "weight": 40, "planned_start": "2026-03-01", "planned_end": "2026-03-10", "budgeted_cost": 1500.50, "done": true},
    {"ref": "d2", "task_ref": "t1", "title": "Final plan", "weight": 60, "planned_start": "2026-03-11", "planned_end": "2026-03-20", "budgeted_cost": 2000},
    {"ref": "d3", "task_ref": "t2", "title": "Frame inspection", "weight": 100, "planned_end": "2026-05-01"}
  ]
}`

func TestPlanImportService_ImportsAndRollsUp(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewPlanImportService(testutil.NewTestUoW(database))
	ctx := context.Background()

	path := writePlanFile(t, validPlanJSON)
	result, err := svc.ImportPlan(ctx, path, date("2026-03-25"))
	require.NoError(t, err)

	assert.Equal(t, 2, result.MilestoneCount)
	assert.Equal(t, 2, result.TaskCount)
	assert.Equal(t, 3, result.DeliverableCount)

	projects := repository.NewSQLiteProjectRepo(database)
	project, err := projects.GetByID(ctx, result.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office Build-Out", project.Name)
	// m1: one task with 40% done-weight, weight 30; m2: untouched, weight 70.
	assert.Equal(t, 12.0, project.ActualProgress)
	require.NotNil(t, project.PlannedStart)
	assert.Equal(t, "2026-03-01", project.PlannedStart.Format("2006-01-02"))
	require.NotNil(t, project.PlannedEnd)
	assert.Equal(t, "2026-05-01", project.PlannedEnd.Format("2006-01-02"))

	milestones := repository.NewSQLiteMilestoneRepo(database)
	ms, err := milestones.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, ms, 2)
}

func TestPlanImportService_ValidationFailureImportsNothing(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewPlanImportService(testutil.NewTestUoW(database))
	ctx := context.Background()

	path := writePlanFile(t, `{
	  "project": {"name": "Broken"},
	  "milestones": [{"ref": "m1", "title": "M"}],
	  "tasks": [{"ref": "t1", "milestone_ref": "missing", "title": "T"}]
	}`)

	_, err := svc.ImportPlan(ctx, path, date("2026-03-25"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan validation failed")

	projects := repository.NewSQLiteProjectRepo(database)
	all, err := projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPlanImportService_MalformedJSON(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewPlanImportService(testutil.NewTestUoW(database))

	path := writePlanFile(t, "{not json")
	_, err := svc.ImportPlan(context.Background(), path, date("2026-03-25"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing plan file")
}

func TestPlanImportService_MissingFile(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewPlanImportService(testutil.NewTestUoW(database))

	_, err := svc.ImportPlan(context.Background(), "/nonexistent/plan.json", date("2026-03-25"))
	require.Error(t, err)
}
