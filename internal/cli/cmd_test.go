package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aka1453/promin/internal/repository"
	"github.com/aka1453/promin/internal/service"
	"github.com/aka1453/promin/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	projects := repository.NewSQLiteProjectRepo(database)
	milestones := repository.NewSQLiteMilestoneRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	deliverables := repository.NewSQLiteDeliverableRepo(database)
	rollup := service.NewRollupService(projects, milestones, tasks, deliverables)

	return &App{
		Projects:     service.NewProjectService(projects),
		Milestones:   service.NewMilestoneService(milestones, rollup),
		Tasks:        service.NewTaskService(tasks, deliverables, rollup),
		Deliverables: service.NewDeliverableService(deliverables, rollup),
		Status:       service.NewStatusService(projects, milestones, tasks, deliverables),
		Import:       service.NewPlanImportService(testutil.NewTestUoW(database)),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedTree(t *testing.T, app *App) (projectID, milestoneID, taskID string) {
	t.Helper()
	ctx := context.Background()

	p := testutil.NewTestProject("Office Build-Out")
	require.NoError(t, app.Projects.Create(ctx, p))
	m := testutil.NewTestMilestone(p.ID, "Design", testutil.WithMilestoneWeight(100))
	require.NoError(t, app.Milestones.Create(ctx, m))
	task := testutil.NewTestTask(m.ID, "Floor plan", testutil.WithTaskWeight(100))
	require.NoError(t, app.Tasks.Create(ctx, task))
	return p.ID, m.ID, task.ID
}

func TestProjectAddAndList(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--name", "Warehouse Move")
	require.NoError(t, err)

	projects, err := app.Projects.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Warehouse Move", projects[0].Name)

	_, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
}

func TestProjectAddRequiresName(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add")
	require.Error(t, err)
}

func TestProjectRemoveNeedsForce(t *testing.T) {
	app := testApp(t)
	projectID, _, _ := seedTree(t, app)

	_, err := executeCmd(t, app, "project", "remove", projectID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = executeCmd(t, app, "project", "remove", projectID, "--force")
	require.NoError(t, err)

	projects, err := app.Projects.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestMilestoneAddResolvesProjectByName(t *testing.T) {
	app := testApp(t)
	projectID, _, _ := seedTree(t, app)

	_, err := executeCmd(t, app, "milestone", "add",
		"--project", "office build-out", "--title", "Construction", "--weight", "70")
	require.NoError(t, err)

	milestones, err := app.Milestones.ListByProject(context.Background(), projectID)
	require.NoError(t, err)
	require.Len(t, milestones, 2)
}

func TestTaskLifecycleThroughCLI(t *testing.T) {
	app := testApp(t)
	_, _, taskID := seedTree(t, app)
	ctx := context.Background()

	_, err := executeCmd(t, app, "deliverable", "add",
		"--task", taskID, "--title", "Draft", "--weight", "100",
		"--start", "2026-03-01", "--end", "2026-03-10", "--budget", "1500.50")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "task", "start", taskID, "--on", "2026-03-01")
	require.NoError(t, err)

	// Completion is blocked while the deliverable is open.
	_, err = executeCmd(t, app, "task", "complete", taskID, "--on", "2026-03-10")
	require.Error(t, err)

	deliverables, err := app.Deliverables.ListByTask(ctx, taskID)
	require.NoError(t, err)
	require.Len(t, deliverables, 1)

	_, err = executeCmd(t, app, "deliverable", "check", deliverables[0].ID)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "task", "complete", taskID, "--on", "2026-03-10")
	require.NoError(t, err)

	task, err := app.Tasks.GetByID(ctx, taskID)
	require.NoError(t, err)
	require.NotNil(t, task.ActualEnd)

	_, err = executeCmd(t, app, "task", "reopen", taskID)
	require.NoError(t, err)

	task, err = app.Tasks.GetByID(ctx, taskID)
	require.NoError(t, err)
	assert.Nil(t, task.ActualEnd)
}

func TestTaskResolveByPrefix(t *testing.T) {
	app := testApp(t)
	_, _, taskID := seedTree(t, app)

	_, err := executeCmd(t, app, "task", "start", taskID[:8])
	require.NoError(t, err)

	task, err := app.Tasks.GetByID(context.Background(), taskID)
	require.NoError(t, err)
	require.NotNil(t, task.ActualStart)
}

func TestStatusCommand(t *testing.T) {
	app := testApp(t)
	projectID, _, _ := seedTree(t, app)

	_, err := executeCmd(t, app, "status", projectID)
	require.NoError(t, err)
}

func TestCriticalCommand(t *testing.T) {
	app := testApp(t)
	_, _, taskID := seedTree(t, app)
	ctx := context.Background()

	// Give the task an overdue planned end through a deliverable.
	_, err := executeCmd(t, app, "deliverable", "add",
		"--task", taskID, "--title", "Late thing",
		"--start", "2020-01-01", "--end", "2020-01-10")
	require.NoError(t, err)

	task, err := app.Tasks.GetByID(ctx, taskID)
	require.NoError(t, err)
	require.NotNil(t, task.PlannedEnd)

	_, err = executeCmd(t, app, "critical", "Office Build-Out")
	require.NoError(t, err)
}

func TestImportCommand(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "import", "/nonexistent/plan.json")
	require.Error(t, err)
}

func TestUnknownProjectErrors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "status", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project not found")
}
