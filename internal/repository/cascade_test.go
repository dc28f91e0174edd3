package repository

import (
	"context"
	"testing"

	"github.com/aka1453/promin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_ProjectToMilestones verifies that deleting a project cascades to its milestones.
func TestCascadeDelete_ProjectToMilestones(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(db)
	msRepo := NewSQLiteMilestoneRepo(db)

	proj := testutil.NewTestProject("CascadeProj")
	require.NoError(t, projRepo.Create(ctx, proj))

	ms := testutil.NewTestMilestone(proj.ID, "Child Milestone")
	require.NoError(t, msRepo.Create(ctx, ms))

	require.NoError(t, projRepo.Delete(ctx, proj.ID))

	_, err := msRepo.GetByID(ctx, ms.ID)
	assert.Error(t, err, "milestone should be cascade-deleted when project is deleted")
}

// TestCascadeDelete_MilestoneToTasks verifies milestones -> tasks cascade.
func TestCascadeDelete_MilestoneToTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(db)
	msRepo := NewSQLiteMilestoneRepo(db)
	taskRepo := NewSQLiteTaskRepo(db)

	proj := testutil.NewTestProject("CascadeProj2")
	require.NoError(t, projRepo.Create(ctx, proj))

	ms := testutil.NewTestMilestone(proj.ID, "Milestone")
	require.NoError(t, msRepo.Create(ctx, ms))

	task := testutil.NewTestTask(ms.ID, "Task")
	require.NoError(t, taskRepo.Create(ctx, task))

	require.NoError(t, msRepo.Delete(ctx, ms.ID))

	_, err := taskRepo.GetByID(ctx, task.ID)
	assert.Error(t, err, "task should be cascade-deleted when milestone is deleted")
}

// TestCascadeDelete_TaskToDeliverables verifies tasks -> deliverables cascade.
func TestCascadeDelete_TaskToDeliverables(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(db)
	msRepo := NewSQLiteMilestoneRepo(db)
	taskRepo := NewSQLiteTaskRepo(db)
	delRepo := NewSQLiteDeliverableRepo(db)

	proj := testutil.NewTestProject("CascadeProj3")
	require.NoError(t, projRepo.Create(ctx, proj))

	ms := testutil.NewTestMilestone(proj.ID, "Milestone")
	require.NoError(t, msRepo.Create(ctx, ms))

	task := testutil.NewTestTask(ms.ID, "Task")
	require.NoError(t, taskRepo.Create(ctx, task))

	d := testutil.NewTestDeliverable(task.ID, "Deliverable")
	require.NoError(t, delRepo.Create(ctx, d))

	require.NoError(t, taskRepo.Delete(ctx, task.ID))

	_, err := delRepo.GetByID(ctx, d.ID)
	assert.Error(t, err, "deliverable should be cascade-deleted when task is deleted")
}
