package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aka1453/promin/internal/domain"
	"github.com/aka1453/promin/internal/testutil"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation(domain.DateLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeTaskRollup_Empty(t *testing.T) {
	task := testutil.NewTestTask("m1", "Empty task")
	now := date("2026-03-15")

	r := ComputeTaskRollup(task, nil, now)

	assert.Nil(t, r.PlannedStart)
	assert.Nil(t, r.PlannedEnd)
	assert.Zero(t, r.BudgetedCost)
	assert.Zero(t, r.ActualCost)
	assert.Zero(t, r.PlannedProgress)
	assert.Zero(t, r.Progress)
	assert.Nil(t, r.ActualEnd)
	assert.False(t, r.AllDone)
	assert.Equal(t, domain.StatusPending, r.Status)
}

func TestComputeTaskRollup_DatesAndCosts(t *testing.T) {
	task := testutil.NewTestTask("m1", "Task")
	deliverables := []*domain.Deliverable{
		testutil.NewTestDeliverable(task.ID, "A",
			testutil.WithPlannedRange("2026-03-05", "2026-03-20"),
			testutil.WithCosts(10000, 2500)),
		testutil.NewTestDeliverable(task.ID, "B",
			testutil.WithPlannedRange("2026-03-01", "2026-03-12"),
			testutil.WithCosts(5000, 0)),
		testutil.NewTestDeliverable(task.ID, "C",
			testutil.WithCosts(2000, 2000)),
	}

	r := ComputeTaskRollup(task, deliverables, date("2026-03-10"))

	require.NotNil(t, r.PlannedStart)
	assert.Equal(t, date("2026-03-01"), *r.PlannedStart)
	require.NotNil(t, r.PlannedEnd)
	assert.Equal(t, date("2026-03-20"), *r.PlannedEnd)
	assert.Equal(t, domain.Cents(17000), r.BudgetedCost)
	assert.Equal(t, domain.Cents(4500), r.ActualCost)
}

func TestComputeTaskRollup_DoneWeightProgress(t *testing.T) {
	task := testutil.NewTestTask("m1", "Task")
	deliverables := []*domain.Deliverable{
		testutil.NewTestDeliverable(task.ID, "A", testutil.WithDeliverableWeight(30), testutil.WithDone()),
		testutil.NewTestDeliverable(task.ID, "B", testutil.WithDeliverableWeight(70)),
	}

	r := ComputeTaskRollup(task, deliverables, date("2026-03-10"))

	assert.Equal(t, 30.0, r.Progress)
	assert.False(t, r.AllDone)
}

func TestComputeTaskRollup_ZeroWeightFallsBackToCountRatio(t *testing.T) {
	task := testutil.NewTestTask("m1", "Task")
	deliverables := []*domain.Deliverable{
		testutil.NewTestDeliverable(task.ID, "A", testutil.WithDeliverableWeight(0), testutil.WithDone()),
		testutil.NewTestDeliverable(task.ID, "B", testutil.WithDeliverableWeight(0)),
		testutil.NewTestDeliverable(task.ID, "C", testutil.WithDeliverableWeight(0)),
		testutil.NewTestDeliverable(task.ID, "D", testutil.WithDeliverableWeight(0), testutil.WithDone()),
	}

	r := ComputeTaskRollup(task, deliverables, date("2026-03-10"))

	assert.Equal(t, 50.0, r.Progress)
}

func TestComputeTaskRollup_PlannedProgressIsTimeWeighted(t *testing.T) {
	task := testutil.NewTestTask("m1", "Task")
	deliverables := []*domain.Deliverable{
		// Fully past its window: contributes its whole weight.
		testutil.NewTestDeliverable(task.ID, "A",
			testutil.WithDeliverableWeight(40),
			testutil.WithPlannedRange("2026-03-01", "2026-03-05")),
		// Halfway through its window: contributes half its weight.
		testutil.NewTestDeliverable(task.ID, "B",
			testutil.WithDeliverableWeight(20),
			testutil.WithPlannedRange("2026-03-05", "2026-03-15")),
		// Not yet started: contributes nothing.
		testutil.NewTestDeliverable(task.ID, "C",
			testutil.WithDeliverableWeight(40),
			testutil.WithPlannedRange("2026-03-20", "2026-03-25")),
	}

	r := ComputeTaskRollup(task, deliverables, date("2026-03-10"))

	assert.Equal(t, 50.0, r.PlannedProgress)
}

func TestComputeTaskRollup_NoRangeNoPlannedContribution(t *testing.T) {
	task := testutil.NewTestTask("m1", "Task")
	deliverables := []*domain.Deliverable{
		testutil.NewTestDeliverable(task.ID, "A", testutil.WithDeliverableWeight(50)),
		testutil.NewTestDeliverable(task.ID, "B",
			testutil.WithDeliverableWeight(50),
			testutil.WithPlannedRange("2026-03-01", "2026-03-05")),
	}

	r := ComputeTaskRollup(task, deliverables, date("2026-04-01"))

	assert.Equal(t, 50.0, r.PlannedProgress)
}

func TestComputeTaskRollup_KeepsActualEndWhileAllDone(t *testing.T) {
	end := date("2026-03-12")
	task := testutil.NewTestTask("m1", "Task",
		testutil.WithTaskActualStart(date("2026-03-01")),
		testutil.WithTaskActualEnd(end))
	deliverables := []*domain.Deliverable{
		testutil.NewTestDeliverable(task.ID, "A", testutil.WithDone()),
		testutil.NewTestDeliverable(task.ID, "B", testutil.WithDone()),
	}

	r := ComputeTaskRollup(task, deliverables, date("2026-03-15"))

	require.NotNil(t, r.ActualEnd)
	assert.Equal(t, end, *r.ActualEnd)
	assert.True(t, r.AllDone)
	assert.Equal(t, domain.StatusCompleted, r.Status)
}

func TestComputeTaskRollup_ClearsActualEndOnRegression(t *testing.T) {
	task := testutil.NewTestTask("m1", "Task",
		testutil.WithTaskActualStart(date("2026-03-01")),
		testutil.WithTaskActualEnd(date("2026-03-12")))
	deliverables := []*domain.Deliverable{
		testutil.NewTestDeliverable(task.ID, "A", testutil.WithDone()),
		testutil.NewTestDeliverable(task.ID, "B"), // unchecked again
	}

	r := ComputeTaskRollup(task, deliverables, date("2026-03-15"))

	assert.Nil(t, r.ActualEnd)
	assert.Equal(t, domain.StatusInProgress, r.Status)
}

func TestComputeTaskRollup_NeverGrantsCompletion(t *testing.T) {
	// Every deliverable done, but the user never completed the task: the
	// rollup must not set ActualEnd on its own.
	task := testutil.NewTestTask("m1", "Task",
		testutil.WithTaskActualStart(date("2026-03-01")))
	deliverables := []*domain.Deliverable{
		testutil.NewTestDeliverable(task.ID, "A", testutil.WithDone()),
		testutil.NewTestDeliverable(task.ID, "B", testutil.WithDone()),
	}

	r := ComputeTaskRollup(task, deliverables, date("2026-03-15"))

	assert.Nil(t, r.ActualEnd)
	assert.True(t, r.AllDone)
	assert.Equal(t, 100.0, r.Progress)
	assert.Equal(t, domain.StatusInProgress, r.Status)
}

func TestComputeTaskRollup_Idempotent(t *testing.T) {
	task := testutil.NewTestTask("m1", "Task",
		testutil.WithTaskActualStart(date("2026-03-02")))
	deliverables := []*domain.Deliverable{
		testutil.NewTestDeliverable(task.ID, "A",
			testutil.WithDeliverableWeight(3),
			testutil.WithPlannedRange("2026-03-01", "2026-03-20"),
			testutil.WithCosts(100, 40),
			testutil.WithDone()),
		testutil.NewTestDeliverable(task.ID, "B", testutil.WithDeliverableWeight(7)),
	}
	now := date("2026-03-10")

	first := ComputeTaskRollup(task, deliverables, now)
	applyTaskRollup(task, first)
	second := ComputeTaskRollup(task, deliverables, now)

	assert.Equal(t, first, second)
}
