package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aka1453/promin/internal/domain"
	"github.com/aka1453/promin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestoneRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projRepo := NewSQLiteProjectRepo(db)
	msRepo := NewSQLiteMilestoneRepo(db)

	proj := testutil.NewTestProject("Proj")
	require.NoError(t, projRepo.Create(ctx, proj))

	ms := testutil.NewTestMilestone(proj.ID, "Foundation", testutil.WithMilestoneWeight(40))
	require.NoError(t, msRepo.Create(ctx, ms))

	fetched, err := msRepo.GetByID(ctx, ms.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ProjectID)
	assert.Equal(t, "Foundation", fetched.Title)
	assert.Equal(t, 40.0, fetched.Weight)
	assert.Equal(t, domain.StatusPending, fetched.Status)
}

func TestMilestoneRepo_ListByProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projRepo := NewSQLiteProjectRepo(db)
	msRepo := NewSQLiteMilestoneRepo(db)

	proj := testutil.NewTestProject("Proj")
	require.NoError(t, projRepo.Create(ctx, proj))
	require.NoError(t, msRepo.Create(ctx, testutil.NewTestMilestone(proj.ID, "M1")))
	require.NoError(t, msRepo.Create(ctx, testutil.NewTestMilestone(proj.ID, "M2")))

	other := testutil.NewTestProject("Other")
	require.NoError(t, projRepo.Create(ctx, other))
	require.NoError(t, msRepo.Create(ctx, testutil.NewTestMilestone(other.ID, "Elsewhere")))

	list, err := msRepo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMilestoneRepo_UpdateRollup(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projRepo := NewSQLiteProjectRepo(db)
	msRepo := NewSQLiteMilestoneRepo(db)

	proj := testutil.NewTestProject("Proj")
	require.NoError(t, projRepo.Create(ctx, proj))
	ms := testutil.NewTestMilestone(proj.ID, "M1")
	require.NoError(t, msRepo.Create(ctx, ms))

	ms.ActualStart = domain.ParseLocalDate("2024-03-01")
	ms.ActualProgress = 62.5
	ms.ActualCost = domain.Cents(9900)
	ms.Status = domain.StatusInProgress
	ms.UpdatedAt = time.Now().UTC()
	require.NoError(t, msRepo.UpdateRollup(ctx, ms))

	fetched, err := msRepo.GetByID(ctx, ms.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.ActualStart)
	assert.Equal(t, "2024-03-01", fetched.ActualStart.Format(domain.DateLayout))
	assert.Equal(t, 62.5, fetched.ActualProgress)
	assert.Equal(t, domain.Cents(9900), fetched.ActualCost)
	assert.Equal(t, domain.StatusInProgress, fetched.Status)
}

func TestMilestoneRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	msRepo := NewSQLiteMilestoneRepo(db)

	_, err := msRepo.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
