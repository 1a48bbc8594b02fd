package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/primestaffing/recruiter-tracker/internal/models"
)

func TestCommissionRepositoryListFiltersAndOrders(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommissionRepository(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	recruiter := seedUser(t, db, "rec@example.com", models.RoleRecruiter)
	other := seedUser(t, db, "other@example.com", models.RoleRecruiter)

	for _, c := range []models.Commission{
		{RecruiterID: recruiter.ID, LoggedByID: admin.ID, Amount: 100, LoggedDate: day(2026, time.January, 5)},
		{RecruiterID: recruiter.ID, LoggedByID: admin.ID, Amount: 200, LoggedDate: day(2026, time.February, 5)},
		{RecruiterID: recruiter.ID, LoggedByID: admin.ID, Amount: 300, LoggedDate: day(2026, time.March, 5)},
		{RecruiterID: other.ID, LoggedByID: admin.ID, Amount: 999, LoggedDate: day(2026, time.February, 5)},
	} {
		commission := c
		require.NoError(t, repo.Create(ctx, &commission))
	}

	all, err := repo.List(ctx, CommissionFilter{RecruiterIDs: []uint{recruiter.ID}})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, 300.0, all[0].Amount, "expected newest logged date first")
	require.Equal(t, "Test", all[0].LoggedBy.FirstName)

	from := day(2026, time.February, 5)
	to := day(2026, time.March, 5)
	ranged, err := repo.List(ctx, CommissionFilter{RecruiterIDs: []uint{recruiter.ID}, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 2, "bounds are inclusive")

	both, err := repo.List(ctx, CommissionFilter{RecruiterIDs: []uint{recruiter.ID, other.ID}, From: &from, To: &from})
	require.NoError(t, err)
	require.Len(t, both, 2)
}

func TestCommissionRepositorySoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommissionRepository(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	recruiter := seedUser(t, db, "rec@example.com", models.RoleRecruiter)

	commission := models.Commission{RecruiterID: recruiter.ID, LoggedByID: admin.ID, Amount: 100, LoggedDate: day(2026, time.January, 5)}
	require.NoError(t, repo.Create(ctx, &commission))

	loaded, err := repo.GetByID(ctx, commission.ID)
	require.NoError(t, err)
	require.Equal(t, "rec@example.com", loaded.Recruiter.Email)

	require.NoError(t, repo.SoftDelete(ctx, commission.ID))
	require.ErrorIs(t, repo.SoftDelete(ctx, commission.ID), gorm.ErrRecordNotFound)

	_, err = repo.GetByID(ctx, commission.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var stored models.Commission
	require.NoError(t, db.Unscoped().First(&stored, commission.ID).Error)
	deletedAt, deleted := stored.State().DeletedAt()
	require.True(t, deleted)
	require.False(t, deletedAt.IsZero())

	remaining, err := repo.List(ctx, CommissionFilter{RecruiterIDs: []uint{recruiter.ID}})
	require.NoError(t, err)
	require.Empty(t, remaining)
}
