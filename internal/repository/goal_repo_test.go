package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/primestaffing/recruiter-tracker/internal/models"
)

func TestGoalRepositoryRejectsSecondActiveGoal(t *testing.T) {
	db := newTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()
	now := day(2026, time.March, 10)

	recruiter := seedUser(t, db, "rec@example.com", models.RoleRecruiter)

	first := models.Goal{RecruiterID: recruiter.ID, Amount: 1000, PeriodStart: day(2026, time.March, 1), PeriodEnd: day(2026, time.March, 31)}
	require.NoError(t, repo.CreateIfNoActive(ctx, &first, now))
	require.NotZero(t, first.ID)

	second := models.Goal{RecruiterID: recruiter.ID, Amount: 2000, PeriodStart: day(2026, time.April, 1), PeriodEnd: day(2026, time.April, 30)}
	require.ErrorIs(t, repo.CreateIfNoActive(ctx, &second, now), ErrActiveGoalExists)
}

func TestGoalRepositoryIgnoresElapsedAndDeletedGoals(t *testing.T) {
	db := newTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()
	now := day(2026, time.March, 10)

	recruiter := seedUser(t, db, "rec@example.com", models.RoleRecruiter)

	elapsed := models.Goal{RecruiterID: recruiter.ID, Amount: 500, PeriodStart: day(2026, time.January, 1), PeriodEnd: day(2026, time.January, 31)}
	require.NoError(t, db.Create(&elapsed).Error)
	removed := models.Goal{RecruiterID: recruiter.ID, Amount: 500, PeriodStart: day(2026, time.March, 1), PeriodEnd: day(2026, time.March, 31)}
	require.NoError(t, db.Create(&removed).Error)
	require.NoError(t, db.Delete(&removed).Error)

	goal := models.Goal{RecruiterID: recruiter.ID, Amount: 800, PeriodStart: day(2026, time.March, 1), PeriodEnd: day(2026, time.March, 31)}
	require.NoError(t, repo.CreateIfNoActive(ctx, &goal, now))

	goals, err := repo.ListByRecruiter(ctx, recruiter.ID)
	require.NoError(t, err)
	require.Len(t, goals, 2)
}

func TestGoalRepositoryConcurrentCreatesAdmitOne(t *testing.T) {
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewGoalRepository(db)
	now := day(2026, time.March, 10)
	recruiter := seedUser(t, db, "rec@example.com", models.RoleRecruiter)

	var wg sync.WaitGroup
	results := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			goal := models.Goal{RecruiterID: recruiter.ID, Amount: 1000, PeriodStart: day(2026, time.March, 1), PeriodEnd: day(2026, time.March, 31)}
			results <- repo.CreateIfNoActive(context.Background(), &goal, now)
		}()
	}
	wg.Wait()
	close(results)

	created := 0
	for err := range results {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, ErrActiveGoalExists)
	}
	require.Equal(t, 1, created)
}

func TestGoalRepositoryLatestByRecruitersHonoursWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	recruiter := seedUser(t, db, "rec@example.com", models.RoleRecruiter)
	other := seedUser(t, db, "other@example.com", models.RoleRecruiter)

	q1 := models.Goal{RecruiterID: recruiter.ID, Amount: 100, PeriodStart: day(2026, time.January, 1), PeriodEnd: day(2026, time.March, 31), CreatedAt: day(2026, time.January, 1)}
	q2 := models.Goal{RecruiterID: recruiter.ID, Amount: 200, PeriodStart: day(2026, time.April, 1), PeriodEnd: day(2026, time.June, 30), CreatedAt: day(2026, time.April, 1)}
	require.NoError(t, db.Create(&q1).Error)
	require.NoError(t, db.Create(&q2).Error)

	latest, err := repo.LatestByRecruiters(ctx, []uint{recruiter.ID, other.ID}, nil)
	require.NoError(t, err)
	require.Equal(t, q2.ID, latest[recruiter.ID].ID)
	_, ok := latest[other.ID]
	require.False(t, ok)

	windowed, err := repo.LatestByRecruiters(ctx, []uint{recruiter.ID}, &Window{Start: day(2026, time.January, 1), End: day(2026, time.March, 31)})
	require.NoError(t, err)
	require.Equal(t, q1.ID, windowed[recruiter.ID].ID)
}
