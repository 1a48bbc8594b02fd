package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/primestaffing/recruiter-tracker/internal/apperror"
	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/models"
	"github.com/primestaffing/recruiter-tracker/internal/repository"
)

func newGoalServiceForTest(t *testing.T, now time.Time) (*goalService, *auditStub, func(string, models.Role) models.User) {
	t.Helper()
	db := newTestDB(t)
	audit := &auditStub{}
	svc := NewGoalService(repository.NewGoalRepository(db), audit, NewValidator(), testLogger()).(*goalService)
	svc.now = fixedClock(now)
	return svc, audit, func(email string, role models.Role) models.User {
		return createUser(t, db, email, role, nil)
	}
}

func TestGoalServiceCreateRecordsAudit(t *testing.T) {
	svc, audit, newUser := newGoalServiceForTest(t, date(2026, time.March, 10))
	recruiter := newUser("rec@example.com", models.RoleRecruiter)

	goal, err := svc.Create(context.Background(), callerOf(recruiter), dto.GoalCreateRequest{
		Amount:      100000,
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
	})
	require.NoError(t, err)
	require.NotZero(t, goal.ID)
	require.Equal(t, recruiter.ID, goal.RecruiterID)
	require.Equal(t, date(2026, time.March, 31), goal.PeriodEnd)

	entry := audit.last(t)
	require.Equal(t, models.AuditGoalCreated, entry.Action)
	require.Equal(t, models.EntityGoal, entry.EntityType)
	require.Equal(t, goal.ID, entry.EntityID)
	require.Equal(t, 100000.0, entry.Metadata["amount"])
	require.Equal(t, "2026-03-01T00:00:00Z", entry.Metadata["periodStart"])
}

func TestGoalServiceCreateValidation(t *testing.T) {
	svc, audit, newUser := newGoalServiceForTest(t, date(2026, time.March, 10))
	recruiter := newUser("rec@example.com", models.RoleRecruiter)

	cases := map[string]dto.GoalCreateRequest{
		"zero amount":      {Amount: 0, PeriodStart: "2026-03-01", PeriodEnd: "2026-03-31"},
		"negative amount":  {Amount: -5, PeriodStart: "2026-03-01", PeriodEnd: "2026-03-31"},
		"bad start":        {Amount: 10, PeriodStart: "yesterday", PeriodEnd: "2026-03-31"},
		"missing end":      {Amount: 10, PeriodStart: "2026-03-01"},
		"end equals start": {Amount: 10, PeriodStart: "2026-03-01", PeriodEnd: "2026-03-01"},
		"end before start": {Amount: 10, PeriodStart: "2026-03-31", PeriodEnd: "2026-03-01"},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), callerOf(recruiter), req)
			require.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
	require.Empty(t, audit.entries)
}

func TestGoalServiceRejectsSecondActiveGoal(t *testing.T) {
	svc, audit, newUser := newGoalServiceForTest(t, date(2026, time.March, 10))
	recruiter := newUser("rec@example.com", models.RoleRecruiter)
	ctx := context.Background()

	_, err := svc.Create(ctx, callerOf(recruiter), dto.GoalCreateRequest{Amount: 10, PeriodStart: "2026-03-01", PeriodEnd: "2026-03-31"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, callerOf(recruiter), dto.GoalCreateRequest{Amount: 20, PeriodStart: "2026-04-01", PeriodEnd: "2026-04-30"})
	require.ErrorIs(t, err, apperror.ErrConflict)
	require.Len(t, audit.entries, 1)

	svc.now = fixedClock(date(2026, time.April, 1))
	_, err = svc.Create(ctx, callerOf(recruiter), dto.GoalCreateRequest{Amount: 20, PeriodStart: "2026-04-01", PeriodEnd: "2026-04-30"})
	require.NoError(t, err, "a goal whose period has ended no longer blocks")
}

func TestGoalServiceListOwnership(t *testing.T) {
	svc, _, newUser := newGoalServiceForTest(t, date(2026, time.March, 10))
	recruiter := newUser("rec@example.com", models.RoleRecruiter)
	other := newUser("other@example.com", models.RoleRecruiter)
	admin := newUser("admin@example.com", models.RoleAdmin)
	ctx := context.Background()

	_, err := svc.Create(ctx, callerOf(recruiter), dto.GoalCreateRequest{Amount: 10, PeriodStart: "2026-03-01", PeriodEnd: "2026-03-31"})
	require.NoError(t, err)

	own, err := svc.List(ctx, callerOf(recruiter), nil)
	require.NoError(t, err)
	require.Len(t, own, 1)

	_, err = svc.List(ctx, callerOf(other), &recruiter.ID)
	require.ErrorIs(t, err, apperror.ErrForbidden)

	viaAdmin, err := svc.List(ctx, callerOf(admin), &recruiter.ID)
	require.NoError(t, err)
	require.Len(t, viaAdmin, 1)
}
