package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/primestaffing/recruiter-tracker/internal/access"
	"github.com/primestaffing/recruiter-tracker/internal/apperror"
	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/models"
	"github.com/primestaffing/recruiter-tracker/internal/repository"
)

// DashboardService builds the recruiter dashboard and the admin leaderboard.
type DashboardService interface {
	Recruiter(ctx context.Context, caller access.Caller, goalID *uint) (dto.RecruiterDashboardResponse, error)
	Leaderboard(ctx context.Context, caller access.Caller, req dto.LeaderboardRequest) ([]dto.LeaderboardEntry, error)
}

type dashboardService struct {
	users       repository.UserRepository
	goals       repository.GoalRepository
	commissions repository.CommissionRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(users repository.UserRepository, goals repository.GoalRepository, commissions repository.CommissionRepository, validator *validator.Validate, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		users:       users,
		goals:       goals,
		commissions: commissions,
		validator:   validator,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Recruiter summarises the caller's progress against the selected goal, or the newest goal when goalID
// does not match one of theirs.
func (s *dashboardService) Recruiter(ctx context.Context, caller access.Caller, goalID *uint) (dto.RecruiterDashboardResponse, error) {
	user, err := s.users.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RecruiterDashboardResponse{}, apperror.NotFound("User not found")
		}
		return dto.RecruiterDashboardResponse{}, err
	}
	rate := user.Rate()

	goals, err := s.goals.ListByRecruiter(ctx, caller.ID)
	if err != nil {
		return dto.RecruiterDashboardResponse{}, err
	}

	if len(goals) == 0 {
		return dto.RecruiterDashboardResponse{
			HasGoal:        false,
			Goals:          []dto.GoalResponse{},
			Commissions:    []dto.CommissionResponse{},
			CommissionRate: rate,
		}, nil
	}

	selected := goals[0]
	if goalID != nil {
		for _, goal := range goals {
			if goal.ID == *goalID {
				selected = goal
				break
			}
		}
	}

	commissions, err := s.commissions.List(ctx, repository.CommissionFilter{
		RecruiterIDs: []uint{caller.ID},
		From:         &selected.PeriodStart,
		To:           &selected.PeriodEnd,
	})
	if err != nil {
		return dto.RecruiterDashboardResponse{}, err
	}

	progress := ComputeProgress(selected.Amount, amountsOf(commissions), rate)
	active := dto.NewGoalResponse(selected)

	return dto.RecruiterDashboardResponse{
		HasGoal:    true,
		Goals:      dto.NewGoalResponseSlice(goals),
		ActiveGoal: &active,
		Stats: &dto.DashboardStats{
			GoalAmount:  selected.Amount,
			TotalEarned: progress.TotalEarned,
			Remaining:   progress.Remaining,
			ProgressPct: progress.ProgressPct,
			DaysLeft:    daysLeft(selected.PeriodEnd, s.now()),
		},
		Commissions:    dto.NewCommissionResponseSlice(commissions),
		CommissionRate: rate,
	}, nil
}

// Leaderboard ranks recruiters by progress. With both period bounds, only goals inside the window and
// commissions logged within it count.
func (s *dashboardService) Leaderboard(ctx context.Context, caller access.Caller, req dto.LeaderboardRequest) ([]dto.LeaderboardEntry, error) {
	if err := access.Check(&caller, access.AdminOrAbove, 0); err != nil {
		return nil, err
	}

	req.Filter = strings.ToLower(strings.TrimSpace(req.Filter))
	req.SortBy = strings.ToLower(strings.TrimSpace(req.SortBy))
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	var window *repository.Window
	if strings.TrimSpace(req.PeriodStart) != "" && strings.TrimSpace(req.PeriodEnd) != "" {
		start, startErr := parseDate(req.PeriodStart)
		end, endErr := parseDate(req.PeriodEnd)
		if startErr != nil || endErr != nil {
			return nil, apperror.Validation("Invalid dates")
		}
		window = &repository.Window{Start: start, End: end}
	}

	recruiters, err := s.users.ListRecruiters(ctx, repository.RecruiterFilter{ActiveOnly: req.Filter == "active"})
	if err != nil {
		return nil, err
	}
	if len(recruiters) == 0 {
		return []dto.LeaderboardEntry{}, nil
	}

	ids := make([]uint, 0, len(recruiters))
	for _, recruiter := range recruiters {
		ids = append(ids, recruiter.ID)
	}

	latest, err := s.goals.LatestByRecruiters(ctx, ids, window)
	if err != nil {
		return nil, err
	}

	filter := repository.CommissionFilter{RecruiterIDs: ids}
	if window != nil {
		filter.From = &window.Start
		filter.To = &window.End
	}
	commissions, err := s.commissions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	amounts := make(map[uint][]float64, len(recruiters))
	for _, commission := range commissions {
		amounts[commission.RecruiterID] = append(amounts[commission.RecruiterID], commission.Amount)
	}

	entries := make([]dto.LeaderboardEntry, 0, len(recruiters))
	for _, recruiter := range recruiters {
		entries = append(entries, leaderboardEntry(recruiter, latest, amounts[recruiter.ID]))
	}

	sortLeaderboard(entries, req.SortBy)
	return entries, nil
}

func leaderboardEntry(recruiter models.User, latest map[uint]models.Goal, amounts []float64) dto.LeaderboardEntry {
	entry := dto.LeaderboardEntry{
		ID:             recruiter.ID,
		Name:           recruiter.FullName(),
		Email:          recruiter.Email,
		Status:         string(recruiter.Status),
		CommissionRate: recruiter.CommissionRate,
	}

	goalAmount := 0.0
	if goal, ok := latest[recruiter.ID]; ok {
		goalAmount = goal.Amount
		entry.Goal = &dto.LeaderboardGoal{
			ID:          goal.ID,
			Amount:      goal.Amount,
			PeriodStart: goal.PeriodStart,
			PeriodEnd:   goal.PeriodEnd,
		}
	}

	progress := ComputeProgress(goalAmount, amounts, recruiter.Rate())
	entry.TotalEarned = progress.TotalEarned
	entry.Remaining = progress.Remaining
	entry.ProgressPct = progress.ProgressPct
	return entry
}

func sortLeaderboard(entries []dto.LeaderboardEntry, sortBy string) {
	switch sortBy {
	case dto.SortByName:
		collator := collate.New(language.English)
		sort.SliceStable(entries, func(i, j int) bool {
			return collator.CompareString(entries[i].Name, entries[j].Name) < 0
		})
	case dto.SortByPct:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ProgressPct > entries[j].ProgressPct
		})
	case dto.SortByRemaining:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Remaining < entries[j].Remaining
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].TotalEarned > entries[j].TotalEarned
		})
	}
}

func amountsOf(commissions []models.Commission) []float64 {
	amounts := make([]float64, 0, len(commissions))
	for _, commission := range commissions {
		amounts = append(amounts, commission.Amount)
	}
	return amounts
}

func daysLeft(periodEnd, now time.Time) int {
	days := math.Ceil(periodEnd.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}
