package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/primestaffing/recruiter-tracker/internal/access"
	"github.com/primestaffing/recruiter-tracker/internal/apperror"
	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/models"
	"github.com/primestaffing/recruiter-tracker/internal/observability"
	"github.com/primestaffing/recruiter-tracker/internal/repository"
)

// GoalService manages recruiter goals.
type GoalService interface {
	Create(ctx context.Context, caller access.Caller, req dto.GoalCreateRequest) (dto.GoalResponse, error)
	List(ctx context.Context, caller access.Caller, recruiterID *uint) ([]dto.GoalResponse, error)
}

type goalService struct {
	repo      repository.GoalRepository
	audit     AuditRecorder
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewGoalService constructs the goal service.
func NewGoalService(repo repository.GoalRepository, audit AuditRecorder, validator *validator.Validate, logger zerolog.Logger) GoalService {
	return &goalService{
		repo:      repo,
		audit:     audit,
		validator: validator,
		logger:    logger.With().Str("component", "goal_service").Logger(),
		tracer:    otel.Tracer(tracerName),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create sets a goal for the caller. Only one goal whose period has not ended may exist per recruiter.
func (s *goalService) Create(ctx context.Context, caller access.Caller, req dto.GoalCreateRequest) (dto.GoalResponse, error) {
	ctx, span := s.tracer.Start(ctx, "goal.create")
	defer span.End()
	span.SetAttributes(attribute.Int64("recruiter.id", int64(caller.ID)))

	if err := s.validator.Struct(req); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		observability.Goals().WithLabelValues("invalid").Inc()
		return dto.GoalResponse{}, validationError(err)
	}

	start, startErr := parseDate(req.PeriodStart)
	end, endErr := parseDate(req.PeriodEnd)
	if startErr != nil || endErr != nil {
		span.SetStatus(codes.Error, "invalid dates")
		observability.Goals().WithLabelValues("invalid").Inc()
		return dto.GoalResponse{}, apperror.Validation("Invalid dates")
	}
	if !end.After(start) {
		span.SetStatus(codes.Error, "invalid period")
		observability.Goals().WithLabelValues("invalid").Inc()
		return dto.GoalResponse{}, apperror.Validation("Period end must be after period start")
	}

	goal := models.Goal{
		RecruiterID: caller.ID,
		Amount:      req.Amount,
		PeriodStart: start,
		PeriodEnd:   end,
	}

	if err := s.repo.CreateIfNoActive(ctx, &goal, s.now()); err != nil {
		switch {
		case errors.Is(err, repository.ErrActiveGoalExists):
			span.SetStatus(codes.Error, "active goal exists")
			observability.Goals().WithLabelValues("conflict").Inc()
			return dto.GoalResponse{}, apperror.Conflict("An active goal already exists. You can set a new goal after the current period ends.")
		case errors.Is(err, gorm.ErrRecordNotFound):
			span.SetStatus(codes.Error, "recruiter not found")
			return dto.GoalResponse{}, apperror.NotFound("User not found")
		default:
			span.RecordError(err)
			span.SetStatus(codes.Error, "persistence failed")
			return dto.GoalResponse{}, err
		}
	}
	observability.Goals().WithLabelValues("created").Inc()

	_, _ = s.audit.Record(ctx, AuditEntry{
		ActorID:    caller.ID,
		Action:     models.AuditGoalCreated,
		EntityType: models.EntityGoal,
		EntityID:   goal.ID,
		Metadata: map[string]interface{}{
			"amount":      goal.Amount,
			"periodStart": goal.PeriodStart.Format(time.RFC3339),
			"periodEnd":   goal.PeriodEnd.Format(time.RFC3339),
		},
	})

	s.logger.Info().Uint("goal_id", goal.ID).Uint("recruiter_id", caller.ID).Msg("goal created")
	span.SetStatus(codes.Ok, "created")

	return dto.NewGoalResponse(goal), nil
}

// List returns the recruiter's goals newest first. recruiterID defaults to the caller.
func (s *goalService) List(ctx context.Context, caller access.Caller, recruiterID *uint) ([]dto.GoalResponse, error) {
	owner := caller.ID
	if recruiterID != nil {
		owner = *recruiterID
	}

	if err := access.Check(&caller, access.SelfOrAdmin, owner); err != nil {
		return nil, err
	}

	goals, err := s.repo.ListByRecruiter(ctx, owner)
	if err != nil {
		return nil, err
	}

	return dto.NewGoalResponseSlice(goals), nil
}
