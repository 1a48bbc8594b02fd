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

// CommissionService maintains the commission ledger.
type CommissionService interface {
	Create(ctx context.Context, caller access.Caller, req dto.CommissionCreateRequest) (dto.CommissionResponse, error)
	List(ctx context.Context, caller access.Caller, req dto.CommissionListRequest) ([]dto.CommissionResponse, error)
	Delete(ctx context.Context, caller access.Caller, id uint) error
}

type commissionService struct {
	repo      repository.CommissionRepository
	users     repository.UserRepository
	audit     AuditRecorder
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewCommissionService constructs the commission ledger service.
func NewCommissionService(repo repository.CommissionRepository, users repository.UserRepository, audit AuditRecorder, validator *validator.Validate, logger zerolog.Logger) CommissionService {
	return &commissionService{
		repo:      repo,
		users:     users,
		audit:     audit,
		validator: validator,
		logger:    logger.With().Str("component", "commission_service").Logger(),
		tracer:    otel.Tracer(tracerName),
	}
}

func (s *commissionService) Create(ctx context.Context, caller access.Caller, req dto.CommissionCreateRequest) (dto.CommissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "commission.create")
	defer span.End()

	if err := access.Check(&caller, access.AdminOrAbove, 0); err != nil {
		span.SetStatus(codes.Error, "forbidden")
		return dto.CommissionResponse{}, err
	}

	if err := s.validator.Struct(req); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return dto.CommissionResponse{}, validationError(err)
	}

	loggedDate, err := parseDate(req.LoggedDate)
	if err != nil {
		span.SetStatus(codes.Error, "invalid date")
		return dto.CommissionResponse{}, apperror.Validation("loggedDate must be a valid date")
	}
	span.SetAttributes(attribute.Int64("recruiter.id", int64(req.RecruiterID)))

	recruiter, err := s.users.GetByID(ctx, req.RecruiterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "recruiter not found")
			return dto.CommissionResponse{}, apperror.NotFound("Recruiter not found")
		}
		span.RecordError(err)
		return dto.CommissionResponse{}, err
	}
	if recruiter.Role != models.RoleRecruiter {
		span.SetStatus(codes.Error, "recruiter not found")
		return dto.CommissionResponse{}, apperror.NotFound("Recruiter not found")
	}

	commission := models.Commission{
		RecruiterID: recruiter.ID,
		LoggedByID:  caller.ID,
		Amount:      req.Amount,
		LoggedDate:  loggedDate,
		Notes:       sanitizeOptionalText(req.Notes),
	}

	if err := s.repo.Create(ctx, &commission); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.CommissionResponse{}, err
	}
	observability.Commissions().WithLabelValues("created").Inc()

	_, _ = s.audit.Record(ctx, AuditEntry{
		ActorID:    caller.ID,
		Action:     models.AuditCommissionCreated,
		EntityType: models.EntityCommission,
		EntityID:   commission.ID,
		Metadata: map[string]interface{}{
			"recruiterName":  recruiter.FullName(),
			"amount":         commission.Amount,
			"loggedDate":     commission.LoggedDate.Format(time.RFC3339),
			"commissionRate": rateOrNil(recruiter.CommissionRate),
		},
	})

	s.logger.Info().Uint("commission_id", commission.ID).Uint("recruiter_id", recruiter.ID).Uint("actor_id", caller.ID).Msg("commission logged")
	span.SetStatus(codes.Ok, "created")

	return dto.NewCommissionResponse(commission), nil
}

// List returns commissions for a recruiter, newest logged date first. RecruiterID defaults to the caller.
func (s *commissionService) List(ctx context.Context, caller access.Caller, req dto.CommissionListRequest) ([]dto.CommissionResponse, error) {
	owner := caller.ID
	if req.RecruiterID != nil {
		owner = *req.RecruiterID
	}

	if err := access.Check(&caller, access.SelfOrAdmin, owner); err != nil {
		return nil, err
	}

	from, err := parseOptionalDate(req.From)
	if err != nil {
		return nil, apperror.Validation("from must be a valid date")
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return nil, apperror.Validation("to must be a valid date")
	}

	commissions, err := s.repo.List(ctx, repository.CommissionFilter{
		RecruiterIDs: []uint{owner},
		From:         from,
		To:           to,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewCommissionResponseSlice(commissions), nil
}

// Delete soft deletes a commission. The row is kept for the audit trail.
func (s *commissionService) Delete(ctx context.Context, caller access.Caller, id uint) error {
	ctx, span := s.tracer.Start(ctx, "commission.delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("commission.id", int64(id)))

	if err := access.Check(&caller, access.AdminOrAbove, 0); err != nil {
		span.SetStatus(codes.Error, "forbidden")
		return err
	}

	commission, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "not found")
			return apperror.NotFound("Commission not found")
		}
		span.RecordError(err)
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "not found")
			return apperror.NotFound("Commission not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return err
	}
	observability.Commissions().WithLabelValues("deleted").Inc()

	metadata := map[string]interface{}{
		"amount":         commission.Amount,
		"commissionRate": rateOrNil(commission.Recruiter.CommissionRate),
	}
	if commission.Recruiter.ID != 0 {
		metadata["recruiterName"] = commission.Recruiter.FullName()
	} else {
		metadata["recruiterId"] = commission.RecruiterID
	}

	_, _ = s.audit.Record(ctx, AuditEntry{
		ActorID:    caller.ID,
		Action:     models.AuditCommissionDeleted,
		EntityType: models.EntityCommission,
		EntityID:   commission.ID,
		Metadata:   metadata,
	})

	s.logger.Info().Uint("commission_id", id).Uint("actor_id", caller.ID).Msg("commission deleted")
	span.SetStatus(codes.Ok, "deleted")
	return nil
}
