package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/primestaffing/recruiter-tracker/internal/access"
	"github.com/primestaffing/recruiter-tracker/internal/apperror"
	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/mail"
	"github.com/primestaffing/recruiter-tracker/internal/models"
	"github.com/primestaffing/recruiter-tracker/internal/observability"
	"github.com/primestaffing/recruiter-tracker/internal/repository"
)

const resetTokenBytes = 32

var errInvalidResetLink = apperror.Validation("This reset link is invalid or has expired.")

// PasswordResetOptions configures token lifetime, request throttling and link construction.
type PasswordResetOptions struct {
	TokenTTL time.Duration
	Cooldown time.Duration
	Link     func(token string) string
}

// PasswordService issues and redeems reset tokens and changes passwords.
type PasswordService interface {
	RequestReset(ctx context.Context, req dto.ForgotPasswordRequest) error
	Reset(ctx context.Context, req dto.ResetPasswordRequest) error
	Change(ctx context.Context, caller access.Caller, req dto.ChangePasswordRequest) error
}

type passwordService struct {
	repo      repository.UserRepository
	cache     *redis.Client
	mailer    Mailer
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
	options   PasswordResetOptions
	hashCost  int
	now       func() time.Time
	dispatch  dispatcher
}

// NewPasswordService constructs the password service. cache may be nil to disable throttling.
func NewPasswordService(repo repository.UserRepository, cache *redis.Client, mailer Mailer, validator *validator.Validate, logger zerolog.Logger, options PasswordResetOptions) PasswordService {
	if options.TokenTTL <= 0 {
		options.TokenTTL = time.Hour
	}
	if options.Link == nil {
		options.Link = func(token string) string { return "/reset-password?token=" + token }
	}

	return &passwordService{
		repo:      repo,
		cache:     cache,
		mailer:    mailer,
		validator: validator,
		logger:    logger.With().Str("component", "password_service").Logger(),
		tracer:    otel.Tracer(tracerName),
		options:   options,
		hashCost:  PasswordHashCost,
		now:       func() time.Time { return time.Now().UTC() },
		dispatch:  goDispatch,
	}
}

// RequestReset issues a token for an active account. The outcome is never revealed to the caller.
func (s *passwordService) RequestReset(ctx context.Context, req dto.ForgotPasswordRequest) error {
	ctx, span := s.tracer.Start(ctx, "password.request_reset")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return validationError(err)
	}

	email := repository.NormalizeEmail(req.Email)
	masked := maskEmail(email)

	if !s.acquireCooldown(ctx, email) {
		observability.PasswordResets().WithLabelValues("throttled").Inc()
		s.logger.Info().Str("email", masked).Msg("password reset throttled")
		return nil
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.PasswordResets().WithLabelValues("unknown").Inc()
			return nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return err
	}
	if user.Status != models.UserStatusActive {
		observability.PasswordResets().WithLabelValues("inactive").Inc()
		return nil
	}

	token, tokenHash, err := newResetToken()
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := s.repo.SetResetToken(ctx, user.ID, tokenHash, s.now().Add(s.options.TokenTTL)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return err
	}
	observability.PasswordResets().WithLabelValues("issued").Inc()
	s.logger.Info().Uint("user_id", user.ID).Str("email", masked).Msg("password reset issued")

	if s.mailer != nil {
		reset := mail.PasswordReset{
			To:        user.Email,
			FirstName: user.FirstName,
			ResetURL:  s.options.Link(token),
			ExpiresIn: humanizeTTL(s.options.TokenTTL),
		}
		sendDetached(ctx, s.dispatch, s.logger, "password_reset", func(ctx context.Context) error {
			return s.mailer.SendPasswordReset(ctx, reset)
		})
	}

	span.SetStatus(codes.Ok, "issued")
	return nil
}

// Reset redeems a token once and replaces the password.
func (s *passwordService) Reset(ctx context.Context, req dto.ResetPasswordRequest) error {
	ctx, span := s.tracer.Start(ctx, "password.reset")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return validationError(err)
	}

	tokenHash := hashResetToken(req.Token)
	user, err := s.repo.FindByResetToken(ctx, tokenHash, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "invalid token")
			observability.PasswordResets().WithLabelValues("rejected").Inc()
			return errInvalidResetLink
		}
		span.RecordError(err)
		return err
	}

	hash, err := hashPassword(req.Password, s.hashCost)
	if err != nil {
		span.RecordError(err)
		return err
	}

	redeemed, err := s.repo.RedeemResetToken(ctx, user.ID, tokenHash, hash)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return err
	}
	if !redeemed {
		span.SetStatus(codes.Error, "token already used")
		observability.PasswordResets().WithLabelValues("rejected").Inc()
		return errInvalidResetLink
	}

	observability.PasswordResets().WithLabelValues("redeemed").Inc()
	s.logger.Info().Uint("user_id", user.ID).Msg("password reset redeemed")
	span.SetStatus(codes.Ok, "redeemed")
	return nil
}

// Change replaces the caller's password after verifying the current one.
func (s *passwordService) Change(ctx context.Context, caller access.Caller, req dto.ChangePasswordRequest) error {
	if err := access.Check(&caller, access.Authenticated, 0); err != nil {
		return err
	}

	if err := s.validator.Struct(req); err != nil {
		return validationError(err)
	}

	user, err := s.repo.GetByID(ctx, caller.ID)
	if err != nil {
		return notFoundOr(err, "User not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return apperror.Validation("Current password is incorrect")
	}

	hash, err := hashPassword(req.NewPassword, s.hashCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return notFoundOr(err, "User not found")
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("password changed")
	return nil
}

// acquireCooldown reports whether a reset may be issued for email now. Without Redis, or when Redis
// is unreachable, every request is allowed.
func (s *passwordService) acquireCooldown(ctx context.Context, email string) bool {
	if s.cache == nil || s.options.Cooldown <= 0 {
		return true
	}

	key := "password-reset:cooldown:" + hashResetToken(email)
	ok, err := s.cache.SetNX(ctx, key, 1, s.options.Cooldown).Result()
	if err != nil {
		s.logger.Warn().Err(err).Msg("reset cooldown check failed")
		return true
	}
	return ok
}

func newResetToken() (token, tokenHash string, err error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	token = hex.EncodeToString(raw)
	return token, hashResetToken(token), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func humanizeTTL(ttl time.Duration) string {
	switch {
	case ttl == time.Hour:
		return "1 hour"
	case ttl%time.Hour == 0:
		return fmt.Sprintf("%d hours", int(ttl/time.Hour))
	case ttl%time.Minute == 0:
		return fmt.Sprintf("%d minutes", int(ttl/time.Minute))
	default:
		return ttl.String()
	}
}
