package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/primestaffing/recruiter-tracker/internal/access"
	"github.com/primestaffing/recruiter-tracker/internal/apperror"
	"github.com/primestaffing/recruiter-tracker/internal/middleware"
	"github.com/primestaffing/recruiter-tracker/internal/utils"
)

const internalErrorMessage = "Internal server error"

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(c.Params(key)), 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

// parseOptionalUintQuery returns nil when the query parameter is absent.
func parseOptionalUintQuery(c *fiber.Ctx, key string) (*uint, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return nil, errors.New("invalid " + key)
	}
	id := uint(parsed)
	return &id, nil
}

// callerFrom returns the session caller. Routes are guarded by middleware.Authorize,
// so a missing caller here means the route was registered without a guard.
func callerFrom(c *fiber.Ctx) (access.Caller, bool) {
	caller := middleware.CallerFrom(c)
	if caller == nil {
		return access.Caller{}, false
	}
	return *caller, true
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func unauthorized(c *fiber.Ctx) error {
	return utils.SendErrorWithCode(c, fiber.StatusUnauthorized, string(apperror.KindUnauthorized), "Unauthorized")
}

func badRequest(c *fiber.Ctx, message string) error {
	return utils.SendErrorWithCode(c, fiber.StatusBadRequest, string(apperror.KindValidation), message)
}

// respondError maps a service error onto the HTTP taxonomy. Unclassified
// errors are logged and answered with a generic message.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error, action string) error {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal && isValidationError(err) {
		kind = apperror.KindValidation
	}

	status := fiber.StatusInternalServerError
	switch kind {
	case apperror.KindUnauthorized:
		status = fiber.StatusUnauthorized
	case apperror.KindForbidden:
		status = fiber.StatusForbidden
	case apperror.KindValidation:
		status = fiber.StatusBadRequest
	case apperror.KindNotFound:
		status = fiber.StatusNotFound
	case apperror.KindConflict:
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		requestLogger(logger, c).Error().Err(err).Msg(action + " failed")
		return utils.SendErrorWithCode(c, status, string(apperror.KindInternal), internalErrorMessage)
	}

	message := err.Error()
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}
	return utils.SendErrorWithCode(c, status, string(kind), message)
}
