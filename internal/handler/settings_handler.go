package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/service"
	"github.com/primestaffing/recruiter-tracker/internal/utils"
)

// SettingsHandler serves the signed-in user's account settings.
type SettingsHandler struct {
	passwords service.PasswordService
	logger    zerolog.Logger
}

// NewSettingsHandler constructs a settings handler.
func NewSettingsHandler(passwords service.PasswordService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		passwords: passwords,
		logger:    logger.With().Str("component", "settings_handler").Logger(),
	}
}

// Register wires settings routes.
func (h *SettingsHandler) Register(router fiber.Router) {
	router.Patch("/password", h.changePassword)
}

func (h *SettingsHandler) changePassword(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var payload dto.ChangePasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}

	if err := h.passwords.Change(c.UserContext(), caller, payload); err != nil {
		return respondError(c, h.logger, err, "change password")
	}

	return utils.SendSuccess(c, "password changed", dto.SuccessResponse{Success: true})
}
