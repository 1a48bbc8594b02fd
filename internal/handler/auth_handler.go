package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/service"
	"github.com/primestaffing/recruiter-tracker/internal/utils"
)

// AuthHandler serves the public session and password-reset endpoints.
type AuthHandler struct {
	auth      service.AuthService
	passwords service.PasswordService
	logger    zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(auth service.AuthService, passwords service.PasswordService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		passwords: passwords,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires auth routes. None of them require a session.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
	router.Post("/forgot-password", h.forgotPassword)
	router.Post("/reset-password", h.resetPassword)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}

	session, err := h.auth.Login(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.logger, err, "login")
	}

	return utils.SendSuccess(c, "signed in", session)
}

func (h *AuthHandler) forgotPassword(c *fiber.Ctx) error {
	var payload dto.ForgotPasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}

	if err := h.passwords.RequestReset(c.UserContext(), payload); err != nil {
		return respondError(c, h.logger, err, "request password reset")
	}

	return utils.SendSuccess(c, "if the account exists, a reset link has been sent", dto.OKResponse{OK: true})
}

func (h *AuthHandler) resetPassword(c *fiber.Ctx) error {
	var payload dto.ResetPasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}

	if err := h.passwords.Reset(c.UserContext(), payload); err != nil {
		return respondError(c, h.logger, err, "reset password")
	}

	return utils.SendSuccess(c, "password updated", dto.OKResponse{OK: true})
}
