package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/primestaffing/recruiter-tracker/internal/access"
	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/middleware"
	"github.com/primestaffing/recruiter-tracker/internal/service"
	"github.com/primestaffing/recruiter-tracker/internal/utils"
)

// UserHandler exposes user management.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs a user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches user routes to the router group.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("", middleware.Authorize(access.AdminOrAbove), h.list)
	router.Post("", middleware.Authorize(access.AdminOrAbove), h.create)
	router.Get("/:id", middleware.Authorize(access.Authenticated), h.get)
	router.Patch("/:id", middleware.Authorize(access.AdminOrAbove), h.update)
	router.Delete("/:id", middleware.Authorize(access.SuperAdminOnly), h.delete)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	users, err := h.service.List(c.UserContext(), caller)
	if err != nil {
		return respondError(c, h.logger, err, "list users")
	}

	return utils.SendSuccess(c, "users retrieved", users)
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.service.Get(c.UserContext(), caller, id)
	if err != nil {
		return respondError(c, h.logger, err, "fetch user")
	}

	return utils.SendSuccess(c, "user retrieved", user)
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var payload dto.UserCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}

	user, err := h.service.Create(c.UserContext(), caller, payload)
	if err != nil {
		return respondError(c, h.logger, err, "create user")
	}

	return utils.SendCreated(c, "user created", user)
}

func (h *UserHandler) update(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	var payload dto.UserUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}

	user, err := h.service.Update(c.UserContext(), caller, id, payload)
	if err != nil {
		return respondError(c, h.logger, err, "update user")
	}

	return utils.SendSuccess(c, "user updated", user)
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), caller, id); err != nil {
		return respondError(c, h.logger, err, "delete user")
	}

	return utils.SendSuccess(c, "user deleted", dto.SuccessResponse{Success: true})
}
