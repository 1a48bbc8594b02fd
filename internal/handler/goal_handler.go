package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/service"
	"github.com/primestaffing/recruiter-tracker/internal/utils"
)

// GoalHandler exposes goal endpoints.
type GoalHandler struct {
	service service.GoalService
	logger  zerolog.Logger
}

// NewGoalHandler constructs a goal handler.
func NewGoalHandler(service service.GoalService, logger zerolog.Logger) *GoalHandler {
	return &GoalHandler{
		service: service,
		logger:  logger.With().Str("component", "goal_handler").Logger(),
	}
}

// Register wires goal routes. Callers must be authenticated.
func (h *GoalHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
}

func (h *GoalHandler) create(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var payload dto.GoalCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}

	goal, err := h.service.Create(c.UserContext(), caller, payload)
	if err != nil {
		return respondError(c, h.logger, err, "create goal")
	}

	return utils.SendCreated(c, "goal created", goal)
}

func (h *GoalHandler) list(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	recruiterID, err := parseOptionalUintQuery(c, "recruiterId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	goals, err := h.service.List(c.UserContext(), caller, recruiterID)
	if err != nil {
		return respondError(c, h.logger, err, "list goals")
	}

	return utils.SendSuccess(c, "goals retrieved", goals)
}
