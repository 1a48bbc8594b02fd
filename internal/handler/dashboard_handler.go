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

// DashboardHandler serves the recruiter dashboard and the admin leaderboard.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires dashboard routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/recruiter", middleware.Authorize(access.Authenticated), h.recruiter)
	router.Get("/leaderboard", middleware.Authorize(access.AdminOrAbove), h.leaderboard)
}

func (h *DashboardHandler) recruiter(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	goalID, err := parseOptionalUintQuery(c, "goalId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	dashboard, err := h.service.Recruiter(c.UserContext(), caller, goalID)
	if err != nil {
		return respondError(c, h.logger, err, "load recruiter dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}

func (h *DashboardHandler) leaderboard(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	req := dto.LeaderboardRequest{
		Filter:      c.Query("filter"),
		SortBy:      c.Query("sortBy"),
		PeriodStart: c.Query("periodStart"),
		PeriodEnd:   c.Query("periodEnd"),
	}

	entries, err := h.service.Leaderboard(c.UserContext(), caller, req)
	if err != nil {
		return respondError(c, h.logger, err, "load leaderboard")
	}

	return utils.SendSuccess(c, "leaderboard retrieved", entries)
}
