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

// CommissionHandler exposes the commission ledger.
type CommissionHandler struct {
	service service.CommissionService
	logger  zerolog.Logger
}

// NewCommissionHandler constructs a commission handler.
func NewCommissionHandler(service service.CommissionService, logger zerolog.Logger) *CommissionHandler {
	return &CommissionHandler{
		service: service,
		logger:  logger.With().Str("component", "commission_handler").Logger(),
	}
}

// Register wires commission routes. Writes are restricted to administrators;
// reads are scoped by the service.
func (h *CommissionHandler) Register(router fiber.Router) {
	router.Get("", middleware.Authorize(access.Authenticated), h.list)
	router.Post("", middleware.Authorize(access.AdminOrAbove), h.create)
	router.Delete("/:id", middleware.Authorize(access.AdminOrAbove), h.delete)
}

func (h *CommissionHandler) create(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var payload dto.CommissionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}

	commission, err := h.service.Create(c.UserContext(), caller, payload)
	if err != nil {
		return respondError(c, h.logger, err, "create commission")
	}

	return utils.SendCreated(c, "commission logged", commission)
}

func (h *CommissionHandler) list(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	recruiterID, err := parseOptionalUintQuery(c, "recruiterId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	req := dto.CommissionListRequest{
		RecruiterID: recruiterID,
		From:        c.Query("from"),
		To:          c.Query("to"),
	}

	commissions, err := h.service.List(c.UserContext(), caller, req)
	if err != nil {
		return respondError(c, h.logger, err, "list commissions")
	}

	return utils.SendSuccess(c, "commissions retrieved", commissions)
}

func (h *CommissionHandler) delete(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), caller, id); err != nil {
		return respondError(c, h.logger, err, "delete commission")
	}

	return utils.SendSuccess(c, "commission deleted", dto.SuccessResponse{Success: true})
}
