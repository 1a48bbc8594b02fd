package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/service"
	"github.com/primestaffing/recruiter-tracker/internal/utils"
)

// AuditHandler lists the audit trail. Routes must be restricted to administrators.
type AuditHandler struct {
	service service.AuditService
	logger  zerolog.Logger
}

// NewAuditHandler constructs an audit handler.
func NewAuditHandler(service service.AuditService, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		logger:  logger.With().Str("component", "audit_handler").Logger(),
	}
}

// Register wires audit routes.
func (h *AuditHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *AuditHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return badRequest(c, "invalid limit")
	}

	logs, err := h.service.List(c.UserContext(), dto.AuditLogListRequest{
		Action: c.Query("action"),
		Limit:  limit,
	})
	if err != nil {
		return respondError(c, h.logger, err, "list audit logs")
	}

	return utils.SendSuccess(c, "audit logs retrieved", logs)
}
