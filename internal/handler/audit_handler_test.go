package handler_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/primestaffing/recruiter-tracker/internal/apperror"
	"github.com/primestaffing/recruiter-tracker/internal/models"
)

func TestAuditHandler_ForwardsFilters(t *testing.T) {
	s := newStubs()
	app := newTestApp(s)

	resp := doRequest(t, app, http.MethodGet, "/api/audit-logs?action=GOAL_CREATED&limit=25", tokenFor(t, 2, models.RoleAdmin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "GOAL_CREATED", s.audit.list.Action)
	require.Equal(t, 25, s.audit.list.Limit)
}

func TestAuditHandler_RejectsBadInput(t *testing.T) {
	s := newStubs()
	app := newTestApp(s)
	token := tokenFor(t, 2, models.RoleAdmin)

	resp := doRequest(t, app, http.MethodGet, "/api/audit-logs?limit=many", token, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	s.audit.err = apperror.Validation("Unknown audit action")
	resp = doRequest(t, app, http.MethodGet, "/api/audit-logs?action=NOPE", token, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
