package handler_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/primestaffing/recruiter-tracker/internal/models"
)

type route struct {
	method string
	path   string
	body   interface{}
}

var protectedRoutes = []route{
	{http.MethodPost, "/api/goals", map[string]interface{}{"amount": 1000}},
	{http.MethodGet, "/api/goals", nil},
	{http.MethodGet, "/api/commissions", nil},
	{http.MethodGet, "/api/dashboard/recruiter", nil},
	{http.MethodGet, "/api/users/3", nil},
	{http.MethodPatch, "/api/settings/password", map[string]string{"currentPassword": "x"}},
}

var adminRoutes = []route{
	{http.MethodPost, "/api/commissions", map[string]interface{}{"recruiterId": 3}},
	{http.MethodDelete, "/api/commissions/9", nil},
	{http.MethodGet, "/api/dashboard/leaderboard", nil},
	{http.MethodGet, "/api/users", nil},
	{http.MethodPost, "/api/users", map[string]string{"email": "a@b.co"}},
	{http.MethodPatch, "/api/users/3", map[string]string{"firstName": "A"}},
	{http.MethodGet, "/api/audit-logs", nil},
}

var superAdminRoutes = []route{
	{http.MethodDelete, "/api/users/3", nil},
}

func TestAnonymousCallersGet401OnEveryProtectedRoute(t *testing.T) {
	app := newTestApp(newStubs())

	all := append(append(append([]route{}, protectedRoutes...), adminRoutes...), superAdminRoutes...)
	for _, r := range all {
		resp := doRequest(t, app, r.method, r.path, "", r.body)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s", r.method, r.path)
	}
}

func TestRecruitersGet403OnAdminRoutes(t *testing.T) {
	app := newTestApp(newStubs())
	token := tokenFor(t, 3, models.RoleRecruiter)

	for _, r := range append(append([]route{}, adminRoutes...), superAdminRoutes...) {
		resp := doRequest(t, app, r.method, r.path, token, r.body)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode, "%s %s", r.method, r.path)
	}
}

func TestRecruitersReachAuthenticatedRoutes(t *testing.T) {
	app := newTestApp(newStubs())
	token := tokenFor(t, 3, models.RoleRecruiter)

	for _, r := range protectedRoutes {
		resp := doRequest(t, app, r.method, r.path, token, r.body)
		require.Less(t, resp.StatusCode, 300, "%s %s", r.method, r.path)
	}
}

func TestAdminsReachAdminRoutesButNotSuperAdminRoutes(t *testing.T) {
	app := newTestApp(newStubs())
	token := tokenFor(t, 2, models.RoleAdmin)

	for _, r := range adminRoutes {
		resp := doRequest(t, app, r.method, r.path, token, r.body)
		require.Less(t, resp.StatusCode, 300, "%s %s", r.method, r.path)
	}
	for _, r := range superAdminRoutes {
		resp := doRequest(t, app, r.method, r.path, token, r.body)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode, "%s %s", r.method, r.path)
	}
}

func TestSuperAdminsReachEveryRoute(t *testing.T) {
	app := newTestApp(newStubs())
	token := tokenFor(t, 1, models.RoleSuperAdmin)

	all := append(append(append([]route{}, protectedRoutes...), adminRoutes...), superAdminRoutes...)
	for _, r := range all {
		resp := doRequest(t, app, r.method, r.path, token, r.body)
		require.Less(t, resp.StatusCode, 300, "%s %s", r.method, r.path)
	}
}

func TestPublicRoutesNeedNoSession(t *testing.T) {
	app := newTestApp(newStubs())

	resp := doRequest(t, app, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": "a@b.co"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
