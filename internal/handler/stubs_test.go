package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/primestaffing/recruiter-tracker/internal/access"
	"github.com/primestaffing/recruiter-tracker/internal/config"
	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/handler"
	"github.com/primestaffing/recruiter-tracker/internal/middleware"
	"github.com/primestaffing/recruiter-tracker/internal/models"
	"github.com/primestaffing/recruiter-tracker/internal/router"
	"github.com/primestaffing/recruiter-tracker/internal/service"
)

const testSecret = "handler-test-secret"

type goalServiceStub struct {
	caller      access.Caller
	create      dto.GoalCreateRequest
	recruiterID *uint
	response    dto.GoalResponse
	err         error
}

func (s *goalServiceStub) Create(_ context.Context, caller access.Caller, req dto.GoalCreateRequest) (dto.GoalResponse, error) {
	s.caller, s.create = caller, req
	return s.response, s.err
}

func (s *goalServiceStub) List(_ context.Context, caller access.Caller, recruiterID *uint) ([]dto.GoalResponse, error) {
	s.caller, s.recruiterID = caller, recruiterID
	if s.err != nil {
		return nil, s.err
	}
	return []dto.GoalResponse{s.response}, nil
}

type commissionServiceStub struct {
	caller   access.Caller
	list     dto.CommissionListRequest
	deleted  uint
	response dto.CommissionResponse
	err      error
}

func (s *commissionServiceStub) Create(_ context.Context, caller access.Caller, _ dto.CommissionCreateRequest) (dto.CommissionResponse, error) {
	s.caller = caller
	return s.response, s.err
}

func (s *commissionServiceStub) List(_ context.Context, caller access.Caller, req dto.CommissionListRequest) ([]dto.CommissionResponse, error) {
	s.caller, s.list = caller, req
	if s.err != nil {
		return nil, s.err
	}
	return []dto.CommissionResponse{s.response}, nil
}

func (s *commissionServiceStub) Delete(_ context.Context, caller access.Caller, id uint) error {
	s.caller, s.deleted = caller, id
	return s.err
}

type dashboardServiceStub struct {
	goalID      *uint
	leaderboard dto.LeaderboardRequest
	dashboard   dto.RecruiterDashboardResponse
	entries     []dto.LeaderboardEntry
	err         error
}

func (s *dashboardServiceStub) Recruiter(_ context.Context, _ access.Caller, goalID *uint) (dto.RecruiterDashboardResponse, error) {
	s.goalID = goalID
	return s.dashboard, s.err
}

func (s *dashboardServiceStub) Leaderboard(_ context.Context, _ access.Caller, req dto.LeaderboardRequest) ([]dto.LeaderboardEntry, error) {
	s.leaderboard = req
	return s.entries, s.err
}

type userServiceStub struct {
	caller   access.Caller
	id       uint
	update   dto.UserUpdateRequest
	response dto.UserResponse
	err      error
}

func (s *userServiceStub) List(_ context.Context, caller access.Caller) ([]dto.UserResponse, error) {
	s.caller = caller
	if s.err != nil {
		return nil, s.err
	}
	return []dto.UserResponse{s.response}, nil
}

func (s *userServiceStub) Get(_ context.Context, caller access.Caller, id uint) (dto.UserResponse, error) {
	s.caller, s.id = caller, id
	return s.response, s.err
}

func (s *userServiceStub) Create(_ context.Context, caller access.Caller, _ dto.UserCreateRequest) (dto.UserResponse, error) {
	s.caller = caller
	return s.response, s.err
}

func (s *userServiceStub) Update(_ context.Context, caller access.Caller, id uint, req dto.UserUpdateRequest) (dto.UserResponse, error) {
	s.caller, s.id, s.update = caller, id, req
	return s.response, s.err
}

func (s *userServiceStub) Delete(_ context.Context, caller access.Caller, id uint) error {
	s.caller, s.id = caller, id
	return s.err
}

type auditServiceStub struct {
	list dto.AuditLogListRequest
	logs []dto.AuditLogResponse
	err  error
}

func (s *auditServiceStub) Record(context.Context, service.AuditEntry) (models.AuditLog, error) {
	return models.AuditLog{}, nil
}

func (s *auditServiceStub) List(_ context.Context, req dto.AuditLogListRequest) ([]dto.AuditLogResponse, error) {
	s.list = req
	return s.logs, s.err
}

type authServiceStub struct {
	response dto.LoginResponse
	err      error
}

func (s *authServiceStub) Login(context.Context, dto.LoginRequest) (dto.LoginResponse, error) {
	return s.response, s.err
}

type passwordServiceStub struct {
	forgot  dto.ForgotPasswordRequest
	reset   dto.ResetPasswordRequest
	changed access.Caller
	err     error
}

func (s *passwordServiceStub) RequestReset(_ context.Context, req dto.ForgotPasswordRequest) error {
	s.forgot = req
	return s.err
}

func (s *passwordServiceStub) Reset(_ context.Context, req dto.ResetPasswordRequest) error {
	s.reset = req
	return s.err
}

func (s *passwordServiceStub) Change(_ context.Context, caller access.Caller, _ dto.ChangePasswordRequest) error {
	s.changed = caller
	return s.err
}

type stubs struct {
	goals       *goalServiceStub
	commissions *commissionServiceStub
	dashboard   *dashboardServiceStub
	users       *userServiceStub
	audit       *auditServiceStub
	auth        *authServiceStub
	passwords   *passwordServiceStub
}

func newStubs() *stubs {
	return &stubs{
		goals:       &goalServiceStub{},
		commissions: &commissionServiceStub{},
		dashboard:   &dashboardServiceStub{},
		users:       &userServiceStub{},
		audit:       &auditServiceStub{},
		auth:        &authServiceStub{},
		passwords:   &passwordServiceStub{},
	}
}

// newTestApp assembles the full middleware chain and route table over stub services.
func newTestApp(s *stubs) *fiber.App {
	logger := zerolog.New(io.Discard)
	cfg := config.Config{AppName: "Recruiter Tracker", AppEnv: "test", AuthRateLimit: 1000}

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger, SessionSecret: testSecret})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(s.auth, s.passwords, logger),
		GoalHandler:       handler.NewGoalHandler(s.goals, logger),
		CommissionHandler: handler.NewCommissionHandler(s.commissions, logger),
		DashboardHandler:  handler.NewDashboardHandler(s.dashboard, logger),
		UserHandler:       handler.NewUserHandler(s.users, logger),
		AuditHandler:      handler.NewAuditHandler(s.audit, logger),
		SettingsHandler:   handler.NewSettingsHandler(s.passwords, logger),
	})
	return app
}

func tokenFor(t *testing.T, id uint, role models.Role) string {
	t.Helper()
	now := time.Now()
	user := models.User{ID: id, Role: role, FirstName: "Test", LastName: "User"}
	token, err := service.SignSession([]byte(testSecret), user, now, now.Add(time.Hour))
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
