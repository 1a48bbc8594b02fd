package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/primestaffing/recruiter-tracker/internal/access"
	"github.com/primestaffing/recruiter-tracker/internal/database"
	"github.com/primestaffing/recruiter-tracker/internal/mail"
	"github.com/primestaffing/recruiter-tracker/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true, Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role, rate *float64) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Email:          email,
		PasswordHash:   string(hash),
		FirstName:      "First",
		LastName:       "Last",
		Role:           role,
		Status:         models.UserStatusActive,
		CommissionRate: rate,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func callerOf(user models.User) access.Caller {
	return access.Caller{ID: user.ID, Role: user.Role}
}

func ratePtr(value float64) *float64 {
	return &value
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func syncDispatch(fn func()) { fn() }

type auditStub struct {
	mu      sync.Mutex
	entries []AuditEntry
	err     error
}

func (a *auditStub) Record(ctx context.Context, entry AuditEntry) (models.AuditLog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	if a.err != nil {
		return models.AuditLog{}, a.err
	}
	return models.AuditLog{ID: uint(len(a.entries)), Action: entry.Action}, nil
}

func (a *auditStub) last(t *testing.T) AuditEntry {
	t.Helper()
	a.mu.Lock()
	defer a.mu.Unlock()
	require.NotEmpty(t, a.entries)
	return a.entries[len(a.entries)-1]
}

type mailerStub struct {
	mu       sync.Mutex
	welcomes []mail.Welcome
	resets   []mail.PasswordReset
	err      error
}

func (m *mailerStub) SendWelcome(ctx context.Context, welcome mail.Welcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes = append(m.welcomes, welcome)
	return m.err
}

func (m *mailerStub) SendPasswordReset(ctx context.Context, reset mail.PasswordReset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, reset)
	return m.err
}

var errBoom = errors.New("boom")

func callerWith(role models.Role, id uint) access.Caller {
	return access.Caller{ID: id, Role: role}
}
