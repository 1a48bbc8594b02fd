package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/primestaffing/recruiter-tracker/internal/models"
)

const testSecret = "session-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func sessionApp() *fiber.App {
	app := fiber.New()
	app.Use(Session(testSecret))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		caller := CallerFrom(c)
		if caller == nil {
			return c.JSON(fiber.Map{"anonymous": true})
		}
		return c.JSON(fiber.Map{"id": caller.ID, "role": caller.Role})
	})
	return app
}

func whoami(t *testing.T, app *fiber.App, authorization string) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeJSON(t, resp, &body)
	return body
}

func TestSessionResolvesCallerFromBearer(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "42",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	body := whoami(t, sessionApp(), "Bearer "+token)
	require.Equal(t, float64(42), body["id"])
	require.Equal(t, string(models.RoleAdmin), body["role"])
}

func TestSessionAcceptsNumericSubject(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  7,
		"role": "RECRUITER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	body := whoami(t, sessionApp(), "bearer "+token)
	require.Equal(t, float64(7), body["id"])
}

func TestSessionLeavesRequestAnonymous(t *testing.T) {
	valid := jwt.MapClaims{"sub": "1", "role": "RECRUITER", "exp": time.Now().Add(time.Hour).Unix()}

	cases := map[string]string{
		"missing header":     "",
		"not bearer":         "Basic dXNlcjpwYXNz",
		"garbage token":      "Bearer not-a-token",
		"wrong secret":       "Bearer " + signToken(t, "other-secret", valid),
		"expired":            "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "1", "role": "RECRUITER", "exp": time.Now().Add(-time.Minute).Unix()}),
		"no expiry":          "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "1", "role": "RECRUITER"}),
		"unknown role":       "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "1", "role": "OWNER", "exp": time.Now().Add(time.Hour).Unix()}),
		"zero subject":       "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "0", "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()}),
		"fractional subject": "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": 1.5, "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()}),
		"negative subject":   "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": -2, "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()}),
	}

	app := sessionApp()
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			body := whoami(t, app, header)
			require.Equal(t, true, body["anonymous"])
		})
	}
}
