package middleware

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/primestaffing/recruiter-tracker/internal/access"
	"github.com/primestaffing/recruiter-tracker/internal/models"
)

const callerKey = "caller"

// Session resolves the caller from a bearer token when one is present and valid.
// Requests without a usable token continue anonymously; Authorize decides whether that is allowed.
func Session(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if caller, ok := parseBearer(c.Get(fiber.HeaderAuthorization), secret); ok {
			c.Locals(callerKey, caller)
		}
		return c.Next()
	}
}

// CallerFrom returns the caller resolved by Session, or nil for anonymous requests.
func CallerFrom(c *fiber.Ctx) *access.Caller {
	if caller, ok := c.Locals(callerKey).(*access.Caller); ok {
		return caller
	}
	return nil
}

func parseBearer(authorization, secret string) (*access.Caller, bool) {
	const bearer = "bearer "
	if len(authorization) <= len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
		return nil, false
	}

	tokenString := strings.TrimSpace(authorization[len(bearer):])
	if tokenString == "" {
		return nil, false
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	id, err := subjectID(claims["sub"])
	if err != nil || id == 0 {
		return nil, false
	}

	roleClaim, _ := claims["role"].(string)
	role := models.Role(strings.ToUpper(strings.TrimSpace(roleClaim)))
	if !role.Valid() {
		return nil, false
	}

	return &access.Caller{ID: id, Role: role}, true
}

func subjectID(value interface{}) (uint, error) {
	switch v := value.(type) {
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(parsed), nil
	case float64:
		if v < 0 || v != math.Trunc(v) {
			return 0, fmt.Errorf("invalid subject")
		}
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported subject type")
	}
}
