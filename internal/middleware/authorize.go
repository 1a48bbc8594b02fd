package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/primestaffing/recruiter-tracker/internal/access"
	"github.com/primestaffing/recruiter-tracker/internal/apperror"
	"github.com/primestaffing/recruiter-tracker/internal/utils"
)

// Authorize enforces a route-level requirement against the caller resolved by Session.
// Ownership checks need the target resource and are left to the service.
func Authorize(req access.Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := CallerFrom(c)
		ownerID := uint(0)
		if caller != nil {
			ownerID = caller.ID
		}

		switch access.Decide(caller, req, ownerID) {
		case access.Unauthenticated:
			return utils.SendErrorWithCode(c, fiber.StatusUnauthorized, string(apperror.KindUnauthorized), "Unauthorized")
		case access.Forbidden:
			return utils.SendErrorWithCode(c, fiber.StatusForbidden, string(apperror.KindForbidden), "Forbidden")
		}
		return c.Next()
	}
}
