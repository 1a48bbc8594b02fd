package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/primestaffing/recruiter-tracker/internal/utils"
)

// CodeRateLimited tags responses rejected by RateLimit.
const CodeRateLimited = "RATE_LIMITED"

// RateLimit limits requests per caller, falling back to the client IP for anonymous requests.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if caller := CallerFrom(c); caller != nil {
				return fmt.Sprintf("%s:user:%d", identifier, caller.ID)
			}
			return fmt.Sprintf("%s:ip:%s", identifier, c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.SendErrorWithCode(c, fiber.StatusTooManyRequests, CodeRateLimited, "Too many requests, please try again later")
		},
	})
}
