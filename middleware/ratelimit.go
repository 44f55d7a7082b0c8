package middleware

import (
	"markbook_go/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func newLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: config.AppConfig.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests, please try again later",
			})
		},
	})
}

// AuthRateLimiter guards login/register endpoints
func AuthRateLimiter() fiber.Handler {
	return newLimiter(config.AppConfig.AuthRateLimit)
}

// TeacherRateLimiter guards the teacher route group
func TeacherRateLimiter() fiber.Handler {
	return newLimiter(config.AppConfig.TeacherRateLimit)
}

// StudentRateLimiter guards the student route group
func StudentRateLimiter() fiber.Handler {
	return newLimiter(config.AppConfig.StudentRateLimit)
}
