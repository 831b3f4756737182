// Package webapi assembles the Fiber apps for the banking workloads:
//   - deposit: open accounts, deposit, withdraw, transfer, statements
//   - mortgage: open accounts, pay down the balance, statements
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/finlabs/pkg/config"
	accountsvc "github.com/amirasaad/finlabs/pkg/service/account"
	accountweb "github.com/amirasaad/finlabs/webapi/account"
	"github.com/amirasaad/finlabs/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(deps *config.Deps, variant accountweb.Variant) *fiber.App {
	accountSvc := accountsvc.NewService(*deps)
	cfg := deps.Config

	fiberApp := fiber.New(fiber.Config{
		AppName: "finlabs-" + string(variant),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Uses X-Forwarded-For header when behind the load balancer, then
	// X-Real-IP, then the peer address.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", accountweb.Status(variant))
	accountweb.Routes(fiberApp, accountSvc, variant)

	fiberApp.Use(func(c *fiber.Ctx) error {
		return common.ProblemDetailsJSON(c, "Not Found", fiber.ErrNotFound, "no route for "+c.Path())
	})
	return fiberApp
}
