// Package webapi wires the HTTP surface of the pricing service.
package webapi

import (
	"time"

	"github.com/amirasaad/brokerage/pkg/app"
	"github.com/amirasaad/brokerage/webapi/common"
	pricingapi "github.com/amirasaad/brokerage/webapi/pricing"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gofiber/swagger"
)

// SetupApp builds the Fiber application with middleware, the metrics
// endpoint and the pricing routes.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled: true,
	}))

	fiberApp.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        50,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	fiberApp.Use(recover.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	pricingapi.Routes(fiberApp, a.Pricing, a.Deps.Rules)

	return fiberApp
}
