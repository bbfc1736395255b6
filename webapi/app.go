// Package webapi assembles the HTTP application: global middleware,
// the health route, static upload serving and every handler group.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sangamhq/sangam/pkg/config"
	adminsvc "github.com/sangamhq/sangam/pkg/service/admin"
	authsvc "github.com/sangamhq/sangam/pkg/service/auth"
	fundssvc "github.com/sangamhq/sangam/pkg/service/funds"
	membersvc "github.com/sangamhq/sangam/pkg/service/member"
	"github.com/sangamhq/sangam/pkg/service/registration"
	"github.com/sangamhq/sangam/pkg/storage"
	"github.com/sangamhq/sangam/webapi/admin"
	"github.com/sangamhq/sangam/webapi/auth"
	"github.com/sangamhq/sangam/webapi/common"
	"github.com/sangamhq/sangam/webapi/funds"
	"github.com/sangamhq/sangam/webapi/member"
	"github.com/sangamhq/sangam/webapi/profile"
)

// Deps bundles everything the HTTP layer needs.
type Deps struct {
	Cfg          *config.App
	Auth         *authsvc.Service
	Registration *registration.Service
	Funds        *fundssvc.Service
	Member       *membersvc.Service
	Admin        *adminsvc.Service
	Storage      storage.Storage
}

// NewApp builds the Fiber application with all routes registered.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", nil,
				err.Error(), status)
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        deps.Cfg.RateLimit.MaxRequests,
		Expiration: deps.Cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil,
				"Rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Community App API is running")
	})

	// Uploaded files and generated documents are served straight from
	// the local upload directory under their stored references.
	if deps.Cfg.Uploads.Backend == "local" {
		app.Static(deps.Cfg.Uploads.BaseURL, deps.Cfg.Uploads.Dir)
	}

	auth.Routes(app, deps.Auth, deps.Cfg)
	profile.Routes(app, deps.Registration, deps.Auth, deps.Storage, deps.Cfg)
	admin.Routes(app, deps.Registration, deps.Admin, deps.Auth, deps.Storage, deps.Cfg)
	funds.Routes(app, deps.Funds, deps.Auth, deps.Storage, deps.Cfg)
	member.Routes(app, deps.Member, deps.Auth, deps.Cfg)

	return app
}
