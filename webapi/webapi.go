// Package webapi provides the HTTP surface. It is organized into
// sub-packages per aggregate:
// - user: signup, login and the current-user lookup
// - portfolio: portfolio CRUD, cash movements and market orders
// - stocklist: list CRUD, entries, visibility, uploads and stats
// - stock: search, quotes, history and forecasts
// - friend: the friend request lifecycle
// - review: stock list reviews
// - share: stock list sharing
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stockfolio/server/pkg/app"
	"github.com/stockfolio/server/webapi/common"
	friendweb "github.com/stockfolio/server/webapi/friend"
	portfolioweb "github.com/stockfolio/server/webapi/portfolio"
	reviewweb "github.com/stockfolio/server/webapi/review"
	shareweb "github.com/stockfolio/server/webapi/share"
	stockweb "github.com/stockfolio/server/webapi/stock"
	stocklistweb "github.com/stockfolio/server/webapi/stocklist"
	userweb "github.com/stockfolio/server/webapi/user"
)

// SetupApp initializes Fiber with the shared middleware and mounts
// every route group.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Rate limiting keys on X-Forwarded-For when behind a proxy,
	// falling back to X-Real-IP and the direct IP.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
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

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Stockfolio API is running")
	})

	userweb.Routes(fiberApp, a.UserService, a.AuthService, a.Config)
	portfolioweb.Routes(fiberApp, a.PortfolioService, a.AuthService, a.Config)
	stocklistweb.Routes(fiberApp, a.StockListService, a.AuthService, a.Config)
	stockweb.Routes(fiberApp, a.StockService, a.AuthService, a.Config)
	friendweb.Routes(fiberApp, a.FriendService, a.AuthService, a.Config)
	reviewweb.Routes(fiberApp, a.ReviewService, a.AuthService, a.Config)
	shareweb.Routes(fiberApp, a.ShareService, a.AuthService, a.Config)
	return fiberApp
}
