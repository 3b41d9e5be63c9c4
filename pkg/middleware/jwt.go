// Package middleware holds the Fiber middleware shared by the route
// packages.
package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/webapi/common"
)

// JwtProtected verifies the bearer token and stores it in
// c.Locals("user") for the handlers.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(
				c, "Unauthorized", err, fiber.StatusUnauthorized)
		},
	})
}
