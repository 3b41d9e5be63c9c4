package common

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	authsvc "github.com/stockfolio/server/pkg/service/auth"
)

// UserIDFromContext reads the verified token stored by the JWT
// middleware and extracts the caller's id.
func UserIDFromContext(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return authSvc.CurrentUserID(token)
}
