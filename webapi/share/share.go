// Package share exposes the stock list sharing endpoints.
package share

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/pkg/middleware"
	authsvc "github.com/stockfolio/server/pkg/service/auth"
	sharesvc "github.com/stockfolio/server/pkg/service/share"
	"github.com/stockfolio/server/webapi/common"
)

// ShareInput addresses the friend to share with by email.
type ShareInput struct {
	Email string `json:"email" validate:"required,email"`
}

// Routes mounts the sharing endpoints, keyed by stock list id.
func Routes(app *fiber.App, svc *sharesvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	jwt := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/api/share/:id", jwt, Share(svc, authSvc))
	app.Get("/api/share/:id", jwt, ListUsers(svc, authSvc))
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// Share grants a friend access to an owned list.
// @Summary Share a stock list with a friend
// @Tags share
// @Accept json
// @Produce json
// @Param id path string true "Stock list ID"
// @Param request body ShareInput true "Friend email"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/share/{id} [post]
// @Security Bearer
func Share(svc *sharesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ShareInput](c)
		if input == nil {
			return err // error response already written
		}
		if err := svc.Share(c.Context(), userID, id, input.Email); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't share stock list", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Stock list shared", nil)
	}
}

// ListUsers returns who an owned list is shared with.
// @Summary List share recipients
// @Tags share
// @Produce json
// @Param id path string true "Stock list ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/share/{id} [get]
// @Security Bearer
func ListUsers(svc *sharesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		users, err := svc.ListUsers(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list recipients", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Recipients found", users)
	}
}
