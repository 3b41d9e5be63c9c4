// Package review exposes the stock list review endpoints.
package review

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/pkg/middleware"
	authsvc "github.com/stockfolio/server/pkg/service/auth"
	reviewsvc "github.com/stockfolio/server/pkg/service/review"
	"github.com/stockfolio/server/webapi/common"
)

// ContentInput is the review body, at most 4000 characters.
type ContentInput struct {
	Content string `json:"content" validate:"required,max=4000"`
}

// Routes mounts the review endpoints, keyed by stock list id. One
// review per user per list.
func Routes(app *fiber.App, svc *reviewsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	jwt := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/api/review/:id", jwt, List(svc, authSvc))
	app.Post("/api/review/:id", jwt, Create(svc, authSvc))
	app.Put("/api/review/:id", jwt, Update(svc, authSvc))
	app.Delete("/api/review/:id", jwt, Delete(svc, authSvc))
	app.Delete("/api/review/:id/:userId", jwt, DeleteAsOwner(svc, authSvc))
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// List returns the reviews of a visible list.
// @Summary List reviews
// @Tags review
// @Produce json
// @Param id path string true "Stock list ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/review/{id} [get]
// @Security Bearer
func List(svc *reviewsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		reviews, err := svc.List(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list reviews", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Reviews found", reviews)
	}
}

// Create posts the caller's review on a visible list.
// @Summary Post a review
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "Stock list ID"
// @Param request body ContentInput true "Review content"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/review/{id} [post]
// @Security Bearer
func Create(svc *reviewsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ContentInput](c)
		if input == nil {
			return err // error response already written
		}
		rev, err := svc.Create(c.Context(), userID, id, input.Content)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't post review", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Review posted", rev)
	}
}

// Update replaces the caller's review on a list.
// @Summary Update own review
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "Stock list ID"
// @Param request body ContentInput true "New content"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/review/{id} [put]
// @Security Bearer
func Update(svc *reviewsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ContentInput](c)
		if input == nil {
			return err // error response already written
		}
		rev, err := svc.Update(c.Context(), userID, id, input.Content)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update review", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Review updated", rev)
	}
}

// Delete removes the caller's own review.
// @Summary Delete own review
// @Tags review
// @Produce json
// @Param id path string true "Stock list ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/review/{id} [delete]
// @Security Bearer
func Delete(svc *reviewsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		if err := svc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete review", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Review deleted", nil)
	}
}

// DeleteAsOwner lets the list owner moderate someone else's review.
// @Summary Delete a review as list owner
// @Tags review
// @Produce json
// @Param id path string true "Stock list ID"
// @Param userId path string true "Reviewer user ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/review/{id}/{userId} [delete]
// @Security Bearer
func DeleteAsOwner(svc *reviewsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		reviewerID, err := uuid.Parse(c.Params("userId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusBadRequest)
		}
		if err := svc.DeleteAsOwner(c.Context(), userID, id, reviewerID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete review", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Review deleted", nil)
	}
}
