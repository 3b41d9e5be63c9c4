// Package friend exposes the friend request lifecycle.
package friend

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/pkg/middleware"
	authsvc "github.com/stockfolio/server/pkg/service/auth"
	friendsvc "github.com/stockfolio/server/pkg/service/friend"
	"github.com/stockfolio/server/webapi/common"
)

// RequestInput addresses a friend request by email.
type RequestInput struct {
	Email string `json:"email" validate:"required,email"`
}

// Routes mounts the friendship endpoints.
func Routes(app *fiber.App, svc *friendsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	jwt := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/friend", jwt, ListFriends(svc, authSvc))
	app.Post("/friend/request", jwt, SendRequest(svc, authSvc))
	app.Get("/friend/requests/incoming", jwt, ListIncoming(svc, authSvc))
	app.Get("/friend/requests/outgoing", jwt, ListOutgoing(svc, authSvc))
	app.Put("/friend/accept/:id", jwt, Accept(svc, authSvc))
	app.Put("/friend/reject/:id", jwt, Reject(svc, authSvc))
	app.Delete("/friend/:id", jwt, Remove(svc, authSvc))
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// ListFriends returns the caller's friends.
// @Summary List friends
// @Tags friend
// @Produce json
// @Success 200 {object} common.Response
// @Router /friend [get]
// @Security Bearer
func ListFriends(svc *friendsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		friends, err := svc.ListFriends(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list friends", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Friends found", friends)
	}
}

// SendRequest sends a friend request to the user with the given email.
// @Summary Send a friend request
// @Tags friend
// @Accept json
// @Produce json
// @Param request body RequestInput true "Recipient email"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /friend/request [post]
// @Security Bearer
func SendRequest(svc *friendsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[RequestInput](c)
		if input == nil {
			return err // error response already written
		}
		if err := svc.SendRequest(c.Context(), userID, input.Email); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't send request", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Request sent", nil)
	}
}

// ListIncoming returns the pending requests addressed to the caller.
// @Summary List incoming friend requests
// @Tags friend
// @Produce json
// @Success 200 {object} common.Response
// @Router /friend/requests/incoming [get]
// @Security Bearer
func ListIncoming(svc *friendsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		requests, err := svc.ListIncoming(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list requests", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Requests found", requests)
	}
}

// ListOutgoing returns the requests the caller has sent.
// @Summary List outgoing friend requests
// @Tags friend
// @Produce json
// @Success 200 {object} common.Response
// @Router /friend/requests/outgoing [get]
// @Security Bearer
func ListOutgoing(svc *friendsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		requests, err := svc.ListOutgoing(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list requests", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Requests found", requests)
	}
}

// Accept accepts a pending request sent by the user in the path.
// @Summary Accept a friend request
// @Tags friend
// @Produce json
// @Param id path string true "Sender user ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /friend/accept/{id} [put]
// @Security Bearer
func Accept(svc *friendsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		fromID, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusBadRequest)
		}
		if err := svc.Accept(c.Context(), userID, fromID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't accept request", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Request accepted", nil)
	}
}

// Reject rejects a pending request sent by the user in the path.
// @Summary Reject a friend request
// @Tags friend
// @Produce json
// @Param id path string true "Sender user ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /friend/reject/{id} [put]
// @Security Bearer
func Reject(svc *friendsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		fromID, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusBadRequest)
		}
		if err := svc.Reject(c.Context(), userID, fromID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't reject request", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Request rejected", nil)
	}
}

// Remove unfriends the user in the path.
// @Summary Remove a friend
// @Tags friend
// @Produce json
// @Param id path string true "Friend user ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /friend/{id} [delete]
// @Security Bearer
func Remove(svc *friendsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		otherID, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusBadRequest)
		}
		if err := svc.Remove(c.Context(), userID, otherID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't remove friend", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Friend removed", nil)
	}
}
