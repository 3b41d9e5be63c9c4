package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/pkg/middleware"
	authsvc "github.com/stockfolio/server/pkg/service/auth"
	usersvc "github.com/stockfolio/server/pkg/service/user"
	"github.com/stockfolio/server/webapi/common"
)

// Routes mounts account creation, login and the current-user lookup.
func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/auth/signup", Signup(userSvc))
	app.Post("/auth/login", Login(userSvc, authSvc))
	app.Post("/auth/logout", middleware.JwtProtected(cfg.Auth.Jwt), Logout())
	app.Get("/user/me", middleware.JwtProtected(cfg.Auth.Jwt), Me(userSvc, authSvc))
}

// Signup creates a new account.
// @Summary Create a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupInput true "Account data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /auth/signup [post]
func Signup(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SignupInput](c)
		if input == nil {
			return err // error response already written
		}
		if len(input.Password) > 72 {
			return common.ProblemDetailsJSON(c, "Invalid request body", nil, "Password too long")
		}
		u, err := userSvc.Signup(c.Context(), input.Username, input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", u)
	}
}

// Login verifies credentials and returns a signed token.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Credentials"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err // error response already written
		}
		u, err := userSvc.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			// One generic answer for bad email and bad password alike.
			return common.ProblemDetailsJSON(c, "Invalid credentials", nil, fiber.StatusUnauthorized)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Login failed", err, fiber.StatusInternalServerError)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Logged in", fiber.Map{
			"token": token,
			"user":  u,
		})
	}
}

// Logout acknowledges a logout. Tokens are stateless, so the client
// drops its copy and this endpoint only confirms.
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Router /auth/logout [post]
// @Security Bearer
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Logged out", nil)
	}
}

// Me returns the authenticated user's profile.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /user/me [get]
// @Security Bearer
func Me(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		u, err := userSvc.Get(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User lookup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", u)
	}
}
