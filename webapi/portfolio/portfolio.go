// Package portfolio exposes the portfolio endpoints: CRUD, cash
// movements, transfers and market orders.
package portfolio

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/pkg/domain/money"
	"github.com/stockfolio/server/pkg/middleware"
	authsvc "github.com/stockfolio/server/pkg/service/auth"
	portfoliosvc "github.com/stockfolio/server/pkg/service/portfolio"
	"github.com/stockfolio/server/webapi/common"
)

// Routes mounts the portfolio endpoints. Everything requires a token.
func Routes(app *fiber.App, svc *portfoliosvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	jwt := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/api/portfolio", jwt, Create(svc, authSvc))
	app.Get("/api/portfolio", jwt, List(svc, authSvc))
	app.Get("/api/portfolio/:id", jwt, Get(svc, authSvc))
	app.Put("/api/portfolio/:id", jwt, Rename(svc, authSvc))
	app.Delete("/api/portfolio/:id", jwt, Delete(svc, authSvc))
	app.Put("/api/portfolio/modifyFund/:id", jwt, ModifyFunds(svc, authSvc))
	app.Put("/api/portfolio/transfer/:id", jwt, Transfer(svc, authSvc))
	app.Post("/api/portfolio/buy/:id", jwt, Buy(svc, authSvc))
	app.Post("/api/portfolio/sell/:id", jwt, Sell(svc, authSvc))
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// Create opens a portfolio with a zero cash balance.
// @Summary Create a portfolio
// @Tags portfolio
// @Accept json
// @Produce json
// @Param request body CreateInput true "Portfolio data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/portfolio [post]
// @Security Bearer
func Create(svc *portfoliosvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err // error response already written
		}
		p, err := svc.Create(c.Context(), userID, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create portfolio", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Portfolio created", p)
	}
}

// List returns the caller's portfolios. With ?performance=true each
// entry carries its weighted day and year-to-date performance.
// @Summary List portfolios
// @Tags portfolio
// @Produce json
// @Param performance query bool false "Include performance figures"
// @Success 200 {object} common.Response
// @Router /api/portfolio [get]
// @Security Bearer
func List(svc *portfoliosvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		if c.QueryBool("performance") {
			entries, err := svc.ListWithPerformance(c.Context(), userID)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Couldn't list portfolios", err)
			}
			return common.SuccessResponseJSON(c, fiber.StatusOK, "Portfolios found", entries)
		}
		portfolios, err := svc.List(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list portfolios", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Portfolios found", portfolios)
	}
}

// Get returns one portfolio with its holdings priced at their latest
// close.
// @Summary Get a portfolio
// @Tags portfolio
// @Produce json
// @Param id path string true "Portfolio ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/portfolio/{id} [get]
// @Security Bearer
func Get(svc *portfoliosvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid portfolio ID", err, fiber.StatusBadRequest)
		}
		p, holdings, err := svc.GetWithHoldings(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Portfolio lookup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Portfolio found", fiber.Map{
			"portfolio": p,
			"holdings":  holdings,
		})
	}
}

// Rename changes a portfolio's name.
// @Summary Rename a portfolio
// @Tags portfolio
// @Accept json
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param request body RenameInput true "New name"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/portfolio/{id} [put]
// @Security Bearer
func Rename(svc *portfoliosvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid portfolio ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[RenameInput](c)
		if input == nil {
			return err // error response already written
		}
		if err := svc.Rename(c.Context(), userID, id, input.Name); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't rename portfolio", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Portfolio renamed", nil)
	}
}

// Delete removes a portfolio and its backing stock list.
// @Summary Delete a portfolio
// @Tags portfolio
// @Produce json
// @Param id path string true "Portfolio ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/portfolio/{id} [delete]
// @Security Bearer
func Delete(svc *portfoliosvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid portfolio ID", err, fiber.StatusBadRequest)
		}
		if err := svc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete portfolio", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Portfolio deleted", nil)
	}
}

// ModifyFunds deposits or withdraws cash. A negative amount withdraws;
// overdrawing fails with a 400.
// @Summary Deposit or withdraw cash
// @Tags portfolio
// @Accept json
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param request body ModifyFundsInput true "Signed amount"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/portfolio/modifyFund/{id} [put]
// @Security Bearer
func ModifyFunds(svc *portfoliosvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid portfolio ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ModifyFundsInput](c)
		if input == nil {
			return err // error response already written
		}
		delta, err := money.Parse(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		p, err := svc.ModifyFunds(c.Context(), userID, id, delta)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't modify funds", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Funds modified", p)
	}
}

// Transfer moves cash between two of the caller's portfolios.
// @Summary Transfer cash between portfolios
// @Tags portfolio
// @Accept json
// @Produce json
// @Param id path string true "Source portfolio ID"
// @Param request body TransferInput true "Destination and amount"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/portfolio/transfer/{id} [put]
// @Security Bearer
func Transfer(svc *portfoliosvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		fromID, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid portfolio ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[TransferInput](c)
		if input == nil {
			return err // error response already written
		}
		toID, err := uuid.Parse(input.To)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid destination ID", err, fiber.StatusBadRequest)
		}
		amount, err := money.Parse(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		from, err := svc.Transfer(c.Context(), userID, fromID, toID, amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer complete", from)
	}
}

// Buy purchases shares at the latest close.
// @Summary Buy shares
// @Tags portfolio
// @Accept json
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param request body TradeInput true "Symbol and share count"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/portfolio/buy/{id} [post]
// @Security Bearer
func Buy(svc *portfoliosvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid portfolio ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[TradeInput](c)
		if input == nil {
			return err // error response already written
		}
		p, h, err := svc.Buy(c.Context(), userID, id, input.Symbol, input.Shares)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Buy failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Buy complete", fiber.Map{
			"portfolio": p,
			"holding":   h,
		})
	}
}

// Sell sells shares at the latest close.
// @Summary Sell shares
// @Tags portfolio
// @Accept json
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param request body TradeInput true "Symbol and share count"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/portfolio/sell/{id} [post]
// @Security Bearer
func Sell(svc *portfoliosvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid portfolio ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[TradeInput](c)
		if input == nil {
			return err // error response already written
		}
		p, err := svc.Sell(c.Context(), userID, id, input.Symbol, input.Shares)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Sell failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Sell complete", p)
	}
}
