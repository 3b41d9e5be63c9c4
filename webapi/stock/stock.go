// Package stock exposes symbol search, quotes, history windows and
// forecasts.
package stock

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/pkg/domain/stock"
	"github.com/stockfolio/server/pkg/middleware"
	authsvc "github.com/stockfolio/server/pkg/service/auth"
	stocksvc "github.com/stockfolio/server/pkg/service/stock"
	"github.com/stockfolio/server/webapi/common"
)

// Routes mounts the stock data endpoints. The fixed segments go before
// the :symbol catch-all.
func Routes(app *fiber.App, svc *stocksvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	jwt := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/api/stock/search", jwt, Search(svc))
	app.Get("/api/stock/history/:symbol", jwt, History(svc, authSvc))
	app.Get("/api/stock/predict/:symbol", jwt, Predict(svc, authSvc))
	app.Get("/api/stock/:symbol", jwt, Quote(svc))
}

func pathSymbol(c *fiber.Ctx) string {
	return strings.ToUpper(strings.TrimSpace(c.Params("symbol")))
}

// scopeQuery reads the optional ?scope=<stock list id> parameter.
func scopeQuery(c *fiber.Ctx) (*uuid.UUID, error) {
	raw := c.Query("scope")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Search returns symbols matching a case-insensitive substring.
// @Summary Search symbols
// @Tags stock
// @Produce json
// @Param q query string true "Substring to match"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/stock/search [get]
// @Security Bearer
func Search(svc *stocksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		symbols, err := svc.Search(c.Context(), c.Query("q"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Search failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Symbols found", symbols)
	}
}

// Quote returns the latest candle for a symbol.
// @Summary Latest quote
// @Tags stock
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/stock/{symbol} [get]
// @Security Bearer
func Quote(svc *stocksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		quote, err := svc.Quote(c.Context(), pathSymbol(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Quote lookup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Quote found", quote)
	}
}

// History returns a symbol's candles over a period, optionally merged
// with the candles recorded against a visible stock list.
// @Summary Price history
// @Tags stock
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Param period query string false "week, month, quarter, 1 year or 5 years"
// @Param scope query string false "Stock list ID to merge recorded candles from"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/stock/history/{symbol} [get]
// @Security Bearer
func History(svc *stocksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		scope, err := scopeQuery(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid scope", err, fiber.StatusBadRequest)
		}
		period := stock.Period(c.Query("period", string(stock.PeriodWeek)))
		candles, err := svc.History(c.Context(), userID, pathSymbol(c), period, scope)
		if err != nil {
			return common.ProblemDetailsJSON(c, "History lookup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "History found", candles)
	}
}

// Predict returns the close-price forecast for a symbol.
// @Summary Close-price forecast
// @Tags stock
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Param period query string false "week, month, quarter, 1 year or 5 years"
// @Param scope query string false "Stock list ID to merge recorded candles from"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/stock/predict/{symbol} [get]
// @Security Bearer
func Predict(svc *stocksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		scope, err := scopeQuery(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid scope", err, fiber.StatusBadRequest)
		}
		period := stock.Period(c.Query("period", string(stock.PeriodWeek)))
		points, err := svc.Predict(c.Context(), userID, pathSymbol(c), period, scope)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Forecast failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Forecast computed", points)
	}
}
