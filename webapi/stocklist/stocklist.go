// Package stocklist exposes the stock list endpoints: CRUD, entry
// upserts, visibility changes, recorded uploads and windowed stats.
package stocklist

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/pkg/domain/stock"
	"github.com/stockfolio/server/pkg/domain/stocklist"
	"github.com/stockfolio/server/pkg/middleware"
	authsvc "github.com/stockfolio/server/pkg/service/auth"
	stocklistsvc "github.com/stockfolio/server/pkg/service/stocklist"
	"github.com/stockfolio/server/webapi/common"
)

// Routes mounts the stock list endpoints. The fixed segments go before
// the :id catch-alls.
func Routes(app *fiber.App, svc *stocklistsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	jwt := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/api/stocklist", jwt, Create(svc, authSvc))
	app.Get("/api/stocklist", jwt, ListOwned(svc, authSvc))
	app.Get("/api/stocklist/shared", jwt, ListShared(svc, authSvc))
	app.Get("/api/stocklist/public", jwt, ListPublic(svc))
	app.Put("/api/stocklist/toggle/:id", jwt, SetVisibility(svc, authSvc))
	app.Post("/api/stocklist/upload/:id", jwt, UploadRecorded(svc, authSvc))
	app.Get("/api/stocklist/stats/:id", jwt, Stats(svc, authSvc))
	app.Get("/api/stocklist/:id", jwt, Get(svc, authSvc))
	app.Put("/api/stocklist/:id", jwt, Rename(svc, authSvc))
	app.Post("/api/stocklist/:id", jwt, SetEntry(svc, authSvc))
	app.Delete("/api/stocklist/:id", jwt, Delete(svc, authSvc))
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// Create creates a standalone stock list.
// @Summary Create a stock list
// @Tags stocklist
// @Accept json
// @Produce json
// @Param request body CreateInput true "List data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/stocklist [post]
// @Security Bearer
func Create(svc *stocklistsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err // error response already written
		}
		sl, err := svc.Create(c.Context(), userID, input.Name, stocklist.Visibility(input.Visibility))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create stock list", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Stock list created", sl)
	}
}

// ListOwned returns the caller's lists.
// @Summary List own stock lists
// @Tags stocklist
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/stocklist [get]
// @Security Bearer
func ListOwned(svc *stocklistsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		lists, err := svc.ListOwned(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list stock lists", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Stock lists found", lists)
	}
}

// ListShared returns lists shared with the caller.
// @Summary List stock lists shared with me
// @Tags stocklist
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/stocklist/shared [get]
// @Security Bearer
func ListShared(svc *stocklistsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		lists, err := svc.ListSharedWith(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list stock lists", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Stock lists found", lists)
	}
}

// ListPublic returns every public list.
// @Summary List public stock lists
// @Tags stocklist
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/stocklist/public [get]
// @Security Bearer
func ListPublic(svc *stocklistsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lists, err := svc.ListPublic(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list stock lists", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Stock lists found", lists)
	}
}

// Get returns a visible list with its entries priced at their latest
// close.
// @Summary Get a stock list
// @Tags stocklist
// @Produce json
// @Param id path string true "Stock list ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/stocklist/{id} [get]
// @Security Bearer
func Get(svc *stocklistsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		sl, holdings, err := svc.GetWithQuotes(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Stock list lookup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Stock list found", fiber.Map{
			"stockList": sl,
			"entries":   holdings,
		})
	}
}

// Rename changes a list's name.
// @Summary Rename a stock list
// @Tags stocklist
// @Accept json
// @Produce json
// @Param id path string true "Stock list ID"
// @Param request body RenameInput true "New name"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/stocklist/{id} [put]
// @Security Bearer
func Rename(svc *stocklistsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[RenameInput](c)
		if input == nil {
			return err // error response already written
		}
		if err := svc.Rename(c.Context(), userID, id, input.Name); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't rename stock list", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Stock list renamed", nil)
	}
}

// SetEntry overwrites the share count for a symbol. Zero removes the
// entry.
// @Summary Set a list entry
// @Tags stocklist
// @Accept json
// @Produce json
// @Param id path string true "Stock list ID"
// @Param request body EntryInput true "Symbol and amount"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/stocklist/{id} [post]
// @Security Bearer
func SetEntry(svc *stocklistsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[EntryInput](c)
		if input == nil {
			return err // error response already written
		}
		h, err := svc.SetEntry(c.Context(), userID, id, input.Symbol, input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't set entry", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Entry set", h)
	}
}

// Delete removes one entry when a symbol is posted, otherwise the
// whole list with everything hanging off it.
// @Summary Delete a stock list or one of its entries
// @Tags stocklist
// @Accept json
// @Produce json
// @Param id path string true "Stock list ID"
// @Param request body DeleteEntryInput false "Optional symbol"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/stocklist/{id} [delete]
// @Security Bearer
func Delete(svc *stocklistsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		var input DeleteEntryInput
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return common.ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
			}
		}
		if input.Symbol != "" {
			if err := svc.DeleteEntry(c.Context(), userID, id, input.Symbol); err != nil {
				return common.ProblemDetailsJSON(c, "Couldn't delete entry", err)
			}
			return common.SuccessResponseJSON(c, fiber.StatusOK, "Entry deleted", nil)
		}
		if err := svc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete stock list", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Stock list deleted", nil)
	}
}

// SetVisibility moves a list between private, shared and public.
// @Summary Change list visibility
// @Tags stocklist
// @Accept json
// @Produce json
// @Param id path string true "Stock list ID"
// @Param request body VisibilityInput true "New visibility"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/stocklist/toggle/{id} [put]
// @Security Bearer
func SetVisibility(svc *stocklistsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[VisibilityInput](c)
		if input == nil {
			return err // error response already written
		}
		if err := svc.SetVisibility(c.Context(), userID, id, stocklist.Visibility(input.Visibility)); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't change visibility", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Visibility changed", nil)
	}
}

// UploadRecorded appends user-recorded candles to a list's series.
// @Summary Upload recorded candles
// @Tags stocklist
// @Accept json
// @Produce json
// @Param id path string true "Stock list ID"
// @Param request body UploadInput true "Candles"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/stocklist/upload/{id} [post]
// @Security Bearer
func UploadRecorded(svc *stocklistsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[UploadInput](c)
		if input == nil {
			return err // error response already written
		}
		candles := make([]stock.Candle, len(input.Candles))
		for i, in := range input.Candles {
			candles[i] = stock.Candle{
				Symbol:    in.Symbol,
				Timestamp: in.Timestamp,
				Open:      in.Open,
				High:      in.High,
				Low:       in.Low,
				Close:     in.Close,
				Volume:    in.Volume,
			}
		}
		if err := svc.UploadRecorded(c.Context(), userID, id, candles); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't upload candles", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Candles uploaded", fiber.Map{
			"count": len(candles),
		})
	}
}

// Stats returns the amount-weighted performance of a visible list.
// @Summary Stock list performance stats
// @Tags stocklist
// @Produce json
// @Param id path string true "Stock list ID"
// @Param period query string false "week, month, quarter, 1 year or 5 years"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/stocklist/stats/{id} [get]
// @Security Bearer
func Stats(svc *stocklistsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := pathID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid stock list ID", err, fiber.StatusBadRequest)
		}
		period := stock.Period(c.Query("period", string(stock.PeriodWeek)))
		stats, err := svc.Stats(c.Context(), userID, id, period)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't compute stats", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Stats computed", stats)
	}
}
