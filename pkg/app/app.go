// Package app wires the services from their shared dependencies.
package app

import (
	"log/slog"

	"github.com/stockfolio/server/infra/cache"
	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/pkg/repository"
	"github.com/stockfolio/server/pkg/service/auth"
	"github.com/stockfolio/server/pkg/service/friend"
	"github.com/stockfolio/server/pkg/service/portfolio"
	"github.com/stockfolio/server/pkg/service/review"
	"github.com/stockfolio/server/pkg/service/share"
	"github.com/stockfolio/server/pkg/service/stock"
	"github.com/stockfolio/server/pkg/service/stocklist"
	"github.com/stockfolio/server/pkg/service/user"
)

// Deps contains the shared dependencies the services are built from.
type Deps struct {
	Uow        repository.UnitOfWork
	QuoteCache cache.QuoteCache
	Forecaster stock.Forecaster
	Logger     *slog.Logger
}

// App holds the wired services.
type App struct {
	Deps   *Deps
	Config *config.App

	AuthService      *auth.Service
	UserService      *user.Service
	PortfolioService *portfolio.Service
	StockListService *stocklist.Service
	StockService     *stock.Service
	FriendService    *friend.Service
	ReviewService    *review.Service
	ShareService     *share.Service
}

// New wires every service.
func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:             deps,
		Config:           cfg,
		AuthService:      auth.New(cfg.Auth.Jwt, deps.Logger),
		UserService:      user.New(deps.Uow, deps.Logger),
		PortfolioService: portfolio.New(deps.Uow, deps.Logger),
		StockListService: stocklist.New(deps.Uow, deps.Logger),
		StockService: stock.New(
			deps.Uow, deps.QuoteCache, deps.Forecaster, cfg.QuoteCache.TTL, deps.Logger),
		FriendService: friend.New(deps.Uow, deps.Logger),
		ReviewService: review.New(deps.Uow, deps.Logger),
		ShareService:  share.New(deps.Uow, deps.Logger),
	}
}
