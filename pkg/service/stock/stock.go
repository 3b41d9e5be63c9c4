// Package stock provides symbol search, quotes, history windows and
// close-price forecasting. Quotes go through a short-lived cache;
// forecasts are cached in the database per (symbol, interval, scope)
// and recomputed only on a miss.
package stock

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockfolio/server/infra/cache"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/stock"
	"github.com/stockfolio/server/pkg/domain/stocklist"
	"github.com/stockfolio/server/pkg/repository"
)

// Forecaster produces a forecast from an ascending close series.
type Forecaster interface {
	Predict(ctx context.Context, series []*stock.Candle) ([]stock.PredictionPoint, error)
}

// Service provides stock data operations on top of a UnitOfWork, a
// quote cache and a forecaster.
type Service struct {
	uow        repository.UnitOfWork
	quotes     cache.QuoteCache
	forecaster Forecaster
	quoteTTL   time.Duration
	logger     *slog.Logger
}

// New creates a stock Service.
func New(
	uow repository.UnitOfWork,
	quotes cache.QuoteCache,
	forecaster Forecaster,
	quoteTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:        uow,
		quotes:     quotes,
		forecaster: forecaster,
		quoteTTL:   quoteTTL,
		logger:     logger,
	}
}

// trainingWindow is the span of history fed to the forecaster.
const trainingWindow = "5 years"

// Search returns the symbols matching a case-insensitive substring.
func (s *Service) Search(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrMissingParameters
	}
	repo, err := s.uow.StockRepository()
	if err != nil {
		return nil, err
	}
	return repo.Search(ctx, query)
}

// Quote returns the latest candle for a symbol, served from the cache
// when fresh. Cache failures degrade to a database read.
func (s *Service) Quote(ctx context.Context, symbol string) (*stock.Candle, error) {
	if symbol == "" {
		return nil, domain.ErrMissingParameters
	}
	if c, err := s.quotes.Get(ctx, symbol); err == nil && c != nil {
		return c, nil
	} else if err != nil {
		s.logger.Warn("Quote cache read failed", "symbol", symbol, "error", err)
	}
	repo, err := s.uow.StockRepository()
	if err != nil {
		return nil, err
	}
	c, err := repo.Latest(ctx, symbol, nil)
	if err != nil {
		return nil, err
	}
	if err := s.quotes.Set(ctx, symbol, c, s.quoteTTL); err != nil {
		s.logger.Warn("Quote cache write failed", "symbol", symbol, "error", err)
	}
	return c, nil
}

// History returns the candles of a symbol over a period, anchored at
// the symbol's newest observation. A non-nil scope merges in the
// candles recorded against that stock list; the caller must be able to
// see the list.
func (s *Service) History(
	ctx context.Context,
	callerID uuid.UUID,
	symbol string,
	period stock.Period,
	scope *uuid.UUID,
) ([]*stock.Candle, error) {
	if symbol == "" {
		return nil, domain.ErrMissingParameters
	}
	if scope != nil {
		if err := s.authorizeScope(ctx, callerID, *scope); err != nil {
			return nil, err
		}
	}
	repo, err := s.uow.StockRepository()
	if err != nil {
		return nil, err
	}
	return repo.History(ctx, symbol, period.Interval(), scope)
}

// Predict returns the close-price forecast for a symbol. The result is
// cached per (symbol, interval, scope); a miss runs the forecasting
// subprocess over the training window.
func (s *Service) Predict(
	ctx context.Context,
	callerID uuid.UUID,
	symbol string,
	period stock.Period,
	scope *uuid.UUID,
) ([]stock.PredictionPoint, error) {
	if symbol == "" {
		return nil, domain.ErrMissingParameters
	}
	if scope != nil {
		if err := s.authorizeScope(ctx, callerID, *scope); err != nil {
			return nil, err
		}
	}
	interval := period.Interval()
	predRepo, err := s.uow.PredictionRepository()
	if err != nil {
		return nil, err
	}
	if points, err := predRepo.Get(ctx, symbol, interval, scope); err == nil {
		return points, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("Forecast cache read failed", "symbol", symbol, "error", err)
	}

	stRepo, err := s.uow.StockRepository()
	if err != nil {
		return nil, err
	}
	series, err := stRepo.History(ctx, symbol, trainingWindow, scope)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, domain.ErrNotFound
	}
	points, err := s.forecaster.Predict(ctx, series)
	if err != nil {
		return nil, err
	}
	if err := predRepo.Put(ctx, symbol, interval, scope, points); err != nil {
		s.logger.Warn("Forecast cache write failed", "symbol", symbol, "error", err)
	}
	return points, nil
}

// authorizeScope applies the stock list visibility rules to scoped
// series lookups.
func (s *Service) authorizeScope(ctx context.Context, callerID, slID uuid.UUID) error {
	slRepo, err := s.uow.StockListRepository()
	if err != nil {
		return err
	}
	sl, err := slRepo.Get(ctx, slID)
	if err != nil {
		return err
	}
	if sl.UserID == callerID || sl.Visibility == stocklist.VisibilityPublic {
		return nil
	}
	if sl.Visibility == stocklist.VisibilityShared {
		shRepo, err := s.uow.ShareRepository()
		if err != nil {
			return err
		}
		ok, err := shRepo.Exists(ctx, slID, callerID)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return domain.ErrNotFound
}
