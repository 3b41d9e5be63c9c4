// Package stocklist provides the business logic for stock lists:
// creation, entry upserts, visibility, deletion with its cascade and
// the windowed performance stats.
//
// Access control lives here. A list is readable by its owner, by
// anyone when public, and by users it was shared with when shared.
package stocklist

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/stock"
	"github.com/stockfolio/server/pkg/domain/stocklist"
	"github.com/stockfolio/server/pkg/repository"
)

// Service provides stock list operations on top of a UnitOfWork.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a stock list Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create creates a standalone stock list.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	visibility stocklist.Visibility,
) (*stocklist.StockList, error) {
	if name == "" {
		return nil, domain.ErrMissingParameters
	}
	if visibility == "" {
		visibility = stocklist.VisibilityPrivate
	}
	if !visibility.Valid() {
		return nil, domain.ErrValidation
	}
	repo, err := s.uow.StockListRepository()
	if err != nil {
		return nil, err
	}
	sl := &stocklist.StockList{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		Visibility: visibility,
		CreatedAt:  time.Now(),
	}
	if err := repo.Create(ctx, sl); err != nil {
		return nil, err
	}
	s.logger.Info("Stock list created", "userID", userID, "stockListID", sl.ID)
	return sl, nil
}

// Get returns a list the caller is allowed to see.
func (s *Service) Get(ctx context.Context, callerID, slID uuid.UUID) (*stocklist.StockList, error) {
	repo, err := s.uow.StockListRepository()
	if err != nil {
		return nil, err
	}
	sl, err := repo.Get(ctx, slID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, callerID, sl); err != nil {
		return nil, err
	}
	return sl, nil
}

// GetWithQuotes returns a visible list together with its holdings and
// their latest quotes.
func (s *Service) GetWithQuotes(
	ctx context.Context,
	callerID, slID uuid.UUID,
) (*stocklist.StockList, []*repository.HoldingQuote, error) {
	sl, err := s.Get(ctx, callerID, slID)
	if err != nil {
		return nil, nil, err
	}
	hRepo, err := s.uow.HoldingRepository()
	if err != nil {
		return nil, nil, err
	}
	holdings, err := hRepo.ListWithQuotes(ctx, slID)
	if err != nil {
		return nil, nil, err
	}
	return sl, holdings, nil
}

// authorizeRead enforces the visibility rules. Failures surface as
// domain.ErrNotFound so callers cannot probe for foreign list ids.
func (s *Service) authorizeRead(ctx context.Context, callerID uuid.UUID, sl *stocklist.StockList) error {
	if sl.UserID == callerID {
		return nil
	}
	switch sl.Visibility {
	case stocklist.VisibilityPublic:
		return nil
	case stocklist.VisibilityShared:
		shRepo, err := s.uow.ShareRepository()
		if err != nil {
			return err
		}
		ok, err := shRepo.Exists(ctx, sl.ID, callerID)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return domain.ErrNotFound
}

// ListOwned returns the caller's lists.
func (s *Service) ListOwned(ctx context.Context, userID uuid.UUID) ([]*stocklist.StockList, error) {
	repo, err := s.uow.StockListRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListOwned(ctx, userID)
}

// ListSharedWith returns lists shared with the caller.
func (s *Service) ListSharedWith(ctx context.Context, userID uuid.UUID) ([]*stocklist.StockList, error) {
	repo, err := s.uow.StockListRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListSharedWith(ctx, userID)
}

// ListPublic returns every public list.
func (s *Service) ListPublic(ctx context.Context) ([]*stocklist.StockList, error) {
	repo, err := s.uow.StockListRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListPublic(ctx)
}

// Rename changes a list's name.
func (s *Service) Rename(ctx context.Context, userID, slID uuid.UUID, name string) error {
	if name == "" {
		return domain.ErrMissingParameters
	}
	repo, err := s.uow.StockListRepository()
	if err != nil {
		return err
	}
	return repo.Rename(ctx, userID, slID, name)
}

// SetVisibility moves an owned list between private, shared and
// public. Going private revokes nothing; share rows stay dormant until
// the list is shared again.
func (s *Service) SetVisibility(ctx context.Context, userID, slID uuid.UUID, v stocklist.Visibility) error {
	if !v.Valid() {
		return domain.ErrValidation
	}
	repo, err := s.uow.StockListRepository()
	if err != nil {
		return err
	}
	if _, err := repo.GetOwned(ctx, userID, slID); err != nil {
		return err
	}
	return repo.SetVisibility(ctx, slID, v)
}

// SetEntry overwrites the share count for a symbol, inserting the row
// if absent. An amount of zero removes the entry.
func (s *Service) SetEntry(
	ctx context.Context,
	userID, slID uuid.UUID,
	symbol string,
	amount int64,
) (*stocklist.Holding, error) {
	if err := stocklist.ValidateEntry(symbol, amount); err != nil {
		return nil, err
	}
	slRepo, err := s.uow.StockListRepository()
	if err != nil {
		return nil, err
	}
	if _, err := slRepo.GetOwned(ctx, userID, slID); err != nil {
		return nil, err
	}
	hRepo, err := s.uow.HoldingRepository()
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		if err := hRepo.Delete(ctx, slID, symbol); err != nil {
			return nil, err
		}
		return &stocklist.Holding{StockListID: slID, Symbol: symbol, Amount: 0}, nil
	}
	return hRepo.Set(ctx, slID, symbol, amount)
}

// DeleteEntry removes one symbol from an owned list.
func (s *Service) DeleteEntry(ctx context.Context, userID, slID uuid.UUID, symbol string) error {
	if symbol == "" {
		return domain.ErrMissingParameters
	}
	slRepo, err := s.uow.StockListRepository()
	if err != nil {
		return err
	}
	if _, err := slRepo.GetOwned(ctx, userID, slID); err != nil {
		return err
	}
	hRepo, err := s.uow.HoldingRepository()
	if err != nil {
		return err
	}
	return hRepo.Delete(ctx, slID, symbol)
}

// Delete removes an owned list and everything hanging off it in one
// transaction: holdings, recorded candles, reviews, shares and cached
// forecasts.
func (s *Service) Delete(ctx context.Context, userID, slID uuid.UUID) (err error) {
	log := s.logger.With("userID", userID, "stockListID", slID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		slRepo, err := uow.StockListRepository()
		if err != nil {
			return err
		}
		if _, err := slRepo.GetOwned(ctx, userID, slID); err != nil {
			return err
		}
		hRepo, err := uow.HoldingRepository()
		if err != nil {
			return err
		}
		if err := hRepo.DeleteAll(ctx, slID); err != nil {
			return err
		}
		stRepo, err := uow.StockRepository()
		if err != nil {
			return err
		}
		if err := stRepo.DeleteRecorded(ctx, slID); err != nil {
			return err
		}
		rRepo, err := uow.ReviewRepository()
		if err != nil {
			return err
		}
		if err := rRepo.DeleteAllForList(ctx, slID); err != nil {
			return err
		}
		shRepo, err := uow.ShareRepository()
		if err != nil {
			return err
		}
		if err := shRepo.DeleteAllForList(ctx, slID); err != nil {
			return err
		}
		predRepo, err := uow.PredictionRepository()
		if err != nil {
			return err
		}
		if err := predRepo.DeleteScope(ctx, slID); err != nil {
			return err
		}
		return slRepo.Delete(ctx, userID, slID)
	})
	if err != nil {
		log.Error("Delete stock list failed", "error", err)
		return err
	}
	log.Info("Stock list deleted")
	return nil
}

// UploadRecorded appends user-recorded candles to an owned list's
// series and invalidates the cached forecasts for that scope.
func (s *Service) UploadRecorded(
	ctx context.Context,
	userID, slID uuid.UUID,
	candles []stock.Candle,
) (err error) {
	if len(candles) == 0 {
		return domain.ErrMissingParameters
	}
	for _, c := range candles {
		if err := stock.ValidateCandle(c); err != nil {
			return err
		}
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		slRepo, err := uow.StockListRepository()
		if err != nil {
			return err
		}
		if _, err := slRepo.GetOwned(ctx, userID, slID); err != nil {
			return err
		}
		stRepo, err := uow.StockRepository()
		if err != nil {
			return err
		}
		if err := stRepo.AppendRecorded(ctx, slID, candles); err != nil {
			return err
		}
		// New observations change the scoped series, so stale forecasts
		// must not be served.
		predRepo, err := uow.PredictionRepository()
		if err != nil {
			return err
		}
		return predRepo.DeleteScope(ctx, slID)
	})
	if err != nil {
		s.logger.Error("UploadRecorded failed",
			"userID", userID, "stockListID", slID, "error", err)
		return err
	}
	s.logger.Info("Recorded candles uploaded",
		"userID", userID, "stockListID", slID, "count", len(candles))
	return nil
}

// Stats returns the amount-weighted performance of a visible list over
// a period.
func (s *Service) Stats(
	ctx context.Context,
	callerID, slID uuid.UUID,
	period stock.Period,
) (*repository.StockListStats, error) {
	if _, err := s.Get(ctx, callerID, slID); err != nil {
		return nil, err
	}
	repo, err := s.uow.StockListRepository()
	if err != nil {
		return nil, err
	}
	return repo.Stats(ctx, slID, period.Interval())
}
