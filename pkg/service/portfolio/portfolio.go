// Package portfolio provides the business logic for portfolio
// management: creation with its backing stock list, cash movements,
// transfers between portfolios and market buy/sell orders.
//
// Every mutation that touches more than one row runs inside a unit of
// work so the statements commit or roll back together. Cash updates go
// through the storage layer's conditional update, which is what makes
// concurrent withdrawals safe.
package portfolio

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/money"
	"github.com/stockfolio/server/pkg/domain/portfolio"
	"github.com/stockfolio/server/pkg/domain/stocklist"
	"github.com/stockfolio/server/pkg/repository"
)

// Service provides portfolio operations on top of a UnitOfWork.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a portfolio Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create creates a portfolio together with its backing private stock
// list in one transaction.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (p *portfolio.Portfolio, err error) {
	if name == "" {
		return nil, domain.ErrMissingParameters
	}
	log := s.logger.With("userID", userID, "name", name)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		slRepo, err := uow.StockListRepository()
		if err != nil {
			return err
		}
		pRepo, err := uow.PortfolioRepository()
		if err != nil {
			return err
		}
		now := time.Now()
		sl := &stocklist.StockList{
			ID:         uuid.New(),
			UserID:     userID,
			Name:       name,
			Visibility: stocklist.VisibilityPrivate,
			CreatedAt:  now,
		}
		if err := slRepo.Create(ctx, sl); err != nil {
			return err
		}
		p = &portfolio.Portfolio{
			ID:          uuid.New(),
			UserID:      userID,
			StockListID: sl.ID,
			Name:        name,
			Cash:        money.Zero,
			CreatedAt:   now,
		}
		return pRepo.Create(ctx, p)
	})
	if err != nil {
		log.Error("Create portfolio failed", "error", err)
		return nil, err
	}
	log.Info("Portfolio created", "portfolioID", p.ID)
	return p, nil
}

// Get retrieves one of the caller's portfolios.
func (s *Service) Get(ctx context.Context, userID, portID uuid.UUID) (*portfolio.Portfolio, error) {
	repo, err := s.uow.PortfolioRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, userID, portID)
}

// GetWithHoldings retrieves a portfolio together with its holdings and
// their latest quotes.
func (s *Service) GetWithHoldings(
	ctx context.Context,
	userID, portID uuid.UUID,
) (*portfolio.Portfolio, []*repository.HoldingQuote, error) {
	pRepo, err := s.uow.PortfolioRepository()
	if err != nil {
		return nil, nil, err
	}
	p, err := pRepo.Get(ctx, userID, portID)
	if err != nil {
		return nil, nil, err
	}
	hRepo, err := s.uow.HoldingRepository()
	if err != nil {
		return nil, nil, err
	}
	holdings, err := hRepo.ListWithQuotes(ctx, p.StockListID)
	if err != nil {
		return nil, nil, err
	}
	return p, holdings, nil
}

// List returns the caller's portfolios.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*portfolio.Portfolio, error) {
	repo, err := s.uow.PortfolioRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, userID)
}

// ListWithPerformance returns the caller's portfolios with their
// weighted day and year-to-date performance.
func (s *Service) ListWithPerformance(ctx context.Context, userID uuid.UUID) ([]*repository.PortfolioPerformance, error) {
	repo, err := s.uow.PortfolioRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByUserWithPerformance(ctx, userID)
}

// Rename changes a portfolio's name. The (user, name) pair stays
// unique; a clash surfaces as domain.ErrConflict.
func (s *Service) Rename(ctx context.Context, userID, portID uuid.UUID, name string) error {
	if name == "" {
		return domain.ErrMissingParameters
	}
	repo, err := s.uow.PortfolioRepository()
	if err != nil {
		return err
	}
	return repo.Rename(ctx, userID, portID, name)
}

// Delete removes a portfolio and cascades over its backing stock list:
// holdings, recorded candles, reviews, shares and cached forecasts all
// go in the same transaction.
func (s *Service) Delete(ctx context.Context, userID, portID uuid.UUID) (err error) {
	log := s.logger.With("userID", userID, "portfolioID", portID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		pRepo, err := uow.PortfolioRepository()
		if err != nil {
			return err
		}
		slID, err := pRepo.Delete(ctx, userID, portID)
		if err != nil {
			return err
		}
		return deleteListCascade(ctx, uow, userID, slID)
	})
	if err != nil {
		log.Error("Delete portfolio failed", "error", err)
		return err
	}
	log.Info("Portfolio deleted")
	return nil
}

// deleteListCascade removes a stock list and everything hanging off it.
// Shared between portfolio deletion and standalone list deletion.
func deleteListCascade(ctx context.Context, uow repository.UnitOfWork, userID, slID uuid.UUID) error {
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
	slRepo, err := uow.StockListRepository()
	if err != nil {
		return err
	}
	return slRepo.Delete(ctx, userID, slID)
}

// ModifyFunds applies a signed cash delta. Deposits pass a positive
// amount, withdrawals a negative one. The balance check and the update
// are one statement, so two racing withdrawals cannot both pass.
func (s *Service) ModifyFunds(
	ctx context.Context,
	userID, portID uuid.UUID,
	delta money.Money,
) (*portfolio.Portfolio, error) {
	if delta.Equal(money.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	repo, err := s.uow.PortfolioRepository()
	if err != nil {
		return nil, err
	}
	p, err := repo.AdjustCash(ctx, userID, portID, delta)
	if err != nil {
		s.logger.Error("ModifyFunds failed",
			"userID", userID, "portfolioID", portID,
			"delta", delta.String(), "error", err)
		return nil, err
	}
	s.logger.Info("Funds modified",
		"userID", userID, "portfolioID", portID,
		"delta", delta.String(), "balance", p.Cash.String())
	return p, nil
}

// Transfer moves cash between two of the caller's portfolios. The
// sender row is locked for the whole transaction, the debit re-checks
// the balance, and the credit cannot fail the check, so the pair is
// atomic.
func (s *Service) Transfer(
	ctx context.Context,
	userID, fromID, toID uuid.UUID,
	amount money.Money,
) (from *portfolio.Portfolio, err error) {
	log := s.logger.With(
		"userID", userID, "from", fromID, "to", toID, "amount", amount.String())
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PortfolioRepository()
		if err != nil {
			return err
		}
		sender, err := repo.GetForUpdate(ctx, userID, fromID)
		if err != nil {
			return err
		}
		if err := sender.ValidateTransfer(userID, toID, amount); err != nil {
			return err
		}
		// The destination must be one of the caller's portfolios too.
		if _, err := repo.Get(ctx, userID, toID); err != nil {
			return err
		}
		from, err = repo.AdjustCash(ctx, userID, fromID, amount.Neg())
		if err != nil {
			return err
		}
		_, err = repo.Credit(ctx, toID, amount)
		return err
	})
	if err != nil {
		log.Error("Transfer failed", "error", err)
		return nil, err
	}
	log.Info("Transfer complete", "senderBalance", from.Cash.String())
	return from, nil
}

// Buy purchases shares at the symbol's latest close, debiting cash and
// incrementing the holding in one transaction.
func (s *Service) Buy(
	ctx context.Context,
	userID, portID uuid.UUID,
	symbol string,
	shares int64,
) (p *portfolio.Portfolio, h *stocklist.Holding, err error) {
	if symbol == "" {
		return nil, nil, domain.ErrMissingParameters
	}
	if shares <= 0 {
		return nil, nil, domain.ErrValidation
	}
	log := s.logger.With(
		"userID", userID, "portfolioID", portID, "symbol", symbol, "shares", shares)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		pRepo, err := uow.PortfolioRepository()
		if err != nil {
			return err
		}
		locked, err := pRepo.GetForUpdate(ctx, userID, portID)
		if err != nil {
			return err
		}
		stRepo, err := uow.StockRepository()
		if err != nil {
			return err
		}
		quote, err := stRepo.Latest(ctx, symbol, nil)
		if err != nil {
			return err
		}
		cost := money.FromFloatRounded(quote.Close).Times(shares)
		if err := locked.ValidateBuy(cost); err != nil {
			return err
		}
		p, err = pRepo.AdjustCash(ctx, userID, portID, cost.Neg())
		if err != nil {
			return err
		}
		hRepo, err := uow.HoldingRepository()
		if err != nil {
			return err
		}
		h, err = hRepo.Add(ctx, locked.StockListID, symbol, shares)
		return err
	})
	if err != nil {
		log.Error("Buy failed", "error", err)
		return nil, nil, err
	}
	log.Info("Buy complete", "held", h.Amount, "balance", p.Cash.String())
	return p, h, nil
}

// Sell sells shares at the symbol's latest close, crediting cash and
// decrementing the holding in one transaction. Selling the full
// position removes the holding row.
func (s *Service) Sell(
	ctx context.Context,
	userID, portID uuid.UUID,
	symbol string,
	shares int64,
) (p *portfolio.Portfolio, err error) {
	if symbol == "" {
		return nil, domain.ErrMissingParameters
	}
	log := s.logger.With(
		"userID", userID, "portfolioID", portID, "symbol", symbol, "shares", shares)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		pRepo, err := uow.PortfolioRepository()
		if err != nil {
			return err
		}
		locked, err := pRepo.GetForUpdate(ctx, userID, portID)
		if err != nil {
			return err
		}
		hRepo, err := uow.HoldingRepository()
		if err != nil {
			return err
		}
		held, err := hRepo.GetForUpdate(ctx, locked.StockListID, symbol)
		if err != nil {
			return err
		}
		if err := portfolio.ValidateSell(held.Amount, shares); err != nil {
			return err
		}
		stRepo, err := uow.StockRepository()
		if err != nil {
			return err
		}
		quote, err := stRepo.Latest(ctx, symbol, nil)
		if err != nil {
			return err
		}
		proceeds := money.FromFloatRounded(quote.Close).Times(shares)
		if held.Amount == shares {
			if err := hRepo.Delete(ctx, locked.StockListID, symbol); err != nil {
				return err
			}
		} else if _, err := hRepo.Add(ctx, locked.StockListID, symbol, -shares); err != nil {
			return err
		}
		p, err = pRepo.AdjustCash(ctx, userID, portID, proceeds)
		return err
	})
	if err != nil {
		log.Error("Sell failed", "error", err)
		return nil, err
	}
	log.Info("Sell complete", "balance", p.Cash.String())
	return p, nil
}
