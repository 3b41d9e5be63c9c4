// Package repository defines the data-access contracts and the
// UnitOfWork transaction boundary. Repositories obtained from a
// UnitOfWork inside Do share one database transaction; repositories
// obtained outside run on the bare connection pool.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain/money"
	"github.com/stockfolio/server/pkg/domain/portfolio"
	"github.com/stockfolio/server/pkg/domain/social"
	"github.com/stockfolio/server/pkg/domain/stock"
	"github.com/stockfolio/server/pkg/domain/stocklist"
	"github.com/stockfolio/server/pkg/domain/user"
)

// PortfolioRepository provides access to portfolio rows. Implementations
// return domain.ErrNotFound for missing or foreign rows.
type PortfolioRepository interface {
	Create(ctx context.Context, p *portfolio.Portfolio) error
	Get(ctx context.Context, userID, portID uuid.UUID) (*portfolio.Portfolio, error)
	// GetForUpdate locks the row for the rest of the enclosing
	// transaction. Only meaningful inside UnitOfWork.Do.
	GetForUpdate(ctx context.Context, userID, portID uuid.UUID) (*portfolio.Portfolio, error)
	GetByName(ctx context.Context, userID uuid.UUID, name string) (*portfolio.Portfolio, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*portfolio.Portfolio, error)
	ListByUserWithPerformance(ctx context.Context, userID uuid.UUID) ([]*PortfolioPerformance, error)
	Rename(ctx context.Context, userID, portID uuid.UUID, name string) error
	// Delete removes the portfolio and reports the backing stock list id
	// so the caller can cascade.
	Delete(ctx context.Context, userID, portID uuid.UUID) (uuid.UUID, error)
	// AdjustCash applies a signed delta as one conditional update that
	// refuses to drive the balance negative, returning the updated row.
	// A would-be-negative result yields domain.ErrNegativeBalance.
	AdjustCash(ctx context.Context, userID, portID uuid.UUID, delta money.Money) (*portfolio.Portfolio, error)
	// Credit adds a positive amount to a portfolio regardless of owner;
	// used for the receiving side of transfers.
	Credit(ctx context.Context, portID uuid.UUID, amount money.Money) (*portfolio.Portfolio, error)
}

// StockListRepository provides access to stock list rows.
type StockListRepository interface {
	Create(ctx context.Context, sl *stocklist.StockList) error
	Get(ctx context.Context, slID uuid.UUID) (*stocklist.StockList, error)
	GetOwned(ctx context.Context, userID, slID uuid.UUID) (*stocklist.StockList, error)
	ListOwned(ctx context.Context, userID uuid.UUID) ([]*stocklist.StockList, error)
	ListSharedWith(ctx context.Context, userID uuid.UUID) ([]*stocklist.StockList, error)
	ListPublic(ctx context.Context) ([]*stocklist.StockList, error)
	Rename(ctx context.Context, userID, slID uuid.UUID, name string) error
	SetVisibility(ctx context.Context, slID uuid.UUID, v stocklist.Visibility) error
	Delete(ctx context.Context, userID, slID uuid.UUID) error
	// Stats computes the amount-weighted performance of the list's
	// holdings over the given SQL interval, each symbol's window
	// anchored at its newest candle.
	Stats(ctx context.Context, slID uuid.UUID, interval string) (*StockListStats, error)
}

// HoldingRepository provides access to the (sl_id, symbol) holding rows.
type HoldingRepository interface {
	List(ctx context.Context, slID uuid.UUID) ([]*stocklist.Holding, error)
	ListWithQuotes(ctx context.Context, slID uuid.UUID) ([]*HoldingQuote, error)
	Get(ctx context.Context, slID uuid.UUID, symbol string) (*stocklist.Holding, error)
	// GetForUpdate locks the holding row; missing rows are reported as
	// domain.ErrNotFound.
	GetForUpdate(ctx context.Context, slID uuid.UUID, symbol string) (*stocklist.Holding, error)
	// Set overwrites the amount (upsert on conflict).
	Set(ctx context.Context, slID uuid.UUID, symbol string, amount int64) (*stocklist.Holding, error)
	// Add increments the amount by delta, inserting the row if absent.
	Add(ctx context.Context, slID uuid.UUID, symbol string, delta int64) (*stocklist.Holding, error)
	Delete(ctx context.Context, slID uuid.UUID, symbol string) error
	DeleteAll(ctx context.Context, slID uuid.UUID) error
}

// StockRepository provides access to the price series. Lookups that
// take a non-nil scope merge the shared historical series with the
// candles recorded against that stock list.
type StockRepository interface {
	Search(ctx context.Context, query string) ([]string, error)
	Latest(ctx context.Context, symbol string, scope *uuid.UUID) (*stock.Candle, error)
	History(ctx context.Context, symbol string, interval string, scope *uuid.UUID) ([]*stock.Candle, error)
	AppendRecorded(ctx context.Context, slID uuid.UUID, candles []stock.Candle) error
	// DeleteRecorded drops every candle recorded against the list. Part
	// of the list deletion cascade.
	DeleteRecorded(ctx context.Context, slID uuid.UUID) error
	// SeedHistorical bulk-loads shared historical candles, skipping
	// rows already present.
	SeedHistorical(ctx context.Context, candles []stock.Candle) error
}

// PredictionRepository is the persisted forecast cache keyed by
// (symbol, interval, scope).
type PredictionRepository interface {
	Get(ctx context.Context, symbol, interval string, scope *uuid.UUID) ([]stock.PredictionPoint, error)
	Put(ctx context.Context, symbol, interval string, scope *uuid.UUID, points []stock.PredictionPoint) error
	DeleteScope(ctx context.Context, scope uuid.UUID) error
}

// UserRepository provides access to user rows.
type UserRepository interface {
	Create(ctx context.Context, u *user.User, passwordHash string) error
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	// GetCredentials returns the user and its password hash for login.
	GetCredentials(ctx context.Context, email string) (*user.User, string, error)
}

// FriendRepository provides access to friend requests and friendships.
type FriendRepository interface {
	GetRequest(ctx context.Context, fromID, toID uuid.UUID) (*social.FriendRequest, error)
	CreateRequest(ctx context.Context, fromID, toID uuid.UUID) error
	SetRequestStatus(ctx context.Context, fromID, toID uuid.UUID, status social.RequestStatus) error
	ListIncoming(ctx context.Context, userID uuid.UUID) ([]*FriendRequestEntry, error)
	ListOutgoing(ctx context.Context, userID uuid.UUID) ([]*FriendRequestEntry, error)
	// DeleteRequests removes the request rows in both directions so a
	// removed friend can be re-invited.
	DeleteRequests(ctx context.Context, a, b uuid.UUID) error
	AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error)
	CreateFriendship(ctx context.Context, a, b uuid.UUID) error
	DeleteFriendship(ctx context.Context, a, b uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]*user.User, error)
}

// ReviewRepository provides access to stock list reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *social.Review) error
	ListByStockList(ctx context.Context, slID uuid.UUID) ([]*social.Review, error)
	Update(ctx context.Context, userID, slID uuid.UUID, content string) (*social.Review, error)
	// DeleteOwn removes the caller's review.
	DeleteOwn(ctx context.Context, userID, slID uuid.UUID) error
	// DeleteAsOwner lets the list owner remove someone else's review.
	DeleteAsOwner(ctx context.Context, ownerID, slID, reviewerID uuid.UUID) error
	DeleteAllForList(ctx context.Context, slID uuid.UUID) error
}

// ShareRepository provides access to share grants on stock lists.
type ShareRepository interface {
	Create(ctx context.Context, slID, userID uuid.UUID) error
	Exists(ctx context.Context, slID, userID uuid.UUID) (bool, error)
	ListUsers(ctx context.Context, slID uuid.UUID) ([]*user.User, error)
	DeleteAllForList(ctx context.Context, slID uuid.UUID) error
}

// UnitOfWork runs a function inside one database transaction and hands
// it repositories bound to that transaction. Every multi-row mutation
// (create-with-cascade, transfer, buy, sell, share) goes through Do so
// the statements commit or roll back together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	PortfolioRepository() (PortfolioRepository, error)
	StockListRepository() (StockListRepository, error)
	HoldingRepository() (HoldingRepository, error)
	StockRepository() (StockRepository, error)
	PredictionRepository() (PredictionRepository, error)
	UserRepository() (UserRepository, error)
	FriendRepository() (FriendRepository, error)
	ReviewRepository() (ReviewRepository, error)
	ShareRepository() (ShareRepository, error)
}
