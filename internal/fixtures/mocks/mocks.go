// Package mocks provides testify mocks for the repository contracts.
// MockUnitOfWork executes Do callbacks against itself so service tests
// observe the same repository expectations inside and outside a
// transaction.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain/money"
	"github.com/stockfolio/server/pkg/domain/portfolio"
	"github.com/stockfolio/server/pkg/domain/social"
	"github.com/stockfolio/server/pkg/domain/stock"
	"github.com/stockfolio/server/pkg/domain/stocklist"
	"github.com/stockfolio/server/pkg/domain/user"
	"github.com/stockfolio/server/pkg/repository"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork mocks repository.UnitOfWork. Do runs the callback
// against the mock itself, so there is no separate transactional state.
type MockUnitOfWork struct {
	mock.Mock

	Portfolios  *MockPortfolioRepository
	StockLists  *MockStockListRepository
	Holdings    *MockHoldingRepository
	Stocks      *MockStockRepository
	Predictions *MockPredictionRepository
	Users       *MockUserRepository
	Friends     *MockFriendRepository
	Reviews     *MockReviewRepository
	Shares      *MockShareRepository
}

// NewMockUnitOfWork creates a MockUnitOfWork with all repository mocks
// wired in.
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		Portfolios:  &MockPortfolioRepository{},
		StockLists:  &MockStockListRepository{},
		Holdings:    &MockHoldingRepository{},
		Stocks:      &MockStockRepository{},
		Predictions: &MockPredictionRepository{},
		Users:       &MockUserRepository{},
		Friends:     &MockFriendRepository{},
		Reviews:     &MockReviewRepository{},
		Shares:      &MockShareRepository{},
	}
}

// AssertExpectations asserts expectations on the unit of work and every
// repository mock.
func (m *MockUnitOfWork) AssertExpectations(t mock.TestingT) bool {
	ok := m.Mock.AssertExpectations(t)
	for _, sub := range []interface{ AssertExpectations(mock.TestingT) bool }{
		m.Portfolios, m.StockLists, m.Holdings, m.Stocks, m.Predictions,
		m.Users, m.Friends, m.Reviews, m.Shares,
	} {
		ok = sub.AssertExpectations(t) && ok
	}
	return ok
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(repository.UnitOfWork) error) error {
	return fn(m)
}

func (m *MockUnitOfWork) PortfolioRepository() (repository.PortfolioRepository, error) {
	return m.Portfolios, nil
}

func (m *MockUnitOfWork) StockListRepository() (repository.StockListRepository, error) {
	return m.StockLists, nil
}

func (m *MockUnitOfWork) HoldingRepository() (repository.HoldingRepository, error) {
	return m.Holdings, nil
}

func (m *MockUnitOfWork) StockRepository() (repository.StockRepository, error) {
	return m.Stocks, nil
}

func (m *MockUnitOfWork) PredictionRepository() (repository.PredictionRepository, error) {
	return m.Predictions, nil
}

func (m *MockUnitOfWork) UserRepository() (repository.UserRepository, error) {
	return m.Users, nil
}

func (m *MockUnitOfWork) FriendRepository() (repository.FriendRepository, error) {
	return m.Friends, nil
}

func (m *MockUnitOfWork) ReviewRepository() (repository.ReviewRepository, error) {
	return m.Reviews, nil
}

func (m *MockUnitOfWork) ShareRepository() (repository.ShareRepository, error) {
	return m.Shares, nil
}

// MockPortfolioRepository mocks repository.PortfolioRepository.
type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) Create(ctx context.Context, p *portfolio.Portfolio) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPortfolioRepository) Get(ctx context.Context, userID, portID uuid.UUID) (*portfolio.Portfolio, error) {
	args := m.Called(ctx, userID, portID)
	p, _ := args.Get(0).(*portfolio.Portfolio)
	return p, args.Error(1)
}

func (m *MockPortfolioRepository) GetForUpdate(ctx context.Context, userID, portID uuid.UUID) (*portfolio.Portfolio, error) {
	args := m.Called(ctx, userID, portID)
	p, _ := args.Get(0).(*portfolio.Portfolio)
	return p, args.Error(1)
}

func (m *MockPortfolioRepository) GetByName(ctx context.Context, userID uuid.UUID, name string) (*portfolio.Portfolio, error) {
	args := m.Called(ctx, userID, name)
	p, _ := args.Get(0).(*portfolio.Portfolio)
	return p, args.Error(1)
}

func (m *MockPortfolioRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*portfolio.Portfolio, error) {
	args := m.Called(ctx, userID)
	ps, _ := args.Get(0).([]*portfolio.Portfolio)
	return ps, args.Error(1)
}

func (m *MockPortfolioRepository) ListByUserWithPerformance(ctx context.Context, userID uuid.UUID) ([]*repository.PortfolioPerformance, error) {
	args := m.Called(ctx, userID)
	ps, _ := args.Get(0).([]*repository.PortfolioPerformance)
	return ps, args.Error(1)
}

func (m *MockPortfolioRepository) Rename(ctx context.Context, userID, portID uuid.UUID, name string) error {
	return m.Called(ctx, userID, portID, name).Error(0)
}

func (m *MockPortfolioRepository) Delete(ctx context.Context, userID, portID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, userID, portID)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

func (m *MockPortfolioRepository) AdjustCash(ctx context.Context, userID, portID uuid.UUID, delta money.Money) (*portfolio.Portfolio, error) {
	args := m.Called(ctx, userID, portID, delta)
	p, _ := args.Get(0).(*portfolio.Portfolio)
	return p, args.Error(1)
}

func (m *MockPortfolioRepository) Credit(ctx context.Context, portID uuid.UUID, amount money.Money) (*portfolio.Portfolio, error) {
	args := m.Called(ctx, portID, amount)
	p, _ := args.Get(0).(*portfolio.Portfolio)
	return p, args.Error(1)
}

// MockStockListRepository mocks repository.StockListRepository.
type MockStockListRepository struct {
	mock.Mock
}

func (m *MockStockListRepository) Create(ctx context.Context, sl *stocklist.StockList) error {
	return m.Called(ctx, sl).Error(0)
}

func (m *MockStockListRepository) Get(ctx context.Context, slID uuid.UUID) (*stocklist.StockList, error) {
	args := m.Called(ctx, slID)
	sl, _ := args.Get(0).(*stocklist.StockList)
	return sl, args.Error(1)
}

func (m *MockStockListRepository) GetOwned(ctx context.Context, userID, slID uuid.UUID) (*stocklist.StockList, error) {
	args := m.Called(ctx, userID, slID)
	sl, _ := args.Get(0).(*stocklist.StockList)
	return sl, args.Error(1)
}

func (m *MockStockListRepository) ListOwned(ctx context.Context, userID uuid.UUID) ([]*stocklist.StockList, error) {
	args := m.Called(ctx, userID)
	sls, _ := args.Get(0).([]*stocklist.StockList)
	return sls, args.Error(1)
}

func (m *MockStockListRepository) ListSharedWith(ctx context.Context, userID uuid.UUID) ([]*stocklist.StockList, error) {
	args := m.Called(ctx, userID)
	sls, _ := args.Get(0).([]*stocklist.StockList)
	return sls, args.Error(1)
}

func (m *MockStockListRepository) ListPublic(ctx context.Context) ([]*stocklist.StockList, error) {
	args := m.Called(ctx)
	sls, _ := args.Get(0).([]*stocklist.StockList)
	return sls, args.Error(1)
}

func (m *MockStockListRepository) Rename(ctx context.Context, userID, slID uuid.UUID, name string) error {
	return m.Called(ctx, userID, slID, name).Error(0)
}

func (m *MockStockListRepository) SetVisibility(ctx context.Context, slID uuid.UUID, v stocklist.Visibility) error {
	return m.Called(ctx, slID, v).Error(0)
}

func (m *MockStockListRepository) Delete(ctx context.Context, userID, slID uuid.UUID) error {
	return m.Called(ctx, userID, slID).Error(0)
}

func (m *MockStockListRepository) Stats(ctx context.Context, slID uuid.UUID, interval string) (*repository.StockListStats, error) {
	args := m.Called(ctx, slID, interval)
	st, _ := args.Get(0).(*repository.StockListStats)
	return st, args.Error(1)
}

// MockHoldingRepository mocks repository.HoldingRepository.
type MockHoldingRepository struct {
	mock.Mock
}

func (m *MockHoldingRepository) List(ctx context.Context, slID uuid.UUID) ([]*stocklist.Holding, error) {
	args := m.Called(ctx, slID)
	hs, _ := args.Get(0).([]*stocklist.Holding)
	return hs, args.Error(1)
}

func (m *MockHoldingRepository) ListWithQuotes(ctx context.Context, slID uuid.UUID) ([]*repository.HoldingQuote, error) {
	args := m.Called(ctx, slID)
	hs, _ := args.Get(0).([]*repository.HoldingQuote)
	return hs, args.Error(1)
}

func (m *MockHoldingRepository) Get(ctx context.Context, slID uuid.UUID, symbol string) (*stocklist.Holding, error) {
	args := m.Called(ctx, slID, symbol)
	h, _ := args.Get(0).(*stocklist.Holding)
	return h, args.Error(1)
}

func (m *MockHoldingRepository) GetForUpdate(ctx context.Context, slID uuid.UUID, symbol string) (*stocklist.Holding, error) {
	args := m.Called(ctx, slID, symbol)
	h, _ := args.Get(0).(*stocklist.Holding)
	return h, args.Error(1)
}

func (m *MockHoldingRepository) Set(ctx context.Context, slID uuid.UUID, symbol string, amount int64) (*stocklist.Holding, error) {
	args := m.Called(ctx, slID, symbol, amount)
	h, _ := args.Get(0).(*stocklist.Holding)
	return h, args.Error(1)
}

func (m *MockHoldingRepository) Add(ctx context.Context, slID uuid.UUID, symbol string, delta int64) (*stocklist.Holding, error) {
	args := m.Called(ctx, slID, symbol, delta)
	h, _ := args.Get(0).(*stocklist.Holding)
	return h, args.Error(1)
}

func (m *MockHoldingRepository) Delete(ctx context.Context, slID uuid.UUID, symbol string) error {
	return m.Called(ctx, slID, symbol).Error(0)
}

func (m *MockHoldingRepository) DeleteAll(ctx context.Context, slID uuid.UUID) error {
	return m.Called(ctx, slID).Error(0)
}

// MockStockRepository mocks repository.StockRepository.
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Search(ctx context.Context, query string) ([]string, error) {
	args := m.Called(ctx, query)
	symbols, _ := args.Get(0).([]string)
	return symbols, args.Error(1)
}

func (m *MockStockRepository) Latest(ctx context.Context, symbol string, scope *uuid.UUID) (*stock.Candle, error) {
	args := m.Called(ctx, symbol, scope)
	c, _ := args.Get(0).(*stock.Candle)
	return c, args.Error(1)
}

func (m *MockStockRepository) History(ctx context.Context, symbol, interval string, scope *uuid.UUID) ([]*stock.Candle, error) {
	args := m.Called(ctx, symbol, interval, scope)
	cs, _ := args.Get(0).([]*stock.Candle)
	return cs, args.Error(1)
}

func (m *MockStockRepository) AppendRecorded(ctx context.Context, slID uuid.UUID, candles []stock.Candle) error {
	return m.Called(ctx, slID, candles).Error(0)
}

func (m *MockStockRepository) DeleteRecorded(ctx context.Context, slID uuid.UUID) error {
	return m.Called(ctx, slID).Error(0)
}

func (m *MockStockRepository) SeedHistorical(ctx context.Context, candles []stock.Candle) error {
	return m.Called(ctx, candles).Error(0)
}

// MockPredictionRepository mocks repository.PredictionRepository.
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) Get(ctx context.Context, symbol, interval string, scope *uuid.UUID) ([]stock.PredictionPoint, error) {
	args := m.Called(ctx, symbol, interval, scope)
	ps, _ := args.Get(0).([]stock.PredictionPoint)
	return ps, args.Error(1)
}

func (m *MockPredictionRepository) Put(ctx context.Context, symbol, interval string, scope *uuid.UUID, points []stock.PredictionPoint) error {
	return m.Called(ctx, symbol, interval, scope, points).Error(0)
}

func (m *MockPredictionRepository) DeleteScope(ctx context.Context, scope uuid.UUID) error {
	return m.Called(ctx, scope).Error(0)
}

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User, passwordHash string) error {
	return m.Called(ctx, u, passwordHash).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetCredentials(ctx context.Context, email string) (*user.User, string, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.String(1), args.Error(2)
}

// MockFriendRepository mocks repository.FriendRepository.
type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) GetRequest(ctx context.Context, fromID, toID uuid.UUID) (*social.FriendRequest, error) {
	args := m.Called(ctx, fromID, toID)
	fr, _ := args.Get(0).(*social.FriendRequest)
	return fr, args.Error(1)
}

func (m *MockFriendRepository) CreateRequest(ctx context.Context, fromID, toID uuid.UUID) error {
	return m.Called(ctx, fromID, toID).Error(0)
}

func (m *MockFriendRepository) SetRequestStatus(ctx context.Context, fromID, toID uuid.UUID, status social.RequestStatus) error {
	return m.Called(ctx, fromID, toID, status).Error(0)
}

func (m *MockFriendRepository) ListIncoming(ctx context.Context, userID uuid.UUID) ([]*repository.FriendRequestEntry, error) {
	args := m.Called(ctx, userID)
	es, _ := args.Get(0).([]*repository.FriendRequestEntry)
	return es, args.Error(1)
}

func (m *MockFriendRepository) ListOutgoing(ctx context.Context, userID uuid.UUID) ([]*repository.FriendRequestEntry, error) {
	args := m.Called(ctx, userID)
	es, _ := args.Get(0).([]*repository.FriendRequestEntry)
	return es, args.Error(1)
}

func (m *MockFriendRepository) DeleteRequests(ctx context.Context, a, b uuid.UUID) error {
	return m.Called(ctx, a, b).Error(0)
}

func (m *MockFriendRepository) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRepository) CreateFriendship(ctx context.Context, a, b uuid.UUID) error {
	return m.Called(ctx, a, b).Error(0)
}

func (m *MockFriendRepository) DeleteFriendship(ctx context.Context, a, b uuid.UUID) error {
	return m.Called(ctx, a, b).Error(0)
}

func (m *MockFriendRepository) ListFriends(ctx context.Context, userID uuid.UUID) ([]*user.User, error) {
	args := m.Called(ctx, userID)
	us, _ := args.Get(0).([]*user.User)
	return us, args.Error(1)
}

// MockReviewRepository mocks repository.ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, r *social.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepository) ListByStockList(ctx context.Context, slID uuid.UUID) ([]*social.Review, error) {
	args := m.Called(ctx, slID)
	rs, _ := args.Get(0).([]*social.Review)
	return rs, args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, userID, slID uuid.UUID, content string) (*social.Review, error) {
	args := m.Called(ctx, userID, slID, content)
	r, _ := args.Get(0).(*social.Review)
	return r, args.Error(1)
}

func (m *MockReviewRepository) DeleteOwn(ctx context.Context, userID, slID uuid.UUID) error {
	return m.Called(ctx, userID, slID).Error(0)
}

func (m *MockReviewRepository) DeleteAsOwner(ctx context.Context, ownerID, slID, reviewerID uuid.UUID) error {
	return m.Called(ctx, ownerID, slID, reviewerID).Error(0)
}

func (m *MockReviewRepository) DeleteAllForList(ctx context.Context, slID uuid.UUID) error {
	return m.Called(ctx, slID).Error(0)
}

// MockShareRepository mocks repository.ShareRepository.
type MockShareRepository struct {
	mock.Mock
}

func (m *MockShareRepository) Create(ctx context.Context, slID, userID uuid.UUID) error {
	return m.Called(ctx, slID, userID).Error(0)
}

func (m *MockShareRepository) Exists(ctx context.Context, slID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockShareRepository) ListUsers(ctx context.Context, slID uuid.UUID) ([]*user.User, error) {
	args := m.Called(ctx, slID)
	us, _ := args.Get(0).([]*user.User)
	return us, args.Error(1)
}

func (m *MockShareRepository) DeleteAllForList(ctx context.Context, slID uuid.UUID) error {
	return m.Called(ctx, slID).Error(0)
}
