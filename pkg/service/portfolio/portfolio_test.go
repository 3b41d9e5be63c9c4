package portfolio_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stockfolio/server/internal/fixtures/mocks"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/money"
	"github.com/stockfolio/server/pkg/domain/portfolio"
	"github.com/stockfolio/server/pkg/domain/stock"
	"github.com/stockfolio/server/pkg/domain/stocklist"
	portfoliosvc "github.com/stockfolio/server/pkg/service/portfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService() (*portfoliosvc.Service, *mocks.MockUnitOfWork) {
	uow := mocks.NewMockUnitOfWork()
	return portfoliosvc.New(uow, slog.Default()), uow
}

func mustMoney(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.Parse(s)
	require.NoError(t, err)
	return m
}

func TestCreate_CreatesBackingStockList(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID := uuid.New()

	var createdList *stocklist.StockList
	uow.StockLists.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			createdList = args.Get(1).(*stocklist.StockList)
		}).
		Return(nil)
	uow.Portfolios.On("Create", mock.Anything, mock.Anything).Return(nil)

	p, err := svc.Create(context.Background(), userID, "growth")
	require.NoError(t, err)
	require.NotNil(t, createdList)
	assert.Equal(t, createdList.ID, p.StockListID)
	assert.Equal(t, stocklist.VisibilityPrivate, createdList.Visibility)
	assert.True(t, p.Cash.Equal(money.Zero))
	uow.AssertExpectations(t)
}

func TestCreate_EmptyName(t *testing.T) {
	t.Parallel()
	svc, _ := newService()
	_, err := svc.Create(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, domain.ErrMissingParameters)
}

func TestModifyFunds_ZeroDelta(t *testing.T) {
	t.Parallel()
	svc, _ := newService()
	_, err := svc.ModifyFunds(context.Background(), uuid.New(), uuid.New(), money.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestModifyFunds_Withdraw(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID, portID := uuid.New(), uuid.New()
	delta := mustMoney(t, "-150.25")

	uow.Portfolios.On("AdjustCash", mock.Anything, userID, portID, delta).
		Return(&portfolio.Portfolio{ID: portID, UserID: userID, Cash: money.Zero}, nil)

	p, err := svc.ModifyFunds(context.Background(), userID, portID, delta)
	require.NoError(t, err)
	assert.True(t, p.Cash.Equal(money.Zero))
	uow.AssertExpectations(t)
}

func TestModifyFunds_OverdraftRefused(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID, portID := uuid.New(), uuid.New()
	delta := mustMoney(t, "-200")

	uow.Portfolios.On("AdjustCash", mock.Anything, userID, portID, delta).
		Return(nil, domain.ErrNegativeBalance)

	_, err := svc.ModifyFunds(context.Background(), userID, portID, delta)
	assert.ErrorIs(t, err, domain.ErrNegativeBalance)
}

func TestTransfer_Success(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID, fromID, toID := uuid.New(), uuid.New(), uuid.New()
	amount := mustMoney(t, "50.25")

	sender := &portfolio.Portfolio{
		ID: fromID, UserID: userID, Cash: mustMoney(t, "150.25"),
	}
	uow.Portfolios.On("GetForUpdate", mock.Anything, userID, fromID).Return(sender, nil)
	uow.Portfolios.On("Get", mock.Anything, userID, toID).
		Return(&portfolio.Portfolio{ID: toID, UserID: userID}, nil)
	uow.Portfolios.On("AdjustCash", mock.Anything, userID, fromID, amount.Neg()).
		Return(&portfolio.Portfolio{ID: fromID, UserID: userID, Cash: mustMoney(t, "100.00")}, nil)
	uow.Portfolios.On("Credit", mock.Anything, toID, amount).
		Return(&portfolio.Portfolio{ID: toID, UserID: userID, Cash: amount}, nil)

	from, err := svc.Transfer(context.Background(), userID, fromID, toID, amount)
	require.NoError(t, err)
	assert.Equal(t, "100.00", from.Cash.String())
	uow.AssertExpectations(t)
}

func TestTransfer_SamePortfolio(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID, portID := uuid.New(), uuid.New()

	uow.Portfolios.On("GetForUpdate", mock.Anything, userID, portID).
		Return(&portfolio.Portfolio{ID: portID, UserID: userID, Cash: mustMoney(t, "100")}, nil)

	_, err := svc.Transfer(context.Background(), userID, portID, portID, mustMoney(t, "10"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID, fromID, toID := uuid.New(), uuid.New(), uuid.New()

	uow.Portfolios.On("GetForUpdate", mock.Anything, userID, fromID).
		Return(&portfolio.Portfolio{ID: fromID, UserID: userID, Cash: mustMoney(t, "10")}, nil)

	_, err := svc.Transfer(context.Background(), userID, fromID, toID, mustMoney(t, "50"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestTransfer_NonPositiveAmount(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID, fromID, toID := uuid.New(), uuid.New(), uuid.New()

	uow.Portfolios.On("GetForUpdate", mock.Anything, userID, fromID).
		Return(&portfolio.Portfolio{ID: fromID, UserID: userID, Cash: mustMoney(t, "100")}, nil)

	_, err := svc.Transfer(context.Background(), userID, fromID, toID, mustMoney(t, "-5"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestBuy_Success(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID, portID, slID := uuid.New(), uuid.New(), uuid.New()

	locked := &portfolio.Portfolio{
		ID: portID, UserID: userID, StockListID: slID, Cash: mustMoney(t, "1000"),
	}
	uow.Portfolios.On("GetForUpdate", mock.Anything, userID, portID).Return(locked, nil)
	uow.Stocks.On("Latest", mock.Anything, "AAPL", (*uuid.UUID)(nil)).
		Return(&stock.Candle{Symbol: "AAPL", Close: 150.25}, nil)
	// 3 shares at 150.25 cost 450.75
	uow.Portfolios.On("AdjustCash", mock.Anything, userID, portID, mustMoney(t, "-450.75")).
		Return(&portfolio.Portfolio{ID: portID, UserID: userID, Cash: mustMoney(t, "549.25")}, nil)
	uow.Holdings.On("Add", mock.Anything, slID, "AAPL", int64(3)).
		Return(&stocklist.Holding{StockListID: slID, Symbol: "AAPL", Amount: 3}, nil)

	p, h, err := svc.Buy(context.Background(), userID, portID, "AAPL", 3)
	require.NoError(t, err)
	assert.Equal(t, "549.25", p.Cash.String())
	assert.Equal(t, int64(3), h.Amount)
	uow.AssertExpectations(t)
}

func TestBuy_InsufficientFunds(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID, portID := uuid.New(), uuid.New()

	uow.Portfolios.On("GetForUpdate", mock.Anything, userID, portID).
		Return(&portfolio.Portfolio{ID: portID, UserID: userID, Cash: mustMoney(t, "10")}, nil)
	uow.Stocks.On("Latest", mock.Anything, "AAPL", (*uuid.UUID)(nil)).
		Return(&stock.Candle{Symbol: "AAPL", Close: 150.25}, nil)

	_, _, err := svc.Buy(context.Background(), userID, portID, "AAPL", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestBuy_BadArguments(t *testing.T) {
	t.Parallel()
	svc, _ := newService()

	_, _, err := svc.Buy(context.Background(), uuid.New(), uuid.New(), "", 1)
	assert.ErrorIs(t, err, domain.ErrMissingParameters)

	_, _, err = svc.Buy(context.Background(), uuid.New(), uuid.New(), "AAPL", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSell_FullPositionRemovesHolding(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID, portID, slID := uuid.New(), uuid.New(), uuid.New()

	locked := &portfolio.Portfolio{
		ID: portID, UserID: userID, StockListID: slID, Cash: money.Zero,
	}
	uow.Portfolios.On("GetForUpdate", mock.Anything, userID, portID).Return(locked, nil)
	uow.Holdings.On("GetForUpdate", mock.Anything, slID, "AAPL").
		Return(&stocklist.Holding{StockListID: slID, Symbol: "AAPL", Amount: 5}, nil)
	uow.Stocks.On("Latest", mock.Anything, "AAPL", (*uuid.UUID)(nil)).
		Return(&stock.Candle{Symbol: "AAPL", Close: 100}, nil)
	uow.Holdings.On("Delete", mock.Anything, slID, "AAPL").Return(nil)
	uow.Portfolios.On("AdjustCash", mock.Anything, userID, portID, mustMoney(t, "500")).
		Return(&portfolio.Portfolio{ID: portID, UserID: userID, Cash: mustMoney(t, "500")}, nil)

	p, err := svc.Sell(context.Background(), userID, portID, "AAPL", 5)
	require.NoError(t, err)
	assert.Equal(t, "500.00", p.Cash.String())
	uow.AssertExpectations(t)
}

func TestSell_PartialDecrements(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID, portID, slID := uuid.New(), uuid.New(), uuid.New()

	locked := &portfolio.Portfolio{
		ID: portID, UserID: userID, StockListID: slID, Cash: money.Zero,
	}
	uow.Portfolios.On("GetForUpdate", mock.Anything, userID, portID).Return(locked, nil)
	uow.Holdings.On("GetForUpdate", mock.Anything, slID, "AAPL").
		Return(&stocklist.Holding{StockListID: slID, Symbol: "AAPL", Amount: 5}, nil)
	uow.Stocks.On("Latest", mock.Anything, "AAPL", (*uuid.UUID)(nil)).
		Return(&stock.Candle{Symbol: "AAPL", Close: 100}, nil)
	uow.Holdings.On("Add", mock.Anything, slID, "AAPL", int64(-2)).
		Return(&stocklist.Holding{StockListID: slID, Symbol: "AAPL", Amount: 3}, nil)
	uow.Portfolios.On("AdjustCash", mock.Anything, userID, portID, mustMoney(t, "200")).
		Return(&portfolio.Portfolio{ID: portID, UserID: userID, Cash: mustMoney(t, "200")}, nil)

	_, err := svc.Sell(context.Background(), userID, portID, "AAPL", 2)
	require.NoError(t, err)
	uow.AssertExpectations(t)
}

func TestSell_MoreThanHeld(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID, portID, slID := uuid.New(), uuid.New(), uuid.New()

	locked := &portfolio.Portfolio{
		ID: portID, UserID: userID, StockListID: slID, Cash: money.Zero,
	}
	uow.Portfolios.On("GetForUpdate", mock.Anything, userID, portID).Return(locked, nil)
	uow.Holdings.On("GetForUpdate", mock.Anything, slID, "AAPL").
		Return(&stocklist.Holding{StockListID: slID, Symbol: "AAPL", Amount: 2}, nil)

	_, err := svc.Sell(context.Background(), userID, portID, "AAPL", 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientShares)
}

func TestDelete_CascadesOverBackingList(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID, portID, slID := uuid.New(), uuid.New(), uuid.New()

	uow.Portfolios.On("Delete", mock.Anything, userID, portID).Return(slID, nil)
	uow.Holdings.On("DeleteAll", mock.Anything, slID).Return(nil)
	uow.Stocks.On("DeleteRecorded", mock.Anything, slID).Return(nil)
	uow.Reviews.On("DeleteAllForList", mock.Anything, slID).Return(nil)
	uow.Shares.On("DeleteAllForList", mock.Anything, slID).Return(nil)
	uow.Predictions.On("DeleteScope", mock.Anything, slID).Return(nil)
	uow.StockLists.On("Delete", mock.Anything, userID, slID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), userID, portID))
	uow.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	userID, portID := uuid.New(), uuid.New()

	uow.Portfolios.On("Delete", mock.Anything, userID, portID).
		Return(uuid.Nil, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), userID, portID), domain.ErrNotFound)
}
