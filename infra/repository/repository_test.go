package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	dialector := postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return db, mock
}

func portfolioRows(id, userID, slID uuid.UUID, cashCents int64) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"id", "user_id", "stock_list_id", "name", "cash_cents", "created_at"}).
		AddRow(id, userID, slID, "growth", cashCents, time.Now())
}

func TestPortfolioRepository_AdjustCash(t *testing.T) {
	db, mock := newMockDB(t)
	r := portfolioRepository{db: db}
	userID, portID, slID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`UPDATE portfolios\s+SET cash_cents = cash_cents \+ (.+)`).
		WithArgs(int64(5025), portID, userID, int64(5025)).
		WillReturnRows(portfolioRows(portID, userID, slID, 15025))

	delta, _ := money.Parse("50.25")
	p, err := r.AdjustCash(context.Background(), userID, portID, delta)
	require.NoError(t, err)
	assert.Equal(t, int64(15025), p.Cash.Cents())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPortfolioRepository_AdjustCash_NegativeBalance(t *testing.T) {
	db, mock := newMockDB(t)
	r := portfolioRepository{db: db}
	userID, portID, slID := uuid.New(), uuid.New(), uuid.New()

	// Conditional update matches no row, but the portfolio exists: the
	// balance check failed.
	mock.ExpectQuery(`UPDATE portfolios\s+SET cash_cents = cash_cents \+ (.+)`).
		WithArgs(int64(-20000), portID, userID, int64(-20000)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "portfolios" WHERE id = (.+)`).
		WithArgs(portID, userID, 1).
		WillReturnRows(portfolioRows(portID, userID, slID, 15025))

	delta, _ := money.Parse("-200.00")
	_, err := r.AdjustCash(context.Background(), userID, portID, delta)
	assert.ErrorIs(t, err, domain.ErrNegativeBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPortfolioRepository_AdjustCash_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := portfolioRepository{db: db}
	userID, portID := uuid.New(), uuid.New()

	mock.ExpectQuery(`UPDATE portfolios\s+SET cash_cents = cash_cents \+ (.+)`).
		WithArgs(int64(100), portID, userID, int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "portfolios" WHERE id = (.+)`).
		WithArgs(portID, userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := r.AdjustCash(context.Background(), userID, portID, money.FromCents(100))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHoldingRepository_Add_UpsertsOnConflict(t *testing.T) {
	db, mock := newMockDB(t)
	r := holdingRepository{db: db}
	slID := uuid.New()

	mock.ExpectQuery(`INSERT INTO stock_owned (.+) ON CONFLICT \(stock_list_id, symbol\)`).
		WithArgs(slID, "AAPL", int64(10)).
		WillReturnRows(sqlmock.
			NewRows([]string{"stock_list_id", "symbol", "amount", "created_at", "updated_at"}).
			AddRow(slID, "AAPL", int64(17), time.Now(), time.Now()))

	h, err := r.Add(context.Background(), slID, "AAPL", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(17), h.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPortfolioRepository_Delete_ReturnsStockListID(t *testing.T) {
	db, mock := newMockDB(t)
	r := portfolioRepository{db: db}
	userID, portID, slID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`DELETE FROM portfolios WHERE id = (.+) RETURNING stock_list_id`).
		WithArgs(portID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"stock_list_id"}).AddRow(slID))

	got, err := r.Delete(context.Background(), userID, portID)
	require.NoError(t, err)
	assert.Equal(t, slID, got)

	mock.ExpectQuery(`DELETE FROM portfolios WHERE id = (.+) RETURNING stock_list_id`).
		WithArgs(portID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"stock_list_id"}))

	_, err = r.Delete(context.Background(), userID, portID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
