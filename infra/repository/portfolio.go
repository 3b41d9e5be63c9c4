package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/money"
	"github.com/stockfolio/server/pkg/domain/portfolio"
	repo "github.com/stockfolio/server/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type portfolioRepository struct {
	db *gorm.DB
}

func (r *portfolioRepository) Create(ctx context.Context, p *portfolio.Portfolio) error {
	m := Portfolio{
		ID:          p.ID,
		UserID:      p.UserID,
		StockListID: p.StockListID,
		Name:        p.Name,
		CashCents:   p.Cash.Cents(),
		CreatedAt:   p.CreatedAt,
	}
	return MapGormError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *portfolioRepository) Get(ctx context.Context, userID, portID uuid.UUID) (*portfolio.Portfolio, error) {
	var m Portfolio
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", portID, userID).
		First(&m).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	return toDomainPortfolio(&m), nil
}

func (r *portfolioRepository) GetForUpdate(ctx context.Context, userID, portID uuid.UUID) (*portfolio.Portfolio, error) {
	var m Portfolio
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", portID, userID).
		First(&m).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	return toDomainPortfolio(&m), nil
}

func (r *portfolioRepository) GetByName(ctx context.Context, userID uuid.UUID, name string) (*portfolio.Portfolio, error) {
	var m Portfolio
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&m).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	return toDomainPortfolio(&m), nil
}

func (r *portfolioRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*portfolio.Portfolio, error) {
	var ms []Portfolio
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&ms).Error; err != nil {
		return nil, MapGormError(err)
	}
	out := make([]*portfolio.Portfolio, 0, len(ms))
	for i := range ms {
		out = append(out, toDomainPortfolio(&ms[i]))
	}
	return out, nil
}

// performanceRow carries one portfolio plus its weighted day and YTD
// performance over the latest candles of its holdings.
type performanceRow struct {
	Portfolio
	PerformanceDay *float64
	PerformanceYTD *float64
}

func (r *portfolioRepository) ListByUserWithPerformance(ctx context.Context, userID uuid.UUID) ([]*repo.PortfolioPerformance, error) {
	var rows []performanceRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.user_id, p.stock_list_id, p.name, p.cash_cents, p.created_at,
		       ROUND(SUM(so.amount * ((latest.close - latest.open) / latest.open) * 100)::NUMERIC, 2) AS performance_day,
		       ROUND(SUM(
		         so.amount * (
		           (latest.close - COALESCE(past.close, latest.close)) /
		           NULLIF(COALESCE(past.close, latest.close), 0)
		         ) * 100
		       )::NUMERIC, 2) AS performance_ytd
		FROM portfolios p
		JOIN stock_lists sl ON p.stock_list_id = sl.id
		LEFT JOIN stock_owned so ON sl.id = so.stock_list_id
		LEFT JOIN LATERAL (
		  SELECT * FROM historical_stock_performance
		  WHERE symbol = so.symbol
		  ORDER BY timestamp DESC LIMIT 1
		) latest ON true
		LEFT JOIN LATERAL (
		  SELECT * FROM historical_stock_performance
		  WHERE symbol = so.symbol
		    AND timestamp <= (
		      SELECT timestamp FROM historical_stock_performance
		      WHERE symbol = so.symbol ORDER BY timestamp DESC LIMIT 1
		    ) - INTERVAL '1 year'
		  ORDER BY timestamp DESC LIMIT 1
		) past ON true
		WHERE p.user_id = ?
		GROUP BY p.id`, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	out := make([]*repo.PortfolioPerformance, 0, len(rows))
	for i := range rows {
		out = append(out, &repo.PortfolioPerformance{
			Portfolio:      *toDomainPortfolio(&rows[i].Portfolio),
			PerformanceDay: rows[i].PerformanceDay,
			PerformanceYTD: rows[i].PerformanceYTD,
		})
	}
	return out, nil
}

func (r *portfolioRepository) Rename(ctx context.Context, userID, portID uuid.UUID, name string) error {
	res := r.db.WithContext(ctx).
		Model(&Portfolio{}).
		Where("id = ? AND user_id = ?", portID, userID).
		Update("name", name)
	if res.Error != nil {
		return MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *portfolioRepository) Delete(ctx context.Context, userID, portID uuid.UUID) (uuid.UUID, error) {
	var slID uuid.UUID
	res := r.db.WithContext(ctx).Raw(
		`DELETE FROM portfolios WHERE id = ? AND user_id = ? RETURNING stock_list_id`,
		portID, userID).Scan(&slID)
	if res.Error != nil {
		return uuid.Nil, MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return uuid.Nil, domain.ErrNotFound
	}
	return slID, nil
}

// AdjustCash applies the delta as a single conditional update so a
// concurrent modification can never drive the balance negative or lose
// an update. A zero-row result on an existing portfolio means the
// balance check failed.
func (r *portfolioRepository) AdjustCash(ctx context.Context, userID, portID uuid.UUID, delta money.Money) (*portfolio.Portfolio, error) {
	var m Portfolio
	res := r.db.WithContext(ctx).Raw(`
		UPDATE portfolios
		SET cash_cents = cash_cents + ?
		WHERE id = ? AND user_id = ? AND cash_cents + ? >= 0
		RETURNING id, user_id, stock_list_id, name, cash_cents, created_at`,
		delta.Cents(), portID, userID, delta.Cents()).
		Scan(&m)
	if res.Error != nil {
		return nil, MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.Get(ctx, userID, portID); err != nil {
			return nil, err
		}
		return nil, domain.ErrNegativeBalance
	}
	return toDomainPortfolio(&m), nil
}

func (r *portfolioRepository) Credit(ctx context.Context, portID uuid.UUID, amount money.Money) (*portfolio.Portfolio, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	var m Portfolio
	res := r.db.WithContext(ctx).Raw(`
		UPDATE portfolios
		SET cash_cents = cash_cents + ?
		WHERE id = ?
		RETURNING id, user_id, stock_list_id, name, cash_cents, created_at`,
		amount.Cents(), portID).
		Scan(&m)
	if res.Error != nil {
		return nil, MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return toDomainPortfolio(&m), nil
}

func toDomainPortfolio(m *Portfolio) *portfolio.Portfolio {
	return &portfolio.Portfolio{
		ID:          m.ID,
		UserID:      m.UserID,
		StockListID: m.StockListID,
		Name:        m.Name,
		Cash:        money.FromCents(m.CashCents),
		CreatedAt:   m.CreatedAt,
	}
}
