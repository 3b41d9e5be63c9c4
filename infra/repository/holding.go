package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/stocklist"
	repo "github.com/stockfolio/server/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type holdingRepository struct {
	db *gorm.DB
}

func (r *holdingRepository) List(ctx context.Context, slID uuid.UUID) ([]*stocklist.Holding, error) {
	var ms []Holding
	if err := r.db.WithContext(ctx).
		Where("stock_list_id = ?", slID).
		Order("symbol").
		Find(&ms).Error; err != nil {
		return nil, MapGormError(err)
	}
	out := make([]*stocklist.Holding, 0, len(ms))
	for i := range ms {
		out = append(out, toDomainHolding(&ms[i]))
	}
	return out, nil
}

// holdingQuoteRow joins a holding with the latest candle of its symbol.
type holdingQuoteRow struct {
	Holding
	Close          *float64
	PerformanceDay *float64
}

func (r *holdingRepository) ListWithQuotes(ctx context.Context, slID uuid.UUID) ([]*repo.HoldingQuote, error) {
	var rows []holdingQuoteRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT so.*, latest.close,
		       ROUND((((latest.close - latest.open) / latest.open) * 100)::NUMERIC, 2) AS performance_day
		FROM stock_owned so
		LEFT JOIN LATERAL (
		  SELECT * FROM historical_stock_performance
		  WHERE symbol = so.symbol
		  ORDER BY timestamp DESC LIMIT 1
		) latest ON true
		WHERE so.stock_list_id = ?
		ORDER BY so.symbol`, slID).
		Scan(&rows).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	out := make([]*repo.HoldingQuote, 0, len(rows))
	for i := range rows {
		out = append(out, &repo.HoldingQuote{
			Holding:        *toDomainHolding(&rows[i].Holding),
			Close:          rows[i].Close,
			PerformanceDay: rows[i].PerformanceDay,
		})
	}
	return out, nil
}

func (r *holdingRepository) Get(ctx context.Context, slID uuid.UUID, symbol string) (*stocklist.Holding, error) {
	var m Holding
	err := r.db.WithContext(ctx).
		Where("stock_list_id = ? AND symbol = ?", slID, symbol).
		First(&m).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	return toDomainHolding(&m), nil
}

func (r *holdingRepository) GetForUpdate(ctx context.Context, slID uuid.UUID, symbol string) (*stocklist.Holding, error) {
	var m Holding
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("stock_list_id = ? AND symbol = ?", slID, symbol).
		First(&m).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	return toDomainHolding(&m), nil
}

// Set overwrites the amount, inserting the row on first write. This is
// the set-style upsert of the stock list API, distinct from the
// delta-style Add used by the buy flow.
func (r *holdingRepository) Set(ctx context.Context, slID uuid.UUID, symbol string, amount int64) (*stocklist.Holding, error) {
	m := Holding{StockListID: slID, Symbol: symbol, Amount: amount}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stock_list_id"}, {Name: "symbol"}},
			DoUpdates: clause.Assignments(map[string]any{"amount": amount}),
		}).
		Create(&m).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	return r.Get(ctx, slID, symbol)
}

func (r *holdingRepository) Add(ctx context.Context, slID uuid.UUID, symbol string, delta int64) (*stocklist.Holding, error) {
	var m Holding
	res := r.db.WithContext(ctx).Raw(`
		INSERT INTO stock_owned (stock_list_id, symbol, amount, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON CONFLICT (stock_list_id, symbol)
		DO UPDATE SET amount = stock_owned.amount + EXCLUDED.amount, updated_at = NOW()
		RETURNING stock_list_id, symbol, amount, created_at, updated_at`,
		slID, symbol, delta).
		Scan(&m)
	if res.Error != nil {
		return nil, MapGormError(res.Error)
	}
	return toDomainHolding(&m), nil
}

func (r *holdingRepository) Delete(ctx context.Context, slID uuid.UUID, symbol string) error {
	res := r.db.WithContext(ctx).
		Where("stock_list_id = ? AND symbol = ?", slID, symbol).
		Delete(&Holding{})
	if res.Error != nil {
		return MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *holdingRepository) DeleteAll(ctx context.Context, slID uuid.UUID) error {
	return MapGormError(r.db.WithContext(ctx).
		Where("stock_list_id = ?", slID).
		Delete(&Holding{}).Error)
}

func toDomainHolding(m *Holding) *stocklist.Holding {
	return &stocklist.Holding{
		StockListID: m.StockListID,
		Symbol:      m.Symbol,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
