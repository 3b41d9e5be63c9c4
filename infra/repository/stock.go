package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/stock"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type stockRepository struct {
	db *gorm.DB
}

// mergedSeries is the shared historical series, unioned with the
// candles recorded against one stock list when a scope is given.
const mergedSeries = `
	SELECT symbol, timestamp, open, high, low, close, volume
	FROM historical_stock_performance
	WHERE symbol = @symbol
	UNION ALL
	SELECT symbol, timestamp, open, high, low, close, volume
	FROM recorded_stock_performance
	WHERE symbol = @symbol AND stock_list_id = @scope`

func (r *stockRepository) Search(ctx context.Context, query string) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT symbol FROM historical_stock_performance
		WHERE symbol ILIKE ?
		ORDER BY symbol`, "%"+query+"%").
		Scan(&symbols).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	return symbols, nil
}

func (r *stockRepository) Latest(ctx context.Context, symbol string, scope *uuid.UUID) (*stock.Candle, error) {
	var m Candle
	var res *gorm.DB
	if scope == nil {
		res = r.db.WithContext(ctx).Raw(`
			SELECT * FROM historical_stock_performance
			WHERE symbol = ?
			ORDER BY timestamp DESC LIMIT 1`, symbol).
			Scan(&m)
	} else {
		res = r.db.WithContext(ctx).Raw(`
			SELECT * FROM (`+mergedSeries+`) merged
			ORDER BY timestamp DESC LIMIT 1`,
			map[string]any{"symbol": symbol, "scope": *scope}).
			Scan(&m)
	}
	if res.Error != nil {
		return nil, MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return toDomainCandle(&m), nil
}

func (r *stockRepository) History(ctx context.Context, symbol, interval string, scope *uuid.UUID) ([]*stock.Candle, error) {
	scopeID := uuid.Nil
	if scope != nil {
		scopeID = *scope
	}
	var ms []Candle
	// The window is anchored at the symbol's latest observation, not at
	// wall-clock now, so stale series still chart sensibly.
	err := r.db.WithContext(ctx).Raw(`
		WITH merged AS (`+mergedSeries+`)
		SELECT * FROM merged
		WHERE timestamp >= (
		  SELECT MAX(timestamp) FROM merged
		) - CAST(@interval AS INTERVAL)
		ORDER BY timestamp`,
		map[string]any{"symbol": symbol, "scope": scopeID, "interval": interval}).
		Scan(&ms).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	out := make([]*stock.Candle, 0, len(ms))
	for i := range ms {
		out = append(out, toDomainCandle(&ms[i]))
	}
	return out, nil
}

func (r *stockRepository) AppendRecorded(ctx context.Context, slID uuid.UUID, candles []stock.Candle) error {
	ms := make([]RecordedCandle, 0, len(candles))
	for _, c := range candles {
		ms = append(ms, RecordedCandle{
			StockListID: slID,
			Symbol:      c.Symbol,
			Timestamp:   c.Timestamp,
			Open:        c.Open,
			High:        c.High,
			Low:         c.Low,
			Close:       c.Close,
			Volume:      c.Volume,
		})
	}
	return MapGormError(r.db.WithContext(ctx).Create(&ms).Error)
}

func (r *stockRepository) SeedHistorical(ctx context.Context, candles []stock.Candle) error {
	ms := make([]Candle, 0, len(candles))
	for _, c := range candles {
		ms = append(ms, Candle{
			Symbol:    c.Symbol,
			Timestamp: c.Timestamp,
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			Volume:    c.Volume,
		})
	}
	return MapGormError(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&ms, 500).Error)
}

func (r *stockRepository) DeleteRecorded(ctx context.Context, slID uuid.UUID) error {
	return MapGormError(r.db.WithContext(ctx).
		Where("stock_list_id = ?", slID).
		Delete(&RecordedCandle{}).Error)
}

func toDomainCandle(m *Candle) *stock.Candle {
	return &stock.Candle{
		Symbol:    m.Symbol,
		Timestamp: m.Timestamp,
		Open:      m.Open,
		High:      m.High,
		Low:       m.Low,
		Close:     m.Close,
		Volume:    m.Volume,
	}
}
