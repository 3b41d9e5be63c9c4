package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/stocklist"
	repo "github.com/stockfolio/server/pkg/repository"
	"gorm.io/gorm"
)

type stockListRepository struct {
	db *gorm.DB
}

func (r *stockListRepository) Create(ctx context.Context, sl *stocklist.StockList) error {
	m := StockList{
		ID:         sl.ID,
		UserID:     sl.UserID,
		Name:       sl.Name,
		Visibility: string(sl.Visibility),
		CreatedAt:  sl.CreatedAt,
	}
	return MapGormError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *stockListRepository) Get(ctx context.Context, slID uuid.UUID) (*stocklist.StockList, error) {
	var m StockList
	if err := r.db.WithContext(ctx).First(&m, "id = ?", slID).Error; err != nil {
		return nil, MapGormError(err)
	}
	return toDomainStockList(&m), nil
}

func (r *stockListRepository) GetOwned(ctx context.Context, userID, slID uuid.UUID) (*stocklist.StockList, error) {
	var m StockList
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", slID, userID).
		First(&m).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	return toDomainStockList(&m), nil
}

func (r *stockListRepository) ListOwned(ctx context.Context, userID uuid.UUID) ([]*stocklist.StockList, error) {
	var ms []StockList
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&ms).Error; err != nil {
		return nil, MapGormError(err)
	}
	return toDomainStockLists(ms), nil
}

func (r *stockListRepository) ListSharedWith(ctx context.Context, userID uuid.UUID) ([]*stocklist.StockList, error) {
	var ms []StockList
	err := r.db.WithContext(ctx).Raw(`
		SELECT sl.* FROM stock_lists sl
		JOIN shares s ON s.stock_list_id = sl.id
		WHERE s.user_id = ? AND sl.visibility = 'shared'
		ORDER BY sl.created_at`, userID).
		Scan(&ms).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	return toDomainStockLists(ms), nil
}

func (r *stockListRepository) ListPublic(ctx context.Context) ([]*stocklist.StockList, error) {
	var ms []StockList
	if err := r.db.WithContext(ctx).
		Where("visibility = ?", string(stocklist.VisibilityPublic)).
		Order("created_at").
		Find(&ms).Error; err != nil {
		return nil, MapGormError(err)
	}
	return toDomainStockLists(ms), nil
}

func (r *stockListRepository) Rename(ctx context.Context, userID, slID uuid.UUID, name string) error {
	res := r.db.WithContext(ctx).
		Model(&StockList{}).
		Where("id = ? AND user_id = ?", slID, userID).
		Update("name", name)
	if res.Error != nil {
		return MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *stockListRepository) SetVisibility(ctx context.Context, slID uuid.UUID, v stocklist.Visibility) error {
	res := r.db.WithContext(ctx).
		Model(&StockList{}).
		Where("id = ?", slID).
		Update("visibility", string(v))
	if res.Error != nil {
		return MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *stockListRepository) Delete(ctx context.Context, userID, slID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", slID, userID).
		Delete(&StockList{})
	if res.Error != nil {
		return MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *stockListRepository) Stats(ctx context.Context, slID uuid.UUID, interval string) (*repo.StockListStats, error) {
	var row struct {
		Performance *float64
	}
	err := r.db.WithContext(ctx).Raw(`
		WITH merged AS (
			SELECT symbol, timestamp, close FROM historical_stock_performance
			UNION ALL
			SELECT symbol, timestamp, close FROM recorded_stock_performance
			WHERE stock_list_id = @sl
		),
		bounds AS (
			SELECT h.symbol, h.amount,
				(SELECT m.close FROM merged m
				 WHERE m.symbol = h.symbol
				 ORDER BY m.timestamp DESC LIMIT 1) AS last_close,
				(SELECT m.close FROM merged m
				 WHERE m.symbol = h.symbol
				   AND m.timestamp >= (SELECT MAX(mm.timestamp) FROM merged mm
				                       WHERE mm.symbol = h.symbol) - CAST(@interval AS INTERVAL)
				 ORDER BY m.timestamp ASC LIMIT 1) AS first_close
			FROM stock_owned h
			WHERE h.stock_list_id = @sl
		)
		SELECT SUM(b.amount * (b.last_close - b.first_close) / NULLIF(b.first_close, 0))
		       / NULLIF(SUM(b.amount), 0) AS performance
		FROM bounds b
		WHERE b.first_close IS NOT NULL`,
		sql.Named("sl", slID), sql.Named("interval", interval)).
		Scan(&row).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	return &repo.StockListStats{
		StockListID: slID,
		Interval:    interval,
		Performance: row.Performance,
	}, nil
}

func toDomainStockList(m *StockList) *stocklist.StockList {
	return &stocklist.StockList{
		ID:         m.ID,
		UserID:     m.UserID,
		Name:       m.Name,
		Visibility: stocklist.Visibility(m.Visibility),
		CreatedAt:  m.CreatedAt,
	}
}

func toDomainStockLists(ms []StockList) []*stocklist.StockList {
	out := make([]*stocklist.StockList, 0, len(ms))
	for i := range ms {
		out = append(out, toDomainStockList(&ms[i]))
	}
	return out
}
