package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/stock"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type predictionRepository struct {
	db *gorm.DB
}

func scopeOrNil(scope *uuid.UUID) uuid.UUID {
	if scope == nil {
		return uuid.Nil
	}
	return *scope
}

func (r *predictionRepository) Get(ctx context.Context, symbol, interval string, scope *uuid.UUID) ([]stock.PredictionPoint, error) {
	var m Prediction
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND interval = ? AND scope_id = ?", symbol, interval, scopeOrNil(scope)).
		First(&m).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	var points []stock.PredictionPoint
	if err := json.Unmarshal(m.Points, &points); err != nil {
		// A corrupt cache entry is treated as a miss.
		return nil, domain.ErrNotFound
	}
	return points, nil
}

func (r *predictionRepository) Put(ctx context.Context, symbol, interval string, scope *uuid.UUID, points []stock.PredictionPoint) error {
	raw, err := json.Marshal(points)
	if err != nil {
		return err
	}
	m := Prediction{
		Symbol:   symbol,
		Interval: interval,
		ScopeID:  scopeOrNil(scope),
		Points:   raw,
	}
	return MapGormError(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "interval"}, {Name: "scope_id"}},
			DoUpdates: clause.Assignments(map[string]any{"points": raw, "created_at": gorm.Expr("NOW()")}),
		}).
		Create(&m).Error)
}

func (r *predictionRepository) DeleteScope(ctx context.Context, scope uuid.UUID) error {
	return MapGormError(r.db.WithContext(ctx).
		Where("scope_id = ?", scope).
		Delete(&Prediction{}).Error)
}
