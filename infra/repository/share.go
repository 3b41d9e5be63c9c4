package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain/user"
	"gorm.io/gorm"
)

type shareRepository struct {
	db *gorm.DB
}

func (r *shareRepository) Create(ctx context.Context, slID, userID uuid.UUID) error {
	m := Share{StockListID: slID, UserID: userID}
	return MapGormError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *shareRepository) Exists(ctx context.Context, slID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Share{}).
		Where("stock_list_id = ? AND user_id = ?", slID, userID).
		Count(&count).Error
	if err != nil {
		return false, MapGormError(err)
	}
	return count > 0, nil
}

func (r *shareRepository) DeleteAllForList(ctx context.Context, slID uuid.UUID) error {
	return MapGormError(r.db.WithContext(ctx).
		Where("stock_list_id = ?", slID).
		Delete(&Share{}).Error)
}

func (r *shareRepository) ListUsers(ctx context.Context, slID uuid.UUID) ([]*user.User, error) {
	var ms []User
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.* FROM shares s
		JOIN users u ON s.user_id = u.id
		WHERE s.stock_list_id = ?
		ORDER BY u.username`, slID).
		Scan(&ms).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	out := make([]*user.User, 0, len(ms))
	for i := range ms {
		out = append(out, toDomainUser(&ms[i]))
	}
	return out, nil
}
