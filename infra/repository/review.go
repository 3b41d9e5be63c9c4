package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/social"
	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

func (r *reviewRepository) Create(ctx context.Context, rev *social.Review) error {
	m := Review{
		UserID:      rev.UserID,
		StockListID: rev.StockListID,
		Content:     rev.Content,
	}
	return MapGormError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *reviewRepository) ListByStockList(ctx context.Context, slID uuid.UUID) ([]*social.Review, error) {
	var ms []Review
	if err := r.db.WithContext(ctx).
		Where("stock_list_id = ?", slID).
		Order("created_at").
		Find(&ms).Error; err != nil {
		return nil, MapGormError(err)
	}
	out := make([]*social.Review, 0, len(ms))
	for i := range ms {
		out = append(out, toDomainReview(&ms[i]))
	}
	return out, nil
}

func (r *reviewRepository) Update(ctx context.Context, userID, slID uuid.UUID, content string) (*social.Review, error) {
	res := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("user_id = ? AND stock_list_id = ?", userID, slID).
		Update("content", content)
	if res.Error != nil {
		return nil, MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	var m Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND stock_list_id = ?", userID, slID).
		First(&m).Error; err != nil {
		return nil, MapGormError(err)
	}
	return toDomainReview(&m), nil
}

func (r *reviewRepository) DeleteOwn(ctx context.Context, userID, slID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND stock_list_id = ?", userID, slID).
		Delete(&Review{})
	if res.Error != nil {
		return MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAsOwner removes a reviewer's entry, but only when the caller
// owns the reviewed list.
func (r *reviewRepository) DeleteAsOwner(ctx context.Context, ownerID, slID, reviewerID uuid.UUID) error {
	res := r.db.WithContext(ctx).Exec(`
		DELETE FROM user_reviews ur
		USING stock_lists sl
		WHERE ur.stock_list_id = sl.id
		  AND sl.user_id = ?
		  AND ur.stock_list_id = ?
		  AND ur.user_id = ?`,
		ownerID, slID, reviewerID)
	if res.Error != nil {
		return MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reviewRepository) DeleteAllForList(ctx context.Context, slID uuid.UUID) error {
	return MapGormError(r.db.WithContext(ctx).
		Where("stock_list_id = ?", slID).
		Delete(&Review{}).Error)
}

func toDomainReview(m *Review) *social.Review {
	return &social.Review{
		UserID:      m.UserID,
		StockListID: m.StockListID,
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
