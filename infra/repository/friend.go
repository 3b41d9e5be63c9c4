package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/social"
	"github.com/stockfolio/server/pkg/domain/user"
	repo "github.com/stockfolio/server/pkg/repository"
	"gorm.io/gorm"
)

type friendRepository struct {
	db *gorm.DB
}

func (r *friendRepository) GetRequest(ctx context.Context, fromID, toID uuid.UUID) (*social.FriendRequest, error) {
	var m FriendRequest
	err := r.db.WithContext(ctx).
		Where("from_id = ? AND to_id = ?", fromID, toID).
		First(&m).Error
	if err != nil {
		return nil, MapGormError(err)
	}
	return &social.FriendRequest{
		FromID:    m.FromID,
		ToID:      m.ToID,
		Status:    social.RequestStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *friendRepository) CreateRequest(ctx context.Context, fromID, toID uuid.UUID) error {
	m := FriendRequest{FromID: fromID, ToID: toID, Status: string(social.RequestPending)}
	return MapGormError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *friendRepository) SetRequestStatus(ctx context.Context, fromID, toID uuid.UUID, status social.RequestStatus) error {
	res := r.db.WithContext(ctx).
		Model(&FriendRequest{}).
		Where("from_id = ? AND to_id = ?", fromID, toID).
		Update("status", string(status))
	if res.Error != nil {
		return MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *friendRepository) ListIncoming(ctx context.Context, userID uuid.UUID) ([]*repo.FriendRequestEntry, error) {
	return r.listRequests(ctx, `
		SELECT fr.from_id, fr.to_id, fr.status, u.username, u.email
		FROM friend_requests fr
		JOIN users u ON u.id = fr.from_id
		WHERE fr.to_id = ? AND fr.status = 'pending'
		ORDER BY fr.created_at`, userID)
}

func (r *friendRepository) ListOutgoing(ctx context.Context, userID uuid.UUID) ([]*repo.FriendRequestEntry, error) {
	return r.listRequests(ctx, `
		SELECT fr.from_id, fr.to_id, fr.status, u.username, u.email
		FROM friend_requests fr
		JOIN users u ON u.id = fr.to_id
		WHERE fr.from_id = ? AND fr.status = 'pending'
		ORDER BY fr.created_at`, userID)
}

func (r *friendRepository) listRequests(ctx context.Context, query string, userID uuid.UUID) ([]*repo.FriendRequestEntry, error) {
	var rows []repo.FriendRequestEntry
	if err := r.db.WithContext(ctx).Raw(query, userID).Scan(&rows).Error; err != nil {
		return nil, MapGormError(err)
	}
	out := make([]*repo.FriendRequestEntry, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

func (r *friendRepository) DeleteRequests(ctx context.Context, a, b uuid.UUID) error {
	return MapGormError(r.db.WithContext(ctx).
		Where("(from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)", a, b, b, a).
		Delete(&FriendRequest{}).Error)
}

func (r *friendRepository) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	id1, id2 := social.OrderPair(a, b)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Friendship{}).
		Where("user1_id = ? AND user2_id = ?", id1, id2).
		Count(&count).Error
	if err != nil {
		return false, MapGormError(err)
	}
	return count > 0, nil
}

func (r *friendRepository) CreateFriendship(ctx context.Context, a, b uuid.UUID) error {
	id1, id2 := social.OrderPair(a, b)
	m := Friendship{User1ID: id1, User2ID: id2}
	return MapGormError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *friendRepository) DeleteFriendship(ctx context.Context, a, b uuid.UUID) error {
	id1, id2 := social.OrderPair(a, b)
	res := r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", id1, id2).
		Delete(&Friendship{})
	if res.Error != nil {
		return MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *friendRepository) ListFriends(ctx context.Context, userID uuid.UUID) ([]*user.User, error) {
	var ms []User
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.* FROM users u
		JOIN friendships f
		  ON (f.user1_id = ? AND f.user2_id = u.id)
		  OR (f.user2_id = ? AND f.user1_id = u.id)
		ORDER BY u.username`, userID, userID).
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
