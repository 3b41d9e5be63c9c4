// Package social contains the friendship, review and share entities
// that hang off users and stock lists.
package social

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
)

// RequestStatus is the lifecycle state of a friend request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// FriendRequest is a directed request from one user to another.
type FriendRequest struct {
	FromID    uuid.UUID
	ToID      uuid.UUID
	Status    RequestStatus
	CreatedAt time.Time
}

// Friendship is an undirected edge stored with its endpoints ordered so
// each pair appears exactly once.
type Friendship struct {
	User1ID   uuid.UUID
	User2ID   uuid.UUID
	CreatedAt time.Time
}

// OrderPair returns the two ids in storage order (lexicographic on the
// UUID string, mirroring the original's min/max on integer ids).
func OrderPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

// Review is a user's comment on a stock list.
type Review struct {
	UserID      uuid.UUID
	StockListID uuid.UUID
	Content     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MaxReviewLength caps review content.
const MaxReviewLength = 4000

// ValidateReview checks review content constraints.
func ValidateReview(content string) error {
	if content == "" {
		return domain.ErrMissingParameters
	}
	if len(content) > MaxReviewLength {
		return domain.ErrValidation
	}
	return nil
}

// Share grants a user read access to a shared stock list.
type Share struct {
	StockListID uuid.UUID
	UserID      uuid.UUID
	CreatedAt   time.Time
}
