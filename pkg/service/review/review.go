// Package review provides reviews on stock lists. Writing a review
// requires read access to the list; one review per user per list.
package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/social"
	"github.com/stockfolio/server/pkg/domain/stocklist"
	"github.com/stockfolio/server/pkg/repository"
)

// Service provides review operations on top of a UnitOfWork.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a review Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create posts the caller's review on a visible list. A second review
// on the same list surfaces as domain.ErrConflict.
func (s *Service) Create(
	ctx context.Context,
	callerID, slID uuid.UUID,
	content string,
) (*social.Review, error) {
	if err := social.ValidateReview(content); err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, callerID, slID); err != nil {
		return nil, err
	}
	repo, err := s.uow.ReviewRepository()
	if err != nil {
		return nil, err
	}
	rev := &social.Review{
		UserID:      callerID,
		StockListID: slID,
		Content:     content,
		CreatedAt:   time.Now(),
	}
	if err := repo.Create(ctx, rev); err != nil {
		return nil, err
	}
	s.logger.Info("Review created", "userID", callerID, "stockListID", slID)
	return rev, nil
}

// List returns the reviews of a visible list.
func (s *Service) List(ctx context.Context, callerID, slID uuid.UUID) ([]*social.Review, error) {
	if err := s.authorizeRead(ctx, callerID, slID); err != nil {
		return nil, err
	}
	repo, err := s.uow.ReviewRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByStockList(ctx, slID)
}

// Update replaces the caller's review content.
func (s *Service) Update(
	ctx context.Context,
	callerID, slID uuid.UUID,
	content string,
) (*social.Review, error) {
	if err := social.ValidateReview(content); err != nil {
		return nil, err
	}
	repo, err := s.uow.ReviewRepository()
	if err != nil {
		return nil, err
	}
	return repo.Update(ctx, callerID, slID, content)
}

// Delete removes the caller's own review.
func (s *Service) Delete(ctx context.Context, callerID, slID uuid.UUID) error {
	repo, err := s.uow.ReviewRepository()
	if err != nil {
		return err
	}
	return repo.DeleteOwn(ctx, callerID, slID)
}

// DeleteAsOwner lets the list owner moderate someone else's review.
func (s *Service) DeleteAsOwner(ctx context.Context, ownerID, slID, reviewerID uuid.UUID) error {
	repo, err := s.uow.ReviewRepository()
	if err != nil {
		return err
	}
	return repo.DeleteAsOwner(ctx, ownerID, slID, reviewerID)
}

func (s *Service) authorizeRead(ctx context.Context, callerID, slID uuid.UUID) error {
	slRepo, err := s.uow.StockListRepository()
	if err != nil {
		return err
	}
	sl, err := slRepo.Get(ctx, slID)
	if err != nil {
		return err
	}
	if sl.UserID == callerID || sl.Visibility == stocklist.VisibilityPublic {
		return nil
	}
	if sl.Visibility == stocklist.VisibilityShared {
		shRepo, err := s.uow.ShareRepository()
		if err != nil {
			return err
		}
		ok, err := shRepo.Exists(ctx, slID, callerID)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return domain.ErrNotFound
}
