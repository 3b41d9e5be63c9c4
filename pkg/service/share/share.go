// Package share grants friends access to stock lists. Sharing a
// private list promotes it to shared visibility in the same
// transaction.
package share

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/stocklist"
	"github.com/stockfolio/server/pkg/domain/user"
	"github.com/stockfolio/server/pkg/repository"
)

// Service provides share operations on top of a UnitOfWork.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a share Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Share grants a friend access to an owned list. Public lists need no
// shares; sharing one is refused.
func (s *Service) Share(ctx context.Context, ownerID, slID uuid.UUID, friendEmail string) (err error) {
	if friendEmail == "" {
		return domain.ErrMissingParameters
	}
	log := s.logger.With("ownerID", ownerID, "stockListID", slID, "friendEmail", friendEmail)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		slRepo, err := uow.StockListRepository()
		if err != nil {
			return err
		}
		sl, err := slRepo.GetOwned(ctx, ownerID, slID)
		if err != nil {
			return err
		}
		if sl.Visibility == stocklist.VisibilityPublic {
			return domain.ErrValidation
		}
		uRepo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		friend, err := uRepo.GetByEmail(ctx, friendEmail)
		if err != nil {
			return err
		}
		if friend.ID == ownerID {
			return domain.ErrValidation
		}
		fRepo, err := uow.FriendRepository()
		if err != nil {
			return err
		}
		friends, err := fRepo.AreFriends(ctx, ownerID, friend.ID)
		if err != nil {
			return err
		}
		if !friends {
			return domain.ErrForbidden
		}
		shRepo, err := uow.ShareRepository()
		if err != nil {
			return err
		}
		if err := shRepo.Create(ctx, slID, friend.ID); err != nil {
			return err
		}
		if sl.Visibility == stocklist.VisibilityPrivate {
			return slRepo.SetVisibility(ctx, slID, stocklist.VisibilityShared)
		}
		return nil
	})
	if err != nil {
		log.Error("Share failed", "error", err)
		return err
	}
	log.Info("Stock list shared")
	return nil
}

// ListUsers returns who an owned list is shared with.
func (s *Service) ListUsers(ctx context.Context, ownerID, slID uuid.UUID) ([]*user.User, error) {
	slRepo, err := s.uow.StockListRepository()
	if err != nil {
		return nil, err
	}
	if _, err := slRepo.GetOwned(ctx, ownerID, slID); err != nil {
		return nil, err
	}
	shRepo, err := s.uow.ShareRepository()
	if err != nil {
		return nil, err
	}
	return shRepo.ListUsers(ctx, slID)
}
