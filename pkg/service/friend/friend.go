// Package friend provides the friend request lifecycle: send, accept,
// reject, unfriend and the request/friend listings.
//
// Requests are directed rows; an accepted request additionally creates
// the undirected friendship edge in the same transaction. A rejected
// request can be re-sent by flipping it back to pending.
package friend

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/social"
	"github.com/stockfolio/server/pkg/domain/user"
	"github.com/stockfolio/server/pkg/repository"
)

// Service provides friendship operations on top of a UnitOfWork.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a friend Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// SendRequest sends a friend request to the user with the given email.
// Self-requests, existing friendships and pending requests in either
// direction are refused; a previously rejected request is re-sent.
func (s *Service) SendRequest(ctx context.Context, fromID uuid.UUID, toEmail string) (err error) {
	if toEmail == "" {
		return domain.ErrMissingParameters
	}
	log := s.logger.With("fromID", fromID, "toEmail", toEmail)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		uRepo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		to, err := uRepo.GetByEmail(ctx, toEmail)
		if err != nil {
			return err
		}
		if to.ID == fromID {
			return domain.ErrValidation
		}
		fRepo, err := uow.FriendRepository()
		if err != nil {
			return err
		}
		friends, err := fRepo.AreFriends(ctx, fromID, to.ID)
		if err != nil {
			return err
		}
		if friends {
			return domain.ErrConflict
		}
		// A pending request in either direction blocks a new one.
		if req, err := fRepo.GetRequest(ctx, to.ID, fromID); err == nil {
			if req.Status == social.RequestPending {
				return domain.ErrConflict
			}
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if req, err := fRepo.GetRequest(ctx, fromID, to.ID); err == nil {
			if req.Status == social.RequestPending {
				return domain.ErrConflict
			}
			return fRepo.SetRequestStatus(ctx, fromID, to.ID, social.RequestPending)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fRepo.CreateRequest(ctx, fromID, to.ID)
	})
	if err != nil {
		log.Error("SendRequest failed", "error", err)
		return err
	}
	log.Info("Friend request sent")
	return nil
}

// Accept accepts a pending request addressed to the caller and creates
// the friendship in the same transaction.
func (s *Service) Accept(ctx context.Context, callerID, fromID uuid.UUID) (err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		fRepo, err := uow.FriendRepository()
		if err != nil {
			return err
		}
		req, err := fRepo.GetRequest(ctx, fromID, callerID)
		if err != nil {
			return err
		}
		if req.Status != social.RequestPending {
			return domain.ErrValidation
		}
		if err := fRepo.SetRequestStatus(ctx, fromID, callerID, social.RequestAccepted); err != nil {
			return err
		}
		return fRepo.CreateFriendship(ctx, fromID, callerID)
	})
	if err != nil {
		s.logger.Error("Accept failed", "callerID", callerID, "fromID", fromID, "error", err)
		return err
	}
	s.logger.Info("Friend request accepted", "callerID", callerID, "fromID", fromID)
	return nil
}

// Reject marks a pending request addressed to the caller as rejected.
func (s *Service) Reject(ctx context.Context, callerID, fromID uuid.UUID) error {
	fRepo, err := s.uow.FriendRepository()
	if err != nil {
		return err
	}
	req, err := fRepo.GetRequest(ctx, fromID, callerID)
	if err != nil {
		return err
	}
	if req.Status != social.RequestPending {
		return domain.ErrValidation
	}
	return fRepo.SetRequestStatus(ctx, fromID, callerID, social.RequestRejected)
}

// Remove deletes the friendship and clears the request rows so either
// side can invite again later.
func (s *Service) Remove(ctx context.Context, callerID, otherID uuid.UUID) (err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		fRepo, err := uow.FriendRepository()
		if err != nil {
			return err
		}
		if err := fRepo.DeleteFriendship(ctx, callerID, otherID); err != nil {
			return err
		}
		return fRepo.DeleteRequests(ctx, callerID, otherID)
	})
	if err != nil {
		s.logger.Error("Remove friend failed", "callerID", callerID, "otherID", otherID, "error", err)
		return err
	}
	s.logger.Info("Friend removed", "callerID", callerID, "otherID", otherID)
	return nil
}

// ListIncoming returns pending requests addressed to the caller.
func (s *Service) ListIncoming(ctx context.Context, callerID uuid.UUID) ([]*repository.FriendRequestEntry, error) {
	fRepo, err := s.uow.FriendRepository()
	if err != nil {
		return nil, err
	}
	return fRepo.ListIncoming(ctx, callerID)
}

// ListOutgoing returns the caller's pending requests.
func (s *Service) ListOutgoing(ctx context.Context, callerID uuid.UUID) ([]*repository.FriendRequestEntry, error) {
	fRepo, err := s.uow.FriendRepository()
	if err != nil {
		return nil, err
	}
	return fRepo.ListOutgoing(ctx, callerID)
}

// ListFriends returns the caller's friends.
func (s *Service) ListFriends(ctx context.Context, callerID uuid.UUID) ([]*user.User, error) {
	fRepo, err := s.uow.FriendRepository()
	if err != nil {
		return nil, err
	}
	return fRepo.ListFriends(ctx, callerID)
}
