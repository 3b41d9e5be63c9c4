// Package user provides signup and login. Passwords are hashed with
// bcrypt before they reach the storage layer.
package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/user"
	"github.com/stockfolio/server/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

// Service provides user account operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// dummyHash keeps login timing flat when the email is unknown.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Signup registers a new account. Duplicate usernames or emails
// surface as domain.ErrConflict.
func (s *Service) Signup(
	ctx context.Context,
	username, email, password string,
) (u *user.User, err error) {
	if err := user.ValidateSignup(username, email, password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u = &user.User{
			ID:        uuid.New(),
			Username:  username,
			Email:     email,
			CreatedAt: time.Now(),
		}
		return repo.Create(ctx, u, string(hash))
	})
	if err != nil {
		s.logger.Error("Signup failed", "username", username, "error", err)
		return nil, err
	}
	s.logger.Info("User registered", "userID", u.ID, "username", username)
	return u, nil
}

// Login checks the credentials and returns the account. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingParameters
	}
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	u, hash, err := repo.GetCredentials(ctx, email)
	if err != nil {
		// Burn a comparison anyway to keep timing flat.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		s.logger.Warn("Login rejected", "email", email)
		return nil, domain.ErrUnauthorized
	}
	s.logger.Info("Login successful", "userID", u.ID)
	return u, nil
}

// Get retrieves a user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// GetByEmail retrieves a user by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.GetByEmail(ctx, email)
}
