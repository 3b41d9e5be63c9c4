// Package user contains the user entity.
package user

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
)

// User is an account holder. The password is stored only as a bcrypt
// hash and never leaves the persistence layer.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	CreatedAt time.Time
}

// ValidateSignup checks the minimal signup requirements.
func ValidateSignup(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return domain.ErrMissingParameters
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.ErrValidation
	}
	return nil
}
