package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain/user"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, u *user.User, passwordHash string) error {
	m := User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: passwordHash,
		CreatedAt:    u.CreatedAt,
	}
	return MapGormError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, MapGormError(err)
	}
	return toDomainUser(&m), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error; err != nil {
		return nil, MapGormError(err)
	}
	return toDomainUser(&m), nil
}

func (r *userRepository) GetCredentials(ctx context.Context, email string) (*user.User, string, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error; err != nil {
		return nil, "", MapGormError(err)
	}
	return toDomainUser(&m), m.PasswordHash, nil
}

func toDomainUser(m *User) *user.User {
	return &user.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}
