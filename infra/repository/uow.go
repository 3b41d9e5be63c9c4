package repository

import (
	"context"

	repo "github.com/stockfolio/server/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do are bound to the
// transaction session, so every statement issued through them commits
// or rolls back as a unit.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW over the given connection pool.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside one database transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction if one is active, else the pool.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) PortfolioRepository() (repo.PortfolioRepository, error) {
	return &portfolioRepository{db: u.session()}, nil
}

func (u *UoW) StockListRepository() (repo.StockListRepository, error) {
	return &stockListRepository{db: u.session()}, nil
}

func (u *UoW) HoldingRepository() (repo.HoldingRepository, error) {
	return &holdingRepository{db: u.session()}, nil
}

func (u *UoW) StockRepository() (repo.StockRepository, error) {
	return &stockRepository{db: u.session()}, nil
}

func (u *UoW) PredictionRepository() (repo.PredictionRepository, error) {
	return &predictionRepository{db: u.session()}, nil
}

func (u *UoW) UserRepository() (repo.UserRepository, error) {
	return &userRepository{db: u.session()}, nil
}

func (u *UoW) FriendRepository() (repo.FriendRepository, error) {
	return &friendRepository{db: u.session()}, nil
}

func (u *UoW) ReviewRepository() (repo.ReviewRepository, error) {
	return &reviewRepository{db: u.session()}, nil
}

func (u *UoW) ShareRepository() (repo.ShareRepository, error) {
	return &shareRepository{db: u.session()}, nil
}
