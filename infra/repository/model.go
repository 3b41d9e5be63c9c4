// Package repository contains the GORM models, the unit of work and
// the per-entity repositories of the postgres storage layer.
package repository

import (
	"time"

	"github.com/google/uuid"
)

// User is a user row. The bcrypt hash never leaves this layer except
// through GetCredentials.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "users" }

// Portfolio is a portfolio row. Cash is stored as integer cents; the
// (user_id, name) pair is unique.
type Portfolio struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_portfolios_user_name;not null"`
	StockListID uuid.UUID `gorm:"type:uuid;not null"`
	Name        string    `gorm:"uniqueIndex:idx_portfolios_user_name;not null"`
	CashCents   int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

func (Portfolio) TableName() string { return "portfolios" }

// StockList is a stock list row.
type StockList struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name       string    `gorm:"not null"`
	Visibility string    `gorm:"not null;default:'private'"`
	CreatedAt  time.Time
}

func (StockList) TableName() string { return "stock_lists" }

// Holding is one (list, symbol) quantity row.
type Holding struct {
	StockListID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Symbol      string    `gorm:"primaryKey;size:16"`
	Amount      int64     `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Holding) TableName() string { return "stock_owned" }

// Candle is one shared historical OHLCV observation.
type Candle struct {
	Symbol    string    `gorm:"primaryKey;size:16;index:idx_candles_symbol_ts,sort:desc"`
	Timestamp time.Time `gorm:"primaryKey;index:idx_candles_symbol_ts,sort:desc"`
	Open      float64   `gorm:"not null"`
	High      float64   `gorm:"not null"`
	Low       float64   `gorm:"not null"`
	Close     float64   `gorm:"not null"`
	Volume    int64     `gorm:"not null"`
}

func (Candle) TableName() string { return "historical_stock_performance" }

// RecordedCandle is a user-recorded observation scoped to a stock list
// and merged with the shared series for scoped lookups.
type RecordedCandle struct {
	StockListID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Symbol      string    `gorm:"primaryKey;size:16"`
	Timestamp   time.Time `gorm:"primaryKey"`
	Open        float64   `gorm:"not null"`
	High        float64   `gorm:"not null"`
	Low         float64   `gorm:"not null"`
	Close       float64   `gorm:"not null"`
	Volume      int64     `gorm:"not null"`
}

func (RecordedCandle) TableName() string { return "recorded_stock_performance" }

// FriendRequest is a directed friend request row.
type FriendRequest struct {
	FromID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ToID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status    string    `gorm:"not null;default:'pending'"`
	CreatedAt time.Time
}

func (FriendRequest) TableName() string { return "friend_requests" }

// Friendship stores each pair once with user1_id < user2_id.
type Friendship struct {
	User1ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	User2ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

func (Friendship) TableName() string { return "friendships" }

// Review is one user's review of a stock list.
type Review struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	StockListID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Content     string    `gorm:"size:4000;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Review) TableName() string { return "user_reviews" }

// Share grants a user access to a shared stock list.
type Share struct {
	StockListID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt   time.Time
}

func (Share) TableName() string { return "shares" }

// Prediction caches one forecast run. ScopeID is uuid.Nil for the
// shared series.
type Prediction struct {
	Symbol    string    `gorm:"primaryKey;size:16"`
	Interval  string    `gorm:"primaryKey;size:16"`
	ScopeID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Points    []byte    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
}

func (Prediction) TableName() string { return "predictions" }

// Models lists every model for AutoMigrate.
func Models() []any {
	return []any{
		&User{}, &Portfolio{}, &StockList{}, &Holding{}, &Candle{},
		&RecordedCandle{}, &FriendRequest{}, &Friendship{}, &Review{},
		&Share{}, &Prediction{},
	}
}
