// Package stocklist contains the stock list aggregate: a named,
// shareable collection of (symbol, amount) holdings.
package stocklist

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
)

// Visibility controls who can read a stock list.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityShared  Visibility = "shared"
	VisibilityPublic  Visibility = "public"
)

// Valid reports whether v is one of the known visibility states.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityShared, VisibilityPublic:
		return true
	}
	return false
}

// StockList is a watch-list of holdings. Lists backing a portfolio are
// created and deleted together with it.
type StockList struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	Visibility Visibility
	CreatedAt  time.Time
}

// Holding is a single (list, symbol, quantity) row. A zero amount is
// never persisted by the buy/sell flow; it signals removal.
type Holding struct {
	StockListID uuid.UUID
	Symbol      string
	Amount      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateEntry checks a set-style upsert of (symbol, amount).
func ValidateEntry(symbol string, amount int64) error {
	if symbol == "" {
		return domain.ErrMissingParameters
	}
	if amount < 0 {
		return domain.ErrValidation
	}
	return nil
}
