// Package portfolio contains the portfolio aggregate and the pure
// validation rules for every operation that touches its cash balance.
// The rules here are checked again at the storage layer (conditional
// updates, row locks) so concurrent requests cannot bypass them.
package portfolio

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/money"
)

// Portfolio is a named account holding a cash balance and a reference
// to the stock list that records its holdings.
type Portfolio struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	StockListID uuid.UUID
	Name        string
	Cash        money.Money
	CreatedAt   time.Time
}

// ValidateModify checks that applying the signed delta would not drive
// the cash balance negative.
func (p *Portfolio) ValidateModify(delta money.Money) error {
	if p.Cash.Add(delta).IsNegative() {
		return domain.ErrNegativeBalance
	}
	return nil
}

// ValidateTransfer checks an outgoing transfer of amount to destID.
func (p *Portfolio) ValidateTransfer(ownerID, destID uuid.UUID, amount money.Money) error {
	if p.UserID != ownerID {
		return domain.ErrNotFound
	}
	if p.ID == destID {
		return domain.ErrValidation
	}
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if p.Cash.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// ValidateBuy checks that the portfolio can cover the notional cost of
// a purchase.
func (p *Portfolio) ValidateBuy(cost money.Money) error {
	if !cost.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if p.Cash.LessThan(cost) {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// ValidateSell checks that held shares cover the requested sale.
func ValidateSell(held, shares int64) error {
	if shares <= 0 {
		return domain.ErrValidation
	}
	if held < shares {
		return domain.ErrInsufficientShares
	}
	return nil
}
