package repository

import (
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain/portfolio"
	"github.com/stockfolio/server/pkg/domain/stocklist"
)

// PortfolioPerformance is a portfolio joined with its weighted day and
// year-to-date performance, computed over the latest candles of its
// holdings. Performance fields are nil when the list holds nothing.
type PortfolioPerformance struct {
	portfolio.Portfolio
	PerformanceDay *float64
	PerformanceYTD *float64
}

// HoldingQuote is a holding joined with the latest candle of its
// symbol. Close and PerformanceDay are nil when no candle exists.
type HoldingQuote struct {
	stocklist.Holding
	Close          *float64
	PerformanceDay *float64
}

// StockListStats is the windowed weighted performance of a list.
type StockListStats struct {
	StockListID uuid.UUID
	Interval    string
	Performance *float64
}

// FriendRequestEntry is a friend request joined with the counterpart's
// public profile fields.
type FriendRequestEntry struct {
	FromID   uuid.UUID
	ToID     uuid.UUID
	Status   string
	Username string
	Email    string
}
