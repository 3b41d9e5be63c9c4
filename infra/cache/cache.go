// Package cache holds the latest-quote cache placed in front of the
// price series tables. A miss is reported as (nil, nil) so callers can
// fall through to the database.
package cache

import (
	"context"
	"time"

	"github.com/stockfolio/server/pkg/domain/stock"
)

// QuoteCache stores the most recent candle per symbol.
type QuoteCache interface {
	Get(ctx context.Context, key string) (*stock.Candle, error)
	Set(ctx context.Context, key string, c *stock.Candle, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
