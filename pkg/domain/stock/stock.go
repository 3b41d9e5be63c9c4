// Package stock contains the price-series types shared by the stock
// service, the storage layer and the predictor.
package stock

import (
	"time"

	"github.com/stockfolio/server/pkg/domain"
)

// Candle is one OHLCV observation for a symbol. Prices are plain
// floats: market data is presentational here and never feeds the cash
// bookkeeping without being rounded into money.Money first.
type Candle struct {
	Symbol    string
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// Period is a user-facing history window.
type Period string

const (
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
	PeriodQuarter   Period = "quarter"
	PeriodYear      Period = "1 year"
	PeriodFiveYears Period = "5 years"
)

// Interval converts a period into the SQL interval used to window the
// series. Unknown periods default to one week, matching the original
// behavior.
func (p Period) Interval() string {
	switch p {
	case PeriodFiveYears:
		return "5 years"
	case PeriodYear:
		return "1 year"
	case PeriodQuarter:
		return "3 months"
	case PeriodMonth:
		return "1 month"
	default:
		return "1 week"
	}
}

// ValidateCandle checks a user-recorded observation before it is
// appended to a list's series.
func ValidateCandle(c Candle) error {
	if c.Symbol == "" || c.Timestamp.IsZero() {
		return domain.ErrMissingParameters
	}
	if c.Open <= 0 || c.Close <= 0 || c.High <= 0 || c.Low <= 0 || c.Volume < 0 {
		return domain.ErrValidation
	}
	return nil
}

// PredictionPoint is one forecast row produced by the predictor.
type PredictionPoint struct {
	Date  time.Time `json:"ds"`
	Yhat  float64   `json:"yhat"`
	Lower float64   `json:"yhat_lower"`
	Upper float64   `json:"yhat_upper"`
}
