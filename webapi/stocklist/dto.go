package stocklist

import "time"

// CreateInput names a new list. Visibility defaults to private.
type CreateInput struct {
	Name       string `json:"name" validate:"required,max=100"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=private shared public"`
}

// RenameInput carries the new name.
type RenameInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// EntryInput overwrites the share count for a symbol. A zero amount
// removes the entry.
type EntryInput struct {
	Symbol string `json:"symbol" validate:"required,max=12"`
	Amount int64  `json:"amount" validate:"gte=0"`
}

// DeleteEntryInput names the symbol to drop. Sent on DELETE with no
// body the whole list goes instead.
type DeleteEntryInput struct {
	Symbol string `json:"symbol"`
}

// VisibilityInput moves a list between private, shared and public.
type VisibilityInput struct {
	Visibility string `json:"visibility" validate:"required,oneof=private shared public"`
}

// CandleInput is one user-recorded observation.
type CandleInput struct {
	Symbol    string    `json:"symbol" validate:"required,max=12"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Open      float64   `json:"open" validate:"required,gt=0"`
	High      float64   `json:"high" validate:"required,gt=0"`
	Low       float64   `json:"low" validate:"required,gt=0"`
	Close     float64   `json:"close" validate:"required,gt=0"`
	Volume    int64     `json:"volume" validate:"gte=0"`
}

// UploadInput is a batch of recorded candles.
type UploadInput struct {
	Candles []CandleInput `json:"candles" validate:"required,min=1,dive"`
}
