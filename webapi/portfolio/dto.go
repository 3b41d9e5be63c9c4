package portfolio

// CreateInput names a new portfolio.
type CreateInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// RenameInput carries the new name.
type RenameInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ModifyFundsInput carries a signed cash delta in decimal dollars,
// e.g. "250.00" to deposit or "-100.50" to withdraw.
type ModifyFundsInput struct {
	Amount string `json:"amount" validate:"required"`
}

// TransferInput moves cash to another portfolio of the caller.
type TransferInput struct {
	To     string `json:"to" validate:"required,uuid4"`
	Amount string `json:"amount" validate:"required"`
}

// TradeInput is a market buy or sell order.
type TradeInput struct {
	Symbol string `json:"symbol" validate:"required,max=12"`
	Shares int64  `json:"shares" validate:"required,gt=0"`
}
