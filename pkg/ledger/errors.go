package ledger

import "errors"

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidAccountID = errors.New("invalid account ID")
	ErrNoRecipients     = errors.New("at least one recipient is required")
)
