package domain

import (
	"fmt"
	"strings"
)

type AccountID string

// Amount is a transfer volume expressed in the ledger asset's base units.
type Amount int64

type Transfer struct {
	Sender    AccountID
	Recipient AccountID
	Amount    Amount
}

func (t Transfer) Validate() error {
	if strings.TrimSpace(string(t.Sender)) == "" {
		return fmt.Errorf("sender is required: %w", ErrInvalidTransfer)
	}
	if strings.TrimSpace(string(t.Recipient)) == "" {
		return fmt.Errorf("recipient is required: %w", ErrInvalidTransfer)
	}
	if t.Amount <= 0 {
		return fmt.Errorf("amount must be positive: %w", ErrInvalidTransfer)
	}

	return nil
}
