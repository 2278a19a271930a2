package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorizedCaller = errors.New("caller is not the registered ledger")
	ErrQuotaExceeded      = errors.New("transfer quota exceeded")
	ErrPolicyWindowZero   = errors.New("policy window length is not positive")
	ErrOverrideActive     = errors.New("account status is pinned by an override")
	ErrOptOutNotRequested = errors.New("opt-out was not requested")
	ErrOptOutNotReady     = errors.New("opt-out delay has not elapsed")
	ErrOptInNotRequested  = errors.New("opt-in was not requested")
	ErrOptInNotReady      = errors.New("opt-in delay has not elapsed")
	ErrUnauthorized       = errors.New("caller is not authorized")
	ErrReentrantCheck     = errors.New("guard check re-entered during a transfer")
	ErrInvalidTransfer    = errors.New("invalid transfer")
	ErrInsufficientFunds  = errors.New("insufficient funds")
)

// GuardError reports which module in the dispatch chain rejected a transfer.
// Unwrap exposes the module's own error so callers can keep matching with
// errors.Is and errors.As.
type GuardError struct {
	Module string
	Err    error
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("guard %q rejected transfer: %v", e.Module, e.Err)
}

func (e *GuardError) Unwrap() error {
	return e.Err
}
