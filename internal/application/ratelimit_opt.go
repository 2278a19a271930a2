package application

import (
	"context"
	"time"

	"github.com/bnema/ledger-guard/internal/domain"
)

// The opt protocol is two-phase by design: a request only records its own
// timestamp, and the matching activate call is refused until the request
// has aged past the window length governing the account at activation
// time. Instant self-service policy changes would let a sender lift its
// own limit right before a drain.

// RequestOptOut records now as the account's pending opt-out timestamp,
// overwriting any prior request in the same direction.
func (r *RateLimiter) RequestOptOut(ctx context.Context, account domain.AccountID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Accounts[account].Status.Overridden() {
		return domain.ErrOverrideActive
	}

	r.state.PendingOptOut[account] = r.clock.Now()
	r.log.Info().Str("account", string(account)).Msg("opt-out requested")

	return nil
}

// ActivateOptOut flips the account's status to OPT_OUT once its pending
// request has aged past the governing delay. Only the status flips; the
// row's window and limit fields stay as they were.
func (r *RateLimiter) ActivateOptOut(ctx context.Context, account domain.AccountID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.state.Accounts[account]
	if row.Status.Overridden() {
		return domain.ErrOverrideActive
	}

	pending := r.state.PendingOptOut[account]
	if pending.IsZero() {
		return domain.ErrOptOutNotRequested
	}

	if !r.clock.Now().After(pending.Add(r.optDelay(row))) {
		return domain.ErrOptOutNotReady
	}

	row.Status = domain.StatusOptOut
	r.state.Accounts[account] = row
	delete(r.state.PendingOptOut, account)
	r.log.Info().Str("account", string(account)).Msg("opt-out activated")

	return nil
}

// RequestOptIn records now as the account's pending opt-in timestamp,
// overwriting any prior request in the same direction. The custom policy
// parameters are supplied at activation, not here.
func (r *RateLimiter) RequestOptIn(ctx context.Context, account domain.AccountID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Accounts[account].Status.Overridden() {
		return domain.ErrOverrideActive
	}

	r.state.PendingOptIn[account] = r.clock.Now()
	r.log.Info().Str("account", string(account)).Msg("opt-in requested")

	return nil
}

// ActivateOptIn replaces the account's whole policy row with the supplied
// custom policy under OPT_IN status, once the pending request has aged past
// the governing delay.
func (r *RateLimiter) ActivateOptIn(ctx context.Context, account domain.AccountID, window time.Duration, limit domain.Amount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.state.Accounts[account]
	if row.Status.Overridden() {
		return domain.ErrOverrideActive
	}

	pending := r.state.PendingOptIn[account]
	if pending.IsZero() {
		return domain.ErrOptInNotRequested
	}

	if !r.clock.Now().After(pending.Add(r.optDelay(row))) {
		return domain.ErrOptInNotReady
	}

	r.state.Accounts[account] = domain.AccountPolicy{
		Window: window,
		Limit:  limit,
		Status: domain.StatusOptIn,
	}
	delete(r.state.PendingOptIn, account)
	r.log.Info().
		Str("account", string(account)).
		Dur("window", window).
		Int64("limit", int64(limit)).
		Msg("opt-in activated")

	return nil
}

// optDelay resolves how long a pending request must age before activation:
// the account's own window while it is opted in, the default window
// otherwise. Callers must hold r.mu.
func (r *RateLimiter) optDelay(row domain.AccountPolicy) time.Duration {
	if row.Status.Normalize() == domain.StatusOptIn {
		return row.Window
	}

	return r.state.Default.Window
}
