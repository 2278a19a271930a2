package application

import (
	"context"
	"fmt"

	"github.com/bnema/ledger-guard/internal/domain"
)

// Admin setters overwrite unconditionally. None of them validates its
// input: a zero window is caught lazily by Check, and a usage total above
// the limit simply blocks the account until the window rolls over.

// SetDefaultPolicy replaces the process-wide default policy.
func (r *RateLimiter) SetDefaultPolicy(ctx context.Context, caller domain.AccountID, policy domain.Policy) error {
	if err := r.authz.Permit(ctx, caller, domain.OpSetDefaultPolicy); err != nil {
		return fmt.Errorf("authorize set default policy: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.Default = policy
	r.log.Info().
		Str("caller", string(caller)).
		Dur("window", policy.Window).
		Int64("limit", int64(policy.Limit)).
		Msg("default policy set")

	return nil
}

// SetAccountPolicy replaces an account's policy row wholesale. This is the
// only path into the override statuses.
func (r *RateLimiter) SetAccountPolicy(ctx context.Context, caller, account domain.AccountID, policy domain.AccountPolicy) error {
	if err := r.authz.Permit(ctx, caller, domain.OpSetAccountPolicy); err != nil {
		return fmt.Errorf("authorize set account policy: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.Accounts[account] = policy
	r.log.Info().
		Str("caller", string(caller)).
		Str("account", string(account)).
		Str("status", string(policy.Status.Normalize())).
		Msg("account policy set")

	return nil
}

// SetUsage overwrites an account's usage record. Operational override for
// clearing or backdating usage.
func (r *RateLimiter) SetUsage(ctx context.Context, caller, account domain.AccountID, record domain.UsageRecord) error {
	if err := r.authz.Permit(ctx, caller, domain.OpSetUsage); err != nil {
		return fmt.Errorf("authorize set usage: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.Usage[account] = record
	r.log.Info().
		Str("caller", string(caller)).
		Str("account", string(account)).
		Int64("total", int64(record.Total)).
		Int64("window_id", record.WindowID).
		Msg("usage record set")

	return nil
}

// ResetAccountPolicy drops the account's policy row so it follows the
// default policy again. Pending opt requests are left in place; activation
// re-checks them against the then-current status.
func (r *RateLimiter) ResetAccountPolicy(ctx context.Context, caller, account domain.AccountID) error {
	if err := r.authz.Permit(ctx, caller, domain.OpResetAccountPolicy); err != nil {
		return fmt.Errorf("authorize reset account policy: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.state.Accounts, account)
	r.log.Info().
		Str("caller", string(caller)).
		Str("account", string(account)).
		Msg("account policy reset")

	return nil
}
