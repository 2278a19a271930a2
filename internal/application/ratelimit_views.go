package application

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/bnema/ledger-guard/internal/domain"
)

func (r *RateLimiter) DefaultPolicy() domain.Policy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state.Default
}

func (r *RateLimiter) AccountPolicy(account domain.AccountID) domain.AccountPolicy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state.Accounts[account]
}

func (r *RateLimiter) Usage(account domain.AccountID) domain.UsageRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state.Usage[account]
}

func (r *RateLimiter) PendingOptOut(account domain.AccountID) time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state.PendingOptOut[account]
}

func (r *RateLimiter) PendingOptIn(account domain.AccountID) time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state.PendingOptIn[account]
}

// AvailableToTransfer reports how much more the account could move in its
// current window. It mirrors Check's policy resolution but never reads the
// balance and never writes, so the fast-path bypass does not apply here.
func (r *RateLimiter) AvailableToTransfer(account domain.AccountID) domain.Availability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	policy, status := r.effectivePolicy(account)
	if status.OptedOut() {
		return domain.Availability{Unlimited: true}
	}

	if policy.Window <= 0 {
		return domain.Availability{}
	}

	record := r.state.Usage[account]
	if record.Stale(domain.WindowID(r.clock.Now(), policy.Window)) {
		return domain.Availability{Remaining: policy.Limit}
	}

	remaining := policy.Limit - record.Total
	if remaining < 0 {
		remaining = 0
	}

	return domain.Availability{Remaining: remaining}
}

// NextWindowStart reports when the account's current usage window ends. If
// no window is live (stale record, zero usage, opt-out, zero window) a
// transfer right now would start fresh, so the current instant comes back.
func (r *RateLimiter) NextWindowStart(account domain.AccountID) time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.clock.Now()

	policy, status := r.effectivePolicy(account)
	if status.OptedOut() || policy.Window <= 0 {
		return now
	}

	if !r.state.Usage[account].Live(domain.WindowID(now, policy.Window)) {
		return now
	}

	return domain.WindowStart(r.state.Usage[account].WindowID+1, policy.Window)
}

// KnownAccounts returns every account the limiter holds any row for,
// sorted.
func (r *RateLimiter) KnownAccounts() []domain.AccountID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[domain.AccountID]struct{}, len(r.state.Usage))
	for account := range r.state.Accounts {
		seen[account] = struct{}{}
	}
	for account := range r.state.Usage {
		seen[account] = struct{}{}
	}
	for account := range r.state.PendingOptOut {
		seen[account] = struct{}{}
	}
	for account := range r.state.PendingOptIn {
		seen[account] = struct{}{}
	}

	accounts := make([]domain.AccountID, 0, len(seen))
	for account := range seen {
		accounts = append(accounts, account)
	}
	slices.Sort(accounts)

	return accounts
}

// AccountQuota assembles the full status row for one account, including
// its ledger balance.
func (r *RateLimiter) AccountQuota(ctx context.Context, account domain.AccountID) (AccountQuota, error) {
	balance, err := r.ledger.Balance(ctx, account)
	if err != nil {
		return AccountQuota{}, fmt.Errorf("read balance: %w", err)
	}

	r.mu.RLock()
	policy, status := r.effectivePolicy(account)
	record := r.state.Usage[account]
	pendingOut := r.state.PendingOptOut[account]
	pendingIn := r.state.PendingOptIn[account]
	r.mu.RUnlock()

	return AccountQuota{
		Account:       account,
		Status:        status,
		Policy:        policy,
		Balance:       balance,
		Usage:         record,
		Available:     r.AvailableToTransfer(account),
		NextWindowAt:  r.NextWindowStart(account),
		PendingOptOut: pendingOut,
		PendingOptIn:  pendingIn,
	}, nil
}
