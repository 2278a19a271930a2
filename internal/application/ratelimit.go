package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/ledger-guard/internal/domain"
	"github.com/bnema/ledger-guard/internal/ports"
)

// ModuleRateLimit is the name the engine registers under in the guard chain.
const ModuleRateLimit = "ratelimit"

// RateLimiter is the stateful guard module enforcing a rolling per-account
// transfer quota. It owns the LimiterState handle it was constructed with:
// the default policy, the per-account policy rows, the per-window usage
// counters and the pending opt timestamps. All of its operations are atomic
// under one lock; a failed operation never leaves a partial write behind.
type RateLimiter struct {
	state  *domain.LimiterState
	ledger ports.BalanceReader
	authz  ports.Authorizer
	clock  ports.Clock
	log    zerolog.Logger
	caller string

	mu sync.RWMutex
}

var (
	_ ports.GuardModule  = (*RateLimiter)(nil)
	_ ports.Checkpointer = (*RateLimiter)(nil)
)

// NewRateLimiter builds the engine. ledgerCaller is the identity the ledger
// presents on the guarded transfer path; Check rejects every other caller.
// A nil clock falls back to the system clock.
func NewRateLimiter(state *domain.LimiterState, ledger ports.BalanceReader, authz ports.Authorizer, clock ports.Clock, logger zerolog.Logger, ledgerCaller string) *RateLimiter {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &RateLimiter{
		state:  state,
		ledger: ledger,
		authz:  authz,
		clock:  clock,
		log:    logger.With().Str("component", ModuleRateLimit).Logger(),
		caller: ledgerCaller,
	}
}

func (r *RateLimiter) Name() string {
	return ModuleRateLimit
}

// Check admits or vetoes one transfer against the sender's quota.
//
// Opted-out senders pass without any usage read or write. Otherwise the
// governing policy is the account's own row when opted in, the default
// policy when not. A sender whose stored window is over, or who has no
// usage yet, bypasses bookkeeping entirely while its whole balance fits
// under the limit. Everything else is counted: the transfer fails with
// ErrQuotaExceeded when it would push the window total past the limit
// (reaching the limit exactly is allowed), and commits the new total under
// the current window id otherwise.
func (r *RateLimiter) Check(ctx context.Context, transfer domain.Transfer) error {
	if CallerFrom(ctx) != r.caller {
		return domain.ErrUnauthorizedCaller
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	policy, status := r.effectivePolicy(transfer.Sender)
	if status.OptedOut() {
		return nil
	}

	if policy.Window <= 0 {
		return domain.ErrPolicyWindowZero
	}

	currentID := domain.WindowID(r.clock.Now(), policy.Window)

	balance, err := r.ledger.Balance(ctx, transfer.Sender)
	if err != nil {
		return fmt.Errorf("read sender balance: %w", err)
	}

	record := r.state.Usage[transfer.Sender]
	stale := record.Stale(currentID)

	if (stale || record.Total == 0) && balance <= policy.Limit {
		return nil
	}

	base := record.Total
	if stale {
		base = 0
	}

	if transfer.Amount > policy.Limit-base {
		r.log.Debug().
			Str("sender", string(transfer.Sender)).
			Int64("amount", int64(transfer.Amount)).
			Int64("used", int64(base)).
			Int64("limit", int64(policy.Limit)).
			Msg("quota exceeded")

		return domain.ErrQuotaExceeded
	}

	r.state.Usage[transfer.Sender] = domain.UsageRecord{
		Total:    base + transfer.Amount,
		WindowID: currentID,
	}

	return nil
}

// Checkpoint clones the limiter state so the host can undo usage written by
// an admitted check when a later module vetoes the same transfer.
func (r *RateLimiter) Checkpoint() func() {
	r.mu.Lock()
	snap := r.state.Clone()
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		r.state.Restore(snap)
		r.mu.Unlock()
	}
}

// effectivePolicy resolves the window/limit pair governing account and the
// status that selected it. Callers must hold r.mu.
func (r *RateLimiter) effectivePolicy(account domain.AccountID) (domain.Policy, domain.AccountStatus) {
	row := r.state.Accounts[account]
	status := row.Status.Normalize()
	if status.OptedIn() {
		return row.Policy(), status
	}

	return r.state.Default, status
}
