// Package memory is the sandbox ledger host. It keeps balances in
// process, serializes transfers, and runs each one through the guard
// chain between a checkpoint and a commit, so a rejection anywhere in
// the chain leaves no trace of the earlier modules' bookkeeping.
package memory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/ledger-guard/internal/application"
	"github.com/bnema/ledger-guard/internal/domain"
	"github.com/bnema/ledger-guard/internal/ports"
)

type Ledger struct {
	// transferMu serializes admission and commit; mu guards the balance
	// map alone, so guard modules may read balances mid-transfer.
	transferMu sync.Mutex
	mu         sync.RWMutex

	balances map[domain.AccountID]domain.Amount
	guard    ports.TransferGuard
	journal  ports.DecisionJournal
	authz    ports.Authorizer
	clock    ports.Clock
	log      zerolog.Logger
	token    string
}

var _ ports.BalanceReader = (*Ledger)(nil)

func NewLedger(
	balances map[domain.AccountID]domain.Amount,
	guard ports.TransferGuard,
	journal ports.DecisionJournal,
	authz ports.Authorizer,
	clock ports.Clock,
	logger zerolog.Logger,
	token string,
) *Ledger {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if balances == nil {
		balances = map[domain.AccountID]domain.Amount{}
	} else {
		balances = maps.Clone(balances)
	}

	return &Ledger{
		balances: balances,
		guard:    guard,
		journal:  journal,
		authz:    authz,
		clock:    clock,
		log:      logger.With().Str("component", "ledger").Logger(),
		token:    token,
	}
}

// Balance reports the account's holdings. Unknown accounts hold zero.
func (l *Ledger) Balance(ctx context.Context, account domain.AccountID) (domain.Amount, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balances[account], nil
}

// Balances returns a copy of every non-zero holding.
func (l *Ledger) Balances() map[domain.AccountID]domain.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return maps.Clone(l.balances)
}

// SetBalance overwrites an account's holdings. Capability-gated; the
// sandbox way of funding accounts.
func (l *Ledger) SetBalance(ctx context.Context, caller, account domain.AccountID, amount domain.Amount) error {
	if err := l.authz.Permit(ctx, caller, domain.OpSetBalance); err != nil {
		return fmt.Errorf("authorize set balance: %w", err)
	}

	l.mu.Lock()
	l.balances[account] = amount
	l.mu.Unlock()

	l.log.Info().
		Str("caller", string(caller)).
		Str("account", string(account)).
		Int64("amount", int64(amount)).
		Msg("balance set")

	return nil
}

// Transfer moves amount from sender to recipient if the guard chain
// admits it. The transfer is atomic: either the guards all pass and the
// balances move, or the guards' own bookkeeping is rolled back to the
// pre-transfer checkpoint and nothing moves.
func (l *Ledger) Transfer(ctx context.Context, transfer domain.Transfer) error {
	if application.CheckInFlight(ctx) {
		return domain.ErrReentrantCheck
	}

	if err := transfer.Validate(); err != nil {
		return err
	}

	l.transferMu.Lock()
	defer l.transferMu.Unlock()

	l.mu.RLock()
	held := l.balances[transfer.Sender]
	l.mu.RUnlock()

	if held < transfer.Amount {
		err := fmt.Errorf("sender %q holds %d, needs %d: %w", transfer.Sender, held, transfer.Amount, domain.ErrInsufficientFunds)
		l.record(ctx, transfer, false, "", err.Error())
		return err
	}

	var restore func()
	if checkpointer, ok := l.guard.(ports.Checkpointer); ok {
		restore = checkpointer.Checkpoint()
	}

	if err := l.guard.Check(application.WithCaller(ctx, l.token), transfer); err != nil {
		if restore != nil {
			restore()
		}

		module, reason := "", err.Error()
		var guardErr *domain.GuardError
		if errors.As(err, &guardErr) {
			module, reason = guardErr.Module, guardErr.Err.Error()
		}
		l.record(ctx, transfer, false, module, reason)

		l.log.Debug().
			Str("sender", string(transfer.Sender)).
			Str("recipient", string(transfer.Recipient)).
			Int64("amount", int64(transfer.Amount)).
			Str("module", module).
			Msg("transfer rejected")

		return err
	}

	l.mu.Lock()
	l.balances[transfer.Sender] -= transfer.Amount
	l.balances[transfer.Recipient] += transfer.Amount
	l.mu.Unlock()

	l.record(ctx, transfer, true, "", "")

	l.log.Info().
		Str("sender", string(transfer.Sender)).
		Str("recipient", string(transfer.Recipient)).
		Int64("amount", int64(transfer.Amount)).
		Msg("transfer committed")

	return nil
}

// record journals the admission outcome. Journal trouble is logged, never
// allowed to change the outcome itself.
func (l *Ledger) record(ctx context.Context, transfer domain.Transfer, allowed bool, module, reason string) {
	if l.journal == nil {
		return
	}

	_, err := l.journal.Record(ctx, domain.Decision{
		Transfer: transfer,
		Allowed:  allowed,
		Module:   module,
		Reason:   reason,
		At:       l.clock.Now(),
	})
	if err != nil {
		l.log.Warn().Err(err).Msg("journal decision")
	}
}
