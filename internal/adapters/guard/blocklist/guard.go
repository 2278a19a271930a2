// Package blocklist is a guard module that rejects any transfer touching
// a blocked account, on either side.
package blocklist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/ledger-guard/internal/domain"
	"github.com/bnema/ledger-guard/internal/ports"
)

const ModuleName = "blocklist"

// ErrBlocked is the rejection cause carried through the guard chain for
// blocked accounts.
var ErrBlocked = errors.New("account is blocked")

type Guard struct {
	mu      sync.RWMutex
	blocked map[domain.AccountID]struct{}
	log     zerolog.Logger
}

var _ ports.GuardModule = (*Guard)(nil)

func NewGuard(blocked []domain.AccountID, logger zerolog.Logger) *Guard {
	guard := &Guard{
		blocked: make(map[domain.AccountID]struct{}, len(blocked)),
		log:     logger.With().Str("component", ModuleName).Logger(),
	}
	for _, account := range blocked {
		if account == "" {
			continue
		}
		guard.blocked[account] = struct{}{}
	}

	return guard
}

func (g *Guard) Name() string {
	return ModuleName
}

func (g *Guard) Check(ctx context.Context, transfer domain.Transfer) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.blocked[transfer.Sender]; ok {
		return fmt.Errorf("sender %q: %w", transfer.Sender, ErrBlocked)
	}
	if _, ok := g.blocked[transfer.Recipient]; ok {
		return fmt.Errorf("recipient %q: %w", transfer.Recipient, ErrBlocked)
	}

	return nil
}

func (g *Guard) Block(account domain.AccountID) {
	if account == "" {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.blocked[account] = struct{}{}
	g.log.Info().Str("account", string(account)).Msg("account blocked")
}

func (g *Guard) Unblock(account domain.AccountID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.blocked, account)
	g.log.Info().Str("account", string(account)).Msg("account unblocked")
}

// Blocked lists the blocked accounts, sorted, for persistence and display.
func (g *Guard) Blocked() []domain.AccountID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	accounts := make([]domain.AccountID, 0, len(g.blocked))
	for account := range g.blocked {
		accounts = append(accounts, account)
	}
	slices.Sort(accounts)

	return accounts
}
