// Package throughput is a guard module that caps how fast value may leave
// the ledger overall, independent of any per-account policy. It reserves
// one token per transferred unit against a shared token bucket and rejects
// instead of waiting, so admission stays non-blocking.
package throughput

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/bnema/ledger-guard/internal/domain"
	"github.com/bnema/ledger-guard/internal/ports"
)

const ModuleName = "throughput"

// ErrSaturated is the rejection cause when the bucket cannot cover a
// transfer right now.
var ErrSaturated = errors.New("transfer throughput saturated")

type Guard struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	clock   ports.Clock
	taken   []*rate.Reservation
	log     zerolog.Logger
}

var (
	_ ports.GuardModule  = (*Guard)(nil)
	_ ports.Checkpointer = (*Guard)(nil)
)

func NewGuard(limit rate.Limit, burst int, clock ports.Clock, logger zerolog.Logger) *Guard {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Guard{
		limiter: rate.NewLimiter(limit, burst),
		clock:   clock,
		log:     logger.With().Str("component", ModuleName).Logger(),
	}
}

func (g *Guard) Name() string {
	return ModuleName
}

func (g *Guard) Check(ctx context.Context, transfer domain.Transfer) error {
	if transfer.Amount <= 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	reservation := g.limiter.ReserveN(now, int(transfer.Amount))
	if !reservation.OK() {
		return fmt.Errorf("amount %d exceeds burst capacity: %w", transfer.Amount, ErrSaturated)
	}

	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		g.log.Debug().
			Str("sender", string(transfer.Sender)).
			Int64("amount", int64(transfer.Amount)).
			Dur("retry_in", delay).
			Msg("transfer rejected")
		return fmt.Errorf("retry in %s: %w", delay, ErrSaturated)
	}

	g.taken = append(g.taken, reservation)

	return nil
}

// Checkpoint commits every reservation taken so far and returns a closure
// that cancels the ones taken after it, handing their tokens back to the
// bucket when a transfer aborts.
func (g *Guard) Checkpoint() func() {
	g.mu.Lock()
	g.taken = nil
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()

		now := g.clock.Now()
		for i := len(g.taken) - 1; i >= 0; i-- {
			g.taken[i].CancelAt(now)
		}
		g.taken = nil
	}
}
