// Package memory keeps the decision journal as an in-process append-only
// slice, seeded from and flushed back to the persisted state by the host.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/ledger-guard/internal/domain"
	"github.com/bnema/ledger-guard/internal/ports"
)

type Journal struct {
	mu        sync.RWMutex
	decisions []domain.Decision
}

var _ ports.DecisionJournal = (*Journal)(nil)

func NewJournal(seed []domain.Decision) *Journal {
	return &Journal{decisions: slices.Clone(seed)}
}

// Record appends the decision, assigning a fresh ID when the caller left
// it empty, and returns the stored row.
func (j *Journal) Record(ctx context.Context, decision domain.Decision) (domain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return domain.Decision{}, err
	}

	if decision.ID == "" {
		decision.ID = uuid.NewString()
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.decisions = append(j.decisions, decision)

	return decision, nil
}

// List returns every recorded decision, oldest first.
func (j *Journal) List(ctx context.Context) ([]domain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	return slices.Clone(j.decisions), nil
}
