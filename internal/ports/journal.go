package ports

import (
	"context"

	"github.com/bnema/ledger-guard/internal/domain"
)

// DecisionJournal records admission outcomes for later inspection. Record
// assigns the entry its ID; List returns entries oldest first.
type DecisionJournal interface {
	Record(ctx context.Context, decision domain.Decision) (domain.Decision, error)
	List(ctx context.Context) ([]domain.Decision, error)
}
