package ports

import (
	"context"

	"github.com/bnema/ledger-guard/internal/domain"
)

// BalanceReader is the only surface the rate-limit engine consumes from the
// ledger collaborator. Unknown accounts report a zero balance.
type BalanceReader interface {
	Balance(ctx context.Context, account domain.AccountID) (domain.Amount, error)
}
