package ports

import (
	"context"

	"github.com/bnema/ledger-guard/internal/domain"
)

// Authorizer is the external capability gate. Permit returns nil when the
// caller may run the operation and an error wrapping
// domain.ErrUnauthorized when it may not.
type Authorizer interface {
	Permit(ctx context.Context, caller domain.AccountID, op domain.Operation) error
}
