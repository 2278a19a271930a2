package ports

import (
	"context"

	"github.com/bnema/ledger-guard/internal/domain"
)

// GuardModule is one admission check in the dispatch chain. Check returns
// nil to admit the transfer; any error vetoes it and is propagated to the
// caller unchanged. Name identifies the module for registration, removal
// and error reporting.
type GuardModule interface {
	Name() string
	Check(ctx context.Context, transfer domain.Transfer) error
}

// TransferGuard is the pre-transfer hook the ledger invokes before mutating
// balances.
type TransferGuard interface {
	Check(ctx context.Context, transfer domain.Transfer) error
}

// Checkpointer lets a host capture mutable guard state before a check and
// roll it back when the enclosing transfer aborts. The returned closure
// restores the captured state; calling it after a committed transfer is a
// host bug.
type Checkpointer interface {
	Checkpoint() func()
}
