package application

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/ledger-guard/internal/domain"
	"github.com/bnema/ledger-guard/internal/ports"
)

// Dispatcher owns the ordered chain of guard modules and runs them against
// every proposed transfer. Membership is unique by module name; the chain
// is invoked in registration order and stops at the first rejection.
type Dispatcher struct {
	authz ports.Authorizer
	log   zerolog.Logger

	mu      sync.Mutex
	modules []ports.GuardModule
}

var (
	_ ports.TransferGuard = (*Dispatcher)(nil)
	_ ports.Checkpointer  = (*Dispatcher)(nil)
)

func NewDispatcher(authz ports.Authorizer, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		authz: authz,
		log:   logger.With().Str("component", "dispatcher").Logger(),
	}
}

// Register appends module to the end of the chain. Adding a module whose
// name is already present is a no-op.
func (d *Dispatcher) Register(ctx context.Context, caller domain.AccountID, module ports.GuardModule) error {
	if err := d.authz.Permit(ctx, caller, domain.OpRegisterModule); err != nil {
		return fmt.Errorf("authorize register module: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	name := module.Name()
	for _, registered := range d.modules {
		if registered.Name() == name {
			return nil
		}
	}

	d.modules = append(d.modules, module)
	d.log.Info().Str("module", name).Msg("guard module registered")

	return nil
}

// Deregister removes the named module, keeping the relative order of the
// remainder. Removing an absent module is a no-op.
func (d *Dispatcher) Deregister(ctx context.Context, caller domain.AccountID, name string) error {
	if err := d.authz.Permit(ctx, caller, domain.OpDeregisterModule); err != nil {
		return fmt.Errorf("authorize deregister module: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for i, registered := range d.modules {
		if registered.Name() == name {
			d.modules = slices.Delete(d.modules, i, i+1)
			d.log.Info().Str("module", name).Msg("guard module deregistered")
			return nil
		}
	}

	return nil
}

// Restore replaces the whole chain with modules, in the given order and
// deduplicated by name. It is meant for reassembling a persisted chain at
// startup and therefore skips the capability check that Register and
// Deregister perform.
func (d *Dispatcher) Restore(modules ...ports.GuardModule) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.modules = d.modules[:0]
	seen := make(map[string]struct{}, len(modules))
	for _, module := range modules {
		name := module.Name()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		d.modules = append(d.modules, module)
	}

	d.log.Debug().Strs("modules", moduleNames(d.modules)).Msg("guard chain restored")
}

func moduleNames(modules []ports.GuardModule) []string {
	names := make([]string, 0, len(modules))
	for _, module := range modules {
		names = append(names, module.Name())
	}

	return names
}

// Modules lists the registered module names in invocation order.
func (d *Dispatcher) Modules() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return moduleNames(d.modules)
}

// Check runs the chain against transfer. The first module rejection aborts
// the iteration and comes back wrapped in a domain.GuardError naming the
// module; later modules are never invoked. An empty chain admits
// everything. Check refuses to run nested inside another check on the same
// ctx chain, so a module can never loop a second transfer through the
// pipeline mid-check.
func (d *Dispatcher) Check(ctx context.Context, transfer domain.Transfer) error {
	if CheckInFlight(ctx) {
		return domain.ErrReentrantCheck
	}
	ctx = markCheckInFlight(ctx)

	d.mu.Lock()
	modules := slices.Clone(d.modules)
	d.mu.Unlock()

	for _, module := range modules {
		if err := module.Check(ctx, transfer); err != nil {
			d.log.Debug().
				Str("module", module.Name()).
				Str("sender", string(transfer.Sender)).
				Str("recipient", string(transfer.Recipient)).
				Int64("amount", int64(transfer.Amount)).
				Err(err).
				Msg("transfer rejected")

			return &domain.GuardError{Module: module.Name(), Err: err}
		}
	}

	return nil
}

// Checkpoint captures the mutable state of every module that supports it
// and returns one closure restoring all of them in reverse registration
// order. Hosts take a checkpoint before Check and run the restore when the
// enclosing transfer aborts, so an early module's side effects do not
// survive a later module's veto.
func (d *Dispatcher) Checkpoint() func() {
	d.mu.Lock()
	modules := slices.Clone(d.modules)
	d.mu.Unlock()

	restores := make([]func(), 0, len(modules))
	for _, module := range modules {
		if checkpointer, ok := module.(ports.Checkpointer); ok {
			restores = append(restores, checkpointer.Checkpoint())
		}
	}

	return func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}
}
