// Package static gates capability-protected operations against a fixed
// allow-list of administrator accounts, the way a sandbox deployment
// configures it. Listed callers may perform every gated operation.
package static

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/ledger-guard/internal/domain"
	"github.com/bnema/ledger-guard/internal/ports"
)

type Authorizer struct {
	admins map[domain.AccountID]struct{}
	log    zerolog.Logger
}

var _ ports.Authorizer = (*Authorizer)(nil)

func NewAuthorizer(admins []domain.AccountID, logger zerolog.Logger) *Authorizer {
	allowed := make(map[domain.AccountID]struct{}, len(admins))
	for _, admin := range admins {
		if admin == "" {
			continue
		}
		allowed[admin] = struct{}{}
	}

	return &Authorizer{
		admins: allowed,
		log:    logger.With().Str("component", "authz").Logger(),
	}
}

func (a *Authorizer) Permit(ctx context.Context, caller domain.AccountID, op domain.Operation) error {
	if _, ok := a.admins[caller]; ok {
		return nil
	}

	a.log.Debug().
		Str("caller", string(caller)).
		Str("operation", string(op)).
		Msg("operation denied")

	return fmt.Errorf("caller %q may not perform %s: %w", caller, op, domain.ErrUnauthorized)
}
