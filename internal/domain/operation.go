package domain

// Operation names a capability-gated action for the authorizer collaborator.
type Operation string

const (
	OpSetDefaultPolicy   Operation = "ratelimit.set_default_policy"
	OpSetAccountPolicy   Operation = "ratelimit.set_account_policy"
	OpSetUsage           Operation = "ratelimit.set_usage"
	OpResetAccountPolicy Operation = "ratelimit.reset_account_policy"
	OpRegisterModule     Operation = "guard.register_module"
	OpDeregisterModule   Operation = "guard.deregister_module"
	OpSetBalance         Operation = "ledger.set_balance"
)
