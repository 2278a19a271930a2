package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int                   `toml:"version"`
	Default   policySchema          `toml:"default_policy"`
	Guards    []string              `toml:"guards"`
	Blocklist []string              `toml:"blocklist"`
	Accounts  []accountPolicySchema `toml:"accounts"`
	Usage     []usageRecordSchema   `toml:"usage"`
	Pending   []pendingOptSchema    `toml:"pending"`
	Balances  []balanceSchema       `toml:"balances"`
	Journal   []decisionSchema      `toml:"journal"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type policySchema struct {
	WindowSeconds int64 `toml:"window_seconds"`
	Limit         int64 `toml:"limit"`
}

type accountPolicySchema struct {
	ID            string `toml:"id"`
	WindowSeconds int64  `toml:"window_seconds"`
	Limit         int64  `toml:"limit"`
	Status        string `toml:"status"`
}

type usageRecordSchema struct {
	ID       string `toml:"id"`
	Total    int64  `toml:"total"`
	WindowID int64  `toml:"window_id"`
}

type pendingOptSchema struct {
	ID          string `toml:"id"`
	Direction   string `toml:"direction"`
	RequestedAt string `toml:"requested_at"`
}

type balanceSchema struct {
	ID     string `toml:"id"`
	Amount int64  `toml:"amount"`
}

type decisionSchema struct {
	ID        string `toml:"id"`
	Sender    string `toml:"sender"`
	Recipient string `toml:"recipient"`
	Amount    int64  `toml:"amount"`
	Allowed   bool   `toml:"allowed"`
	Module    string `toml:"module,omitempty"`
	Reason    string `toml:"reason,omitempty"`
	At        string `toml:"at"`
}

const (
	pendingDirectionOptOut = "opt_out"
	pendingDirectionOptIn  = "opt_in"
)
