package domain

import (
	"maps"
	"time"
)

// LimiterState is the whole mutable state of the rate-limit engine: the
// default policy, the per-account policy rows, the per-window usage
// counters, and the pending timestamps of the two-phase opt protocol. The
// host creates one instance and hands it to the engine, which stays its
// only writer; a zero timestamp means no pending request.
type LimiterState struct {
	Default       Policy
	Accounts      map[AccountID]AccountPolicy
	Usage         map[AccountID]UsageRecord
	PendingOptOut map[AccountID]time.Time
	PendingOptIn  map[AccountID]time.Time
}

func NewLimiterState(def Policy) *LimiterState {
	return &LimiterState{
		Default:       def,
		Accounts:      make(map[AccountID]AccountPolicy),
		Usage:         make(map[AccountID]UsageRecord),
		PendingOptOut: make(map[AccountID]time.Time),
		PendingOptIn:  make(map[AccountID]time.Time),
	}
}

// Clone deep-copies the state so a caller can restore it later if the
// enclosing transfer aborts.
func (s *LimiterState) Clone() *LimiterState {
	return &LimiterState{
		Default:       s.Default,
		Accounts:      maps.Clone(s.Accounts),
		Usage:         maps.Clone(s.Usage),
		PendingOptOut: maps.Clone(s.PendingOptOut),
		PendingOptIn:  maps.Clone(s.PendingOptIn),
	}
}

// Restore copies a clone back over the receiver without replacing the
// handle other components hold.
func (s *LimiterState) Restore(from *LimiterState) {
	s.Default = from.Default
	s.Accounts = from.Accounts
	s.Usage = from.Usage
	s.PendingOptOut = from.PendingOptOut
	s.PendingOptIn = from.PendingOptIn
}
