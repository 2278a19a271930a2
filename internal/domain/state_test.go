package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimiterStateSeedsMaps(t *testing.T) {
	s := NewLimiterState(Policy{Window: 24 * time.Hour, Limit: 1_000})

	require.NotNil(t, s.Accounts)
	require.NotNil(t, s.Usage)
	require.NotNil(t, s.PendingOptOut)
	require.NotNil(t, s.PendingOptIn)
	assert.Equal(t, Amount(1_000), s.Default.Limit)
}

func TestLimiterStateCloneIsIndependent(t *testing.T) {
	s := NewLimiterState(Policy{Window: time.Hour, Limit: 100})
	s.Usage["alice"] = UsageRecord{Total: 60, WindowID: 7}
	s.Accounts["bob"] = AccountPolicy{Window: time.Minute, Limit: 5, Status: StatusOptIn}

	snap := s.Clone()
	s.Usage["alice"] = UsageRecord{Total: 90, WindowID: 7}
	s.PendingOptOut["bob"] = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, Amount(60), snap.Usage["alice"].Total)
	assert.Empty(t, snap.PendingOptOut)
	assert.Equal(t, s.Accounts["bob"], snap.Accounts["bob"])
}

func TestLimiterStateRestoreKeepsHandle(t *testing.T) {
	s := NewLimiterState(Policy{Window: time.Hour, Limit: 100})
	handle := s

	snap := s.Clone()
	s.Usage["alice"] = UsageRecord{Total: 40, WindowID: 3}
	s.Default = Policy{Window: time.Minute, Limit: 1}

	s.Restore(snap)

	assert.Same(t, handle, s)
	assert.Empty(t, s.Usage)
	assert.Equal(t, Amount(100), s.Default.Limit)
}
