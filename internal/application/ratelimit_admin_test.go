package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ledger-guard/internal/domain"
	"github.com/bnema/ledger-guard/internal/ports/mocks"
)

func TestRateLimiterAdminOpsRequireCapability(t *testing.T) {
	tests := []struct {
		name      string
		operation domain.Operation
		call      func(*RateLimiter) error
	}{
		{
			name:      "set default policy",
			operation: domain.OpSetDefaultPolicy,
			call: func(limiter *RateLimiter) error {
				return limiter.SetDefaultPolicy(context.Background(), "mallory", domain.Policy{Window: time.Hour, Limit: 5})
			},
		},
		{
			name:      "set account policy",
			operation: domain.OpSetAccountPolicy,
			call: func(limiter *RateLimiter) error {
				return limiter.SetAccountPolicy(context.Background(), "mallory", "alice", domain.AccountPolicy{Status: domain.StatusOptOutOverride})
			},
		},
		{
			name:      "set usage",
			operation: domain.OpSetUsage,
			call: func(limiter *RateLimiter) error {
				return limiter.SetUsage(context.Background(), "mallory", "alice", domain.UsageRecord{Total: 1, WindowID: 1})
			},
		},
		{
			name:      "reset account policy",
			operation: domain.OpResetAccountPolicy,
			call: func(limiter *RateLimiter) error {
				return limiter.ResetAccountPolicy(context.Background(), "mallory", "alice")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := domain.NewLimiterState(domain.Policy{Window: day, Limit: 1_000})
			authz := mocks.NewMockAuthorizer(t)
			authz.EXPECT().
				Permit(mockAnyContext(), domain.AccountID("mallory"), tt.operation).
				Return(fmt.Errorf("caller %q: %w", "mallory", domain.ErrUnauthorized)).
				Once()

			limiter := NewRateLimiter(state, mocks.NewMockBalanceReader(t), authz, mocks.NewMockClock(t), zerolog.Nop(), ledgerCaller)

			err := tt.call(limiter)
			require.ErrorIs(t, err, domain.ErrUnauthorized)

			assert.Equal(t, domain.Policy{Window: day, Limit: 1_000}, state.Default)
			assert.Empty(t, state.Accounts)
			assert.Empty(t, state.Usage)
		})
	}
}

func TestRateLimiterSetDefaultPolicyOverwritesWithoutValidation(t *testing.T) {
	state := domain.NewLimiterState(domain.Policy{Window: day, Limit: 1_000})
	authz := mocks.NewMockAuthorizer(t)
	authz.EXPECT().Permit(mockAnyContext(), domain.AccountID("root"), domain.OpSetDefaultPolicy).Return(nil)

	limiter := NewRateLimiter(state, mocks.NewMockBalanceReader(t), authz, mocks.NewMockClock(t), zerolog.Nop(), ledgerCaller)

	require.NoError(t, limiter.SetDefaultPolicy(context.Background(), "root", domain.Policy{Window: time.Hour, Limit: 5}))
	assert.Equal(t, domain.Policy{Window: time.Hour, Limit: 5}, limiter.DefaultPolicy())

	// A zero window is stored as-is; Check reports it as misconfiguration.
	require.NoError(t, limiter.SetDefaultPolicy(context.Background(), "root", domain.Policy{}))
	assert.Equal(t, domain.Policy{}, limiter.DefaultPolicy())
}

func TestRateLimiterSetAccountPolicyPinsAndReleasesOverride(t *testing.T) {
	state := domain.NewLimiterState(domain.Policy{Window: day, Limit: 1_000})
	authz := mocks.NewMockAuthorizer(t)
	authz.EXPECT().Permit(mockAnyContext(), domain.AccountID("root"), domain.OpSetAccountPolicy).Return(nil)

	limiter := NewRateLimiter(state, mocks.NewMockBalanceReader(t), authz, mocks.NewMockClock(t), zerolog.Nop(), ledgerCaller)

	pinned := domain.AccountPolicy{Window: time.Hour, Limit: 10, Status: domain.StatusOptOutOverride}
	require.NoError(t, limiter.SetAccountPolicy(context.Background(), "root", "alice", pinned))
	assert.Equal(t, pinned, state.Accounts["alice"])

	require.ErrorIs(t, limiter.RequestOptOut(context.Background(), "alice"), domain.ErrOverrideActive)

	released := domain.AccountPolicy{Window: time.Hour, Limit: 10, Status: domain.StatusOptOut}
	require.NoError(t, limiter.SetAccountPolicy(context.Background(), "root", "alice", released))
	assert.Equal(t, released, state.Accounts["alice"])
}

func TestRateLimiterSetUsageOverwritesRecord(t *testing.T) {
	state := domain.NewLimiterState(domain.Policy{Window: day, Limit: 1_000})
	authz := mocks.NewMockAuthorizer(t)
	authz.EXPECT().Permit(mockAnyContext(), domain.AccountID("root"), domain.OpSetUsage).Return(nil).Once()

	limiter := NewRateLimiter(state, mocks.NewMockBalanceReader(t), authz, mocks.NewMockClock(t), zerolog.Nop(), ledgerCaller)

	record := domain.UsageRecord{Total: 1_500, WindowID: 42}
	require.NoError(t, limiter.SetUsage(context.Background(), "root", "alice", record))
	assert.Equal(t, record, limiter.Usage("alice"))
}

func TestRateLimiterResetAccountPolicyDeletesRowOnly(t *testing.T) {
	state := domain.NewLimiterState(domain.Policy{Window: day, Limit: 1_000})
	state.Accounts["alice"] = domain.AccountPolicy{Window: time.Hour, Limit: 10, Status: domain.StatusOptIn}
	state.Usage["alice"] = domain.UsageRecord{Total: 5, WindowID: 1}
	requested := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	state.PendingOptOut["alice"] = requested

	authz := mocks.NewMockAuthorizer(t)
	authz.EXPECT().Permit(mockAnyContext(), domain.AccountID("root"), domain.OpResetAccountPolicy).Return(nil).Once()

	limiter := NewRateLimiter(state, mocks.NewMockBalanceReader(t), authz, mocks.NewMockClock(t), zerolog.Nop(), ledgerCaller)

	require.NoError(t, limiter.ResetAccountPolicy(context.Background(), "root", "alice"))

	assert.NotContains(t, state.Accounts, domain.AccountID("alice"))
	assert.Equal(t, domain.UsageRecord{Total: 5, WindowID: 1}, state.Usage["alice"])
	assert.True(t, state.PendingOptOut["alice"].Equal(requested))
}

func TestRateLimiterResetAccountPolicyIsIdempotent(t *testing.T) {
	state := domain.NewLimiterState(domain.Policy{Window: day, Limit: 1_000})
	authz := mocks.NewMockAuthorizer(t)
	authz.EXPECT().Permit(mockAnyContext(), domain.AccountID("root"), domain.OpResetAccountPolicy).Return(nil).Twice()

	limiter := NewRateLimiter(state, mocks.NewMockBalanceReader(t), authz, mocks.NewMockClock(t), zerolog.Nop(), ledgerCaller)

	require.NoError(t, limiter.ResetAccountPolicy(context.Background(), "root", "alice"))
	require.NoError(t, limiter.ResetAccountPolicy(context.Background(), "root", "alice"))
}
