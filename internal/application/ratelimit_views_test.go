package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ledger-guard/internal/domain"
	"github.com/bnema/ledger-guard/internal/ports/mocks"
)

func TestRateLimiterAvailableToTransfer(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	currentID := domain.WindowID(now, day)

	tests := []struct {
		name  string
		seed  func(*domain.LimiterState)
		wants domain.Availability
	}{
		{
			name: "opted out is unlimited",
			seed: func(state *domain.LimiterState) {
				state.Accounts["alice"] = domain.AccountPolicy{Status: domain.StatusOptOut}
				state.Usage["alice"] = domain.UsageRecord{Total: 999, WindowID: currentID}
			},
			wants: domain.Availability{Unlimited: true},
		},
		{
			name: "opt-out override is unlimited",
			seed: func(state *domain.LimiterState) {
				state.Accounts["alice"] = domain.AccountPolicy{Status: domain.StatusOptOutOverride}
			},
			wants: domain.Availability{Unlimited: true},
		},
		{
			name: "zero window has nothing available",
			seed: func(state *domain.LimiterState) {
				state.Accounts["alice"] = domain.AccountPolicy{Window: 0, Limit: 500, Status: domain.StatusOptIn}
			},
			wants: domain.Availability{},
		},
		{
			name:  "no usage row yields the full limit",
			seed:  func(state *domain.LimiterState) {},
			wants: domain.Availability{Remaining: 1_000},
		},
		{
			name: "stale record yields the full limit",
			seed: func(state *domain.LimiterState) {
				state.Usage["alice"] = domain.UsageRecord{Total: 950, WindowID: currentID - 1}
			},
			wants: domain.Availability{Remaining: 1_000},
		},
		{
			name: "live record yields the remainder",
			seed: func(state *domain.LimiterState) {
				state.Usage["alice"] = domain.UsageRecord{Total: 600, WindowID: currentID}
			},
			wants: domain.Availability{Remaining: 400},
		},
		{
			name: "usage above the limit floors at zero",
			seed: func(state *domain.LimiterState) {
				state.Usage["alice"] = domain.UsageRecord{Total: 1_500, WindowID: currentID}
			},
			wants: domain.Availability{Remaining: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := domain.NewLimiterState(domain.Policy{Window: day, Limit: 1_000})
			tt.seed(state)

			clock := mocks.NewMockClock(t)
			clock.EXPECT().Now().Return(now).Maybe()

			limiter := NewRateLimiter(state, mocks.NewMockBalanceReader(t), mocks.NewMockAuthorizer(t), clock, zerolog.Nop(), ledgerCaller)

			assert.Equal(t, tt.wants, limiter.AvailableToTransfer("alice"))
		})
	}
}

func TestRateLimiterNextWindowStart(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	currentID := domain.WindowID(now, day)

	tests := []struct {
		name  string
		seed  func(*domain.LimiterState)
		wants time.Time
	}{
		{
			name: "live window ends at the next boundary",
			seed: func(state *domain.LimiterState) {
				state.Usage["alice"] = domain.UsageRecord{Total: 600, WindowID: currentID}
			},
			wants: domain.WindowStart(currentID+1, day),
		},
		{
			name: "zero usage in the current window resets immediately",
			seed: func(state *domain.LimiterState) {
				state.Usage["alice"] = domain.UsageRecord{Total: 0, WindowID: currentID}
			},
			wants: now,
		},
		{
			name: "stale record resets immediately",
			seed: func(state *domain.LimiterState) {
				state.Usage["alice"] = domain.UsageRecord{Total: 600, WindowID: currentID - 2}
			},
			wants: now,
		},
		{
			name: "opted out resets immediately",
			seed: func(state *domain.LimiterState) {
				state.Accounts["alice"] = domain.AccountPolicy{Status: domain.StatusOptOut}
				state.Usage["alice"] = domain.UsageRecord{Total: 600, WindowID: currentID}
			},
			wants: now,
		},
		{
			name: "zero window resets immediately",
			seed: func(state *domain.LimiterState) {
				state.Accounts["alice"] = domain.AccountPolicy{Window: 0, Limit: 5, Status: domain.StatusOptIn}
			},
			wants: now,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := domain.NewLimiterState(domain.Policy{Window: day, Limit: 1_000})
			tt.seed(state)

			clock := mocks.NewMockClock(t)
			clock.EXPECT().Now().Return(now)

			limiter := NewRateLimiter(state, mocks.NewMockBalanceReader(t), mocks.NewMockAuthorizer(t), clock, zerolog.Nop(), ledgerCaller)

			assert.True(t, limiter.NextWindowStart("alice").Equal(tt.wants))
		})
	}
}

func TestRateLimiterKnownAccountsSortedUnion(t *testing.T) {
	state := domain.NewLimiterState(domain.Policy{Window: day, Limit: 1_000})
	state.Accounts["dave"] = domain.AccountPolicy{Status: domain.StatusOptOut}
	state.Usage["alice"] = domain.UsageRecord{Total: 1, WindowID: 1}
	state.Usage["dave"] = domain.UsageRecord{Total: 2, WindowID: 1}
	state.PendingOptOut["carol"] = time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	state.PendingOptIn["bob"] = time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)

	limiter := NewRateLimiter(state, mocks.NewMockBalanceReader(t), mocks.NewMockAuthorizer(t), mocks.NewMockClock(t), zerolog.Nop(), ledgerCaller)

	assert.Equal(t, []domain.AccountID{"alice", "bob", "carol", "dave"}, limiter.KnownAccounts())
}

func TestRateLimiterAccountQuotaAssemblesRow(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	requested := now.Add(-2 * time.Hour)

	state := domain.NewLimiterState(domain.Policy{Window: day, Limit: 1_000})
	state.Accounts["alice"] = domain.AccountPolicy{Window: time.Hour, Limit: 100, Status: domain.StatusOptIn}
	state.Usage["alice"] = domain.UsageRecord{Total: 30, WindowID: domain.WindowID(now, time.Hour)}
	state.PendingOptOut["alice"] = requested

	ledger := mocks.NewMockBalanceReader(t)
	ledger.EXPECT().Balance(mockAnyContext(), domain.AccountID("alice")).Return(2_500, nil).Once()
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(now)

	limiter := NewRateLimiter(state, ledger, mocks.NewMockAuthorizer(t), clock, zerolog.Nop(), ledgerCaller)

	quota, err := limiter.AccountQuota(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, domain.AccountID("alice"), quota.Account)
	assert.Equal(t, domain.StatusOptIn, quota.Status)
	assert.Equal(t, domain.Policy{Window: time.Hour, Limit: 100}, quota.Policy)
	assert.Equal(t, domain.Amount(2_500), quota.Balance)
	assert.Equal(t, domain.Amount(30), quota.Usage.Total)
	assert.Equal(t, domain.Availability{Remaining: 70}, quota.Available)
	assert.True(t, quota.NextWindowAt.Equal(domain.WindowStart(domain.WindowID(now, time.Hour)+1, time.Hour)))
	assert.True(t, quota.PendingOptOut.Equal(requested))
	assert.True(t, quota.PendingOptIn.IsZero())
}

func TestRateLimiterAccountQuotaPropagatesBalanceError(t *testing.T) {
	state := domain.NewLimiterState(domain.Policy{Window: day, Limit: 1_000})
	ledger := mocks.NewMockBalanceReader(t)
	readErr := errors.New("ledger unavailable")
	ledger.EXPECT().Balance(mockAnyContext(), domain.AccountID("alice")).Return(0, readErr).Once()

	limiter := NewRateLimiter(state, ledger, mocks.NewMockAuthorizer(t), mocks.NewMockClock(t), zerolog.Nop(), ledgerCaller)

	_, err := limiter.AccountQuota(context.Background(), "alice")
	require.ErrorIs(t, err, readErr)
}
