package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ledger-guard/internal/application"
	"github.com/bnema/ledger-guard/internal/domain"
)

func TestRenderSingleAccountStatus(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	output, err := Render(application.StatusView{
		Default: domain.Policy{Window: 24 * time.Hour, Limit: 1_000},
		Modules: []string{"ratelimit"},
		Accounts: []application.AccountQuota{
			{
				Account:      "alice",
				Status:       domain.StatusDefault,
				Policy:       domain.Policy{Window: 24 * time.Hour, Limit: 1_000},
				Balance:      10_000,
				Usage:        domain.UsageRecord{Total: 600, WindowID: domain.WindowID(now, 24*time.Hour)},
				Available:    domain.Availability{Remaining: 400},
				NextWindowAt: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
			},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "guards: ratelimit")
	assert.Contains(t, output, "default policy: 1000 per 24h")
	assert.Contains(t, output, "accounts: 1")
	assert.Contains(t, output, "alice")
	assert.Contains(t, output, "[default]")
	assert.Contains(t, output, "40% left")
	assert.Contains(t, output, "resets in 12 hours (00:00)")
	assert.Contains(t, output, "balance: 10000")
	assert.Contains(t, output, "available: 400")
	assert.NotContains(t, output, "requested at")
}

func TestRenderOptedOutAccount(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	output, err := Render(application.StatusView{
		Default: domain.Policy{Window: 24 * time.Hour, Limit: 1_000},
		Modules: []string{"ratelimit", "blocklist"},
		Accounts: []application.AccountQuota{
			{
				Account:      "bob",
				Status:       domain.StatusOptOut,
				Policy:       domain.Policy{Window: 24 * time.Hour, Limit: 1_000},
				Balance:      250,
				Available:    domain.Availability{Unlimited: true},
				NextWindowAt: now,
			},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "guards: ratelimit > blocklist")
	assert.Contains(t, output, "[opt-out]")
	assert.Contains(t, output, "quota: unlimited (opted out)")
	assert.Contains(t, output, "available: unlimited")
}

func TestRenderZeroWindowWarning(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	output, err := Render(application.StatusView{
		Default: domain.Policy{Window: 24 * time.Hour, Limit: 1_000},
		Modules: []string{"ratelimit"},
		Accounts: []application.AccountQuota{
			{
				Account:      "carol",
				Status:       domain.StatusOptIn,
				Policy:       domain.Policy{Window: 0, Limit: 50},
				NextWindowAt: now,
			},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "[opt-in]")
	assert.Contains(t, output, "quota: unavailable (zero window length)")
}

func TestRenderShowsPendingOptRequests(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	output, err := Render(application.StatusView{
		Default: domain.Policy{Window: 24 * time.Hour, Limit: 1_000},
		Modules: []string{"ratelimit"},
		Accounts: []application.AccountQuota{
			{
				Account:       "dave",
				Status:        domain.StatusDefault,
				Policy:        domain.Policy{Window: 24 * time.Hour, Limit: 1_000},
				Available:     domain.Availability{Remaining: 1_000},
				NextWindowAt:  now,
				PendingOptOut: now.Add(-3 * time.Hour),
				PendingOptIn:  now.Add(-25 * time.Hour),
			},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "opt-out requested at 09:00")
	assert.Contains(t, output, "opt-in requested at 11:00 on 13 Feb")
	assert.Contains(t, output, "resets now")
}

func TestRenderEmptyStatus(t *testing.T) {
	output, err := Render(application.StatusView{
		Default: domain.Policy{Window: time.Hour, Limit: 5},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "guards: none")
	assert.Contains(t, output, "default policy: 5 per 1h")
	assert.Contains(t, output, "accounts: 0")
	assert.Contains(t, output, "No accounts tracked yet.")
}

func TestRenderCompactsLargeAvailability(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	output, err := Render(application.StatusView{
		Default: domain.Policy{Window: 24 * time.Hour, Limit: 2_000_000},
		Modules: []string{"ratelimit"},
		Accounts: []application.AccountQuota{
			{
				Account:      "erin",
				Status:       domain.StatusDefault,
				Policy:       domain.Policy{Window: 24 * time.Hour, Limit: 2_000_000},
				Balance:      3_000_000,
				Available:    domain.Availability{Remaining: 1_500_000},
				NextWindowAt: now,
			},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "available: 1.5M")
}
