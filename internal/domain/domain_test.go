package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowIDRollover(t *testing.T) {
	day := 24 * time.Hour
	base := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	id := WindowID(base, day)
	require.Equal(t, id, WindowID(base.Add(11*time.Hour+59*time.Minute), day))
	assert.Equal(t, id+1, WindowID(base.Add(12*time.Hour), day))
	assert.Equal(t, id+1, WindowID(base.Add(day), day))
}

func TestWindowStartInvertsWindowID(t *testing.T) {
	length := 90 * time.Second
	now := time.Date(2026, 2, 14, 12, 0, 17, 500, time.UTC)

	id := WindowID(now, length)
	start := WindowStart(id, length)

	assert.False(t, start.After(now))
	assert.True(t, WindowStart(id+1, length).After(now))
	assert.Equal(t, id, WindowID(start, length))
}

func TestWindowIDFloorsBeforeEpoch(t *testing.T) {
	length := time.Hour
	preEpoch := time.Unix(0, 0).Add(-30 * time.Minute)

	assert.Equal(t, int64(-1), WindowID(preEpoch, length))
	assert.Equal(t, int64(0), WindowID(time.Unix(0, 0), length))
}

func TestAccountStatusHelpers(t *testing.T) {
	tests := []struct {
		name       string
		status     AccountStatus
		optedIn    bool
		optedOut   bool
		overridden bool
		label      string
	}{
		{name: "zero value follows default", status: AccountStatus(""), label: "default"},
		{name: "default", status: StatusDefault, label: "default"},
		{name: "opt-in", status: StatusOptIn, optedIn: true, label: "opt-in"},
		{name: "opt-out", status: StatusOptOut, optedOut: true, label: "opt-out"},
		{name: "opt-in override", status: StatusOptInOverride, optedIn: true, overridden: true, label: "opt-in (pinned)"},
		{name: "opt-out override", status: StatusOptOutOverride, optedOut: true, overridden: true, label: "opt-out (pinned)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.status.Valid())
			assert.Equal(t, tt.optedIn, tt.status.OptedIn())
			assert.Equal(t, tt.optedOut, tt.status.OptedOut())
			assert.Equal(t, tt.overridden, tt.status.Overridden())
			assert.Equal(t, tt.label, tt.status.Label())
		})
	}

	assert.False(t, AccountStatus("frozen").Valid())
}

func TestUsageRecordStaleAndLive(t *testing.T) {
	rec := UsageRecord{Total: 600, WindowID: 41}

	assert.False(t, rec.Stale(41))
	assert.True(t, rec.Stale(42))
	assert.True(t, rec.Live(41))
	assert.False(t, rec.Live(42))

	assert.False(t, UsageRecord{WindowID: 41}.Live(41))
	assert.True(t, UsageRecord{}.Stale(12345))
}

func TestTransferValidate(t *testing.T) {
	ok := Transfer{Sender: "alice", Recipient: "bob", Amount: 100}
	require.NoError(t, ok.Validate())

	tests := []struct {
		name     string
		transfer Transfer
	}{
		{name: "missing sender", transfer: Transfer{Recipient: "bob", Amount: 1}},
		{name: "blank recipient", transfer: Transfer{Sender: "alice", Recipient: "  ", Amount: 1}},
		{name: "zero amount", transfer: Transfer{Sender: "alice", Recipient: "bob"}},
		{name: "negative amount", transfer: Transfer{Sender: "alice", Recipient: "bob", Amount: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.transfer.Validate(), ErrInvalidTransfer)
		})
	}
}

func TestAvailabilityLabel(t *testing.T) {
	assert.Equal(t, "unlimited", Availability{Unlimited: true}.Label())
	assert.Equal(t, "0", Availability{}.Label())
	assert.Equal(t, "2.5k", Availability{Remaining: 2_500}.Label())
}

func TestCompactNumberBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		want  string
	}{
		{name: "below thousand", value: 999, want: "999"},
		{name: "thousand", value: 1_000, want: "1.0k"},
		{name: "below million", value: 999_999, want: "1000.0k"},
		{name: "million", value: 1_000_000, want: "1.0M"},
		{name: "negative", value: -1_000, want: "-1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compactNumber(tt.value))
		})
	}
}

func TestGuardErrorUnwrapsCause(t *testing.T) {
	err := &GuardError{Module: "ratelimit", Err: ErrQuotaExceeded}

	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Contains(t, err.Error(), `guard "ratelimit"`)

	var guardErr *GuardError
	require.ErrorAs(t, error(err), &guardErr)
	assert.Equal(t, "ratelimit", guardErr.Module)
}
