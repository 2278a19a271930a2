package application

import (
	"time"

	"github.com/bnema/ledger-guard/internal/domain"
)

// AccountQuota is the assembled status row for one account: the policy
// governing it, its counted usage, its remaining headroom and any pending
// opt requests.
type AccountQuota struct {
	Account       domain.AccountID
	Status        domain.AccountStatus
	Policy        domain.Policy
	Balance       domain.Amount
	Usage         domain.UsageRecord
	Available     domain.Availability
	NextWindowAt  time.Time
	PendingOptOut time.Time
	PendingOptIn  time.Time
}

// StatusView is everything the status renderer needs in one value.
type StatusView struct {
	Default  domain.Policy
	Modules  []string
	Accounts []AccountQuota
}
