package domain

import "fmt"

// UsageRecord tracks an account's cumulative transfer volume inside one
// window. Total is only meaningful while WindowID equals the currently
// computed window id for the account's governing policy; a mismatch means
// the window rolled over and usage is implicitly zero again.
type UsageRecord struct {
	Total    Amount
	WindowID int64
}

func (u UsageRecord) Stale(currentID int64) bool {
	return u.WindowID != currentID
}

// Live reports whether the record pins an active window: the stored id
// matches the current one and some volume has actually been counted.
func (u UsageRecord) Live(currentID int64) bool {
	return u.WindowID == currentID && u.Total > 0
}

// Availability is the outcome of the available-to-transfer view. Remaining
// is meaningless when Unlimited is set.
type Availability struct {
	Unlimited bool
	Remaining Amount
}

func (a Availability) Label() string {
	if a.Unlimited {
		return "unlimited"
	}

	return compactNumber(int64(a.Remaining))
}

func compactNumber(v int64) string {
	if v < 1_000 {
		return fmt.Sprintf("%d", v)
	}

	if v < 1_000_000 {
		return fmt.Sprintf("%.1fk", float64(v)/1_000)
	}

	return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
}
