package domain

import "time"

// Decision is one journaled admission outcome. Module and Reason are empty
// when the transfer was allowed; ID is assigned by the journal that stores
// the row.
type Decision struct {
	ID       string
	Transfer Transfer
	Allowed  bool
	Module   string
	Reason   string
	At       time.Time
}
