package domain

import "time"

// Policy is a rate-limit policy: the maximum cumulative volume an account
// may transfer inside one window of the given length. The process-wide
// default policy is a bare Policy; per-account rows carry a status on top.
type Policy struct {
	Window time.Duration
	Limit  Amount
}

// AccountPolicy is a per-account policy row. The zero value means the
// account follows the default policy; Window and Limit only govern the
// account while Status is an opt-in variant.
type AccountPolicy struct {
	Window time.Duration
	Limit  Amount
	Status AccountStatus
}

// Policy extracts the bare window/limit pair from the row.
func (p AccountPolicy) Policy() Policy {
	return Policy{Window: p.Window, Limit: p.Limit}
}
