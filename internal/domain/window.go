package domain

import "time"

// WindowID computes the id of the fixed-length window containing now:
// floor(unix nanoseconds / window length). Windows are non-overlapping and
// identified purely by this integer, so rollover detection is an id
// comparison, never elapsed-time arithmetic. length must be positive.
func WindowID(now time.Time, length time.Duration) int64 {
	return floorDiv(now.UnixNano(), int64(length))
}

// WindowStart returns the instant window id begins, the inverse of
// WindowID for the same length.
func WindowStart(id int64, length time.Duration) time.Time {
	return time.Unix(0, id*int64(length))
}

// floorDiv rounds toward negative infinity, unlike Go's native truncating
// division. Pre-epoch clocks land in negative window ids instead of
// colliding with the epoch window.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
