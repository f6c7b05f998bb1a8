package datemath

import "time"

// ParseResult is a resolved publishing slot. IsAllDay is set when the
// phrase named a day without a clock time ("tomorrow", "next friday"),
// so callers can book a day-long window instead of a fixed hour.
type ParseResult struct {
	AbsoluteTime time.Time
	IsAllDay     bool
}
