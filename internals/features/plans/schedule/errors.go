// file: internals/features/plans/schedule/errors.go
package schedule

import "errors"

// Typed validation failures. Callers branch on these and translate them
// into the {success:false, error} envelope; they are never surfaced as
// unexpected panics.
var (
	// ErrInvalidRange: start > end or non-positive quantity.
	ErrInvalidRange = errors.New("invalid content range: start must not exceed end")

	// ErrEmptyCalendar: weekday/period/exclusion combination leaves no
	// eligible date.
	ErrEmptyCalendar = errors.New("no eligible study date in the selected period")

	// ErrInsufficientCapacity: zero study slots for a non-empty range.
	ErrInsufficientCapacity = errors.New("no study slot available for the content range")

	// ErrOverAllocation: more study days than content units and sparse
	// allocation is disabled.
	ErrOverAllocation = errors.New("more study days than content units")

	// ErrCapacityExceeded: student already owns the maximum number of
	// concurrent plan groups. Checked again atomically at commit.
	ErrCapacityExceeded = errors.New("plan group capacity exceeded")
)
