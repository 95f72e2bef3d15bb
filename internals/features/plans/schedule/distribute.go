// file: internals/features/plans/schedule/distribute.go
package schedule

import (
	"fmt"
)

/* =========================
   Quantity distributor
   ========================= */

// Distribute spreads rng over the study slots in slots and fills review
// slots with the cumulative range covered since the previous review.
//
// Allocation: base = total/studyDays (floor); the remainder is front-loaded
// one extra unit per day starting from the first study day. Every unit is
// covered exactly once by the union of study slots and the last study slot
// ends exactly at rng.End.
//
// Review semantics: a review slot shows [segStart, lastEnd] where segStart
// is the first unit after the range covered by the previous review and
// lastEnd is the last studied unit. Consecutive reviews repeat the same
// range; the content cursor never advances on a review day.
func Distribute(rng ContentRange, slots []Slot, allowSparse bool) ([]Slot, []string, error) {
	if err := rng.Validate(); err != nil {
		return nil, nil, err
	}
	if len(slots) == 0 {
		return nil, nil, ErrEmptyCalendar
	}

	studyDays := 0
	for _, s := range slots {
		if s.Role == DayStudy {
			studyDays++
		}
	}
	if studyDays == 0 {
		return nil, nil, ErrInsufficientCapacity
	}

	total := rng.Total()
	var warnings []string

	if total < studyDays {
		if !allowSparse {
			return nil, nil, ErrOverAllocation
		}
		warnings = append(warnings, fmt.Sprintf(
			"content has %d units for %d study days; trailing days are left empty", total, studyDays))
	}

	base := total / studyDays
	rem := total % studyDays
	if total < studyDays {
		base, rem = 1, 0
	}

	cursor := rng.Start
	segStart := rng.Start // first unit not yet covered by a review
	lastEnd := 0          // last studied unit so far
	studyIdx := 0

	reviewed := false // whether the current segment is already covered by a review

	for i := range slots {
		switch slots[i].Role {
		case DayStudy:
			if reviewed {
				// first study day after a review opens a new segment
				segStart = lastEnd + 1
				reviewed = false
			}
			if cursor > rng.End {
				// sparse tail: nothing left to allocate
				slots[i].RangeStart = 0
				slots[i].RangeEnd = 0
				slots[i].Units = 0
				studyIdx++
				continue
			}
			amount := base
			if studyIdx < rem {
				amount++
			}
			end := cursor + amount - 1
			if end > rng.End {
				end = rng.End
			}
			slots[i].RangeStart = cursor
			slots[i].RangeEnd = end
			slots[i].Units = end - cursor + 1
			lastEnd = end
			cursor = end + 1
			studyIdx++

		case DayReview:
			if lastEnd == 0 {
				// review before any study day: nothing to recap
				slots[i].RangeStart = 0
				slots[i].RangeEnd = 0
				slots[i].Units = 0
				continue
			}
			// consecutive reviews repeat the same segment
			slots[i].RangeStart = segStart
			slots[i].RangeEnd = lastEnd
			slots[i].Units = 0
			reviewed = true
		}
	}

	return slots, warnings, nil
}
