// file: internals/features/plans/schedule/cadence.go
package schedule

/* =========================
   Cadence splitter
   ========================= */

// SplitCadence assigns a role (study/review) to each resolved date.
//
// The cadence counter runs over scheduled positions only: excluded dates
// never reached this function, so they neither consume nor reset a cycle.
// The counter restarts at 1 for every content (the caller invokes the
// engine once per content).
func SplitCadence(dates []Slot, rule CadenceRule) []Slot {
	switch rule.Kind {
	case CadenceCyclic:
		return splitCyclic(dates, rule.StudyDays, rule.ReviewDays)
	case CadencePeriodicReview:
		return splitPeriodicReview(dates, rule.EveryNDays)
	default:
		for i := range dates {
			dates[i].Role = DayStudy
		}
		return dates
	}
}

// splitCyclic: repeating block of s study days followed by r review days.
// Position p (1-based) is a review day when ((p-1) mod (s+r)) >= s.
// s=0 marks every day review; the distributor then rejects the schedule
// as having no study capacity.
func splitCyclic(dates []Slot, s, r int) []Slot {
	if s <= 0 && r > 0 {
		for i := range dates {
			dates[i].Role = DayReview
			dates[i].CycleNo = i/r + 1
		}
		return dates
	}
	if s <= 0 {
		s = 1
	}
	if r < 0 {
		r = 0
	}
	cycle := s + r
	for i := range dates {
		pos := i % cycle
		dates[i].CycleNo = i/cycle + 1
		if pos >= s {
			dates[i].Role = DayReview
		} else {
			dates[i].Role = DayStudy
		}
	}
	return dates
}

// splitPeriodicReview: every kth scheduled day is a review day.
func splitPeriodicReview(dates []Slot, k int) []Slot {
	if k <= 1 {
		for i := range dates {
			dates[i].Role = DayStudy
		}
		return dates
	}
	for i := range dates {
		if (i+1)%k == 0 {
			dates[i].Role = DayReview
		} else {
			dates[i].Role = DayStudy
		}
	}
	return dates
}
