// file: internals/features/plans/schedule/conflict.go
package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

/* =========================
   Academy / block conflict filter
   ========================= */

type minuteRange struct{ start, end int }

// parseClock converts "HH:mm" to minutes since midnight. Malformed values
// fall back to 0 so a bad row never panics the engine.
func parseClock(s string) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0
	}
	return h*60 + m
}

// mergeRanges sorts and coalesces overlapping/adjacent minute intervals.
func mergeRanges(in []minuteRange) []minuteRange {
	if len(in) == 0 {
		return nil
	}
	sort.Slice(in, func(i, j int) bool { return in[i].start < in[j].start })
	out := []minuteRange{in[0]}
	for _, r := range in[1:] {
		last := &out[len(out)-1]
		if r.start <= last.end {
			if r.end > last.end {
				last.end = r.end
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterConflicts removes study dates whose daily study window is fully
// covered by academy commitments (widened by travel time) and non-study
// blocks. Partially blocked days are kept: the window still has open time.
// Returns the kept slots and one info line per dropped date.
func FilterConflicts(slots []Slot, academies []AcademySchedule, blocks []TimeBlock, window TimeRange) ([]Slot, []string) {
	if len(academies) == 0 && len(blocks) == 0 {
		return slots, nil
	}

	winStart := parseClock(window.Start)
	winEnd := parseClock(window.End)
	if winEnd <= winStart {
		return slots, nil
	}

	busy := make(map[int][]minuteRange) // weekday -> merged busy intervals
	for _, a := range academies {
		s := parseClock(a.Start) - a.TravelMinutes
		e := parseClock(a.End) + a.TravelMinutes
		if s < 0 {
			s = 0
		}
		busy[int(a.DayOfWeek)] = append(busy[int(a.DayOfWeek)], minuteRange{s, e})
	}
	for _, b := range blocks {
		busy[int(b.DayOfWeek)] = append(busy[int(b.DayOfWeek)], minuteRange{parseClock(b.Start), parseClock(b.End)})
	}
	for wd := range busy {
		busy[wd] = mergeRanges(busy[wd])
	}

	var kept []Slot
	var info []string
	for _, s := range slots {
		if windowFullyCovered(winStart, winEnd, busy[int(s.Date.Weekday())]) {
			info = append(info, fmt.Sprintf("%s skipped: no free time in the study window", FormatDate(s.Date)))
			continue
		}
		kept = append(kept, s)
	}
	return kept, info
}

// windowFullyCovered reports whether merged busy intervals leave no gap
// inside [winStart, winEnd).
func windowFullyCovered(winStart, winEnd int, merged []minuteRange) bool {
	at := winStart
	for _, r := range merged {
		if r.end <= at {
			continue
		}
		if r.start > at {
			return false // gap before this interval
		}
		at = r.end
		if at >= winEnd {
			return true
		}
	}
	return at >= winEnd
}
