// file: internals/features/plans/schedule/calendar.go
package schedule

import (
	"sort"
	"time"
)

/* =========================
   Calendar resolver
   ========================= */

// ResolveCalendar walks the inclusive [period.Start, period.End] range and
// keeps every date whose weekday is in weekdays and that is not excluded.
// Output is ascending and deduplicated; for strategy study types the result
// is then thinned per ISO week by SelectStrategyDates.
func ResolveCalendar(period Period, weekdays []time.Weekday, exclusions []Exclusion) ([]time.Time, error) {
	start := DateOnly(period.Start)
	end := DateOnly(period.End)
	if end.Before(start) {
		return nil, ErrEmptyCalendar
	}

	daySet := make(map[time.Weekday]bool, len(weekdays))
	for _, d := range weekdays {
		daySet[d] = true
	}
	excluded := make(map[string]bool, len(exclusions))
	for _, ex := range exclusions {
		excluded[FormatDate(DateOnly(ex.Date))] = true
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !daySet[d.Weekday()] {
			continue
		}
		if excluded[FormatDate(d)] {
			continue
		}
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return nil, ErrEmptyCalendar
	}
	return dates, nil
}

// SelectStrategyDates keeps daysPerWeek dates out of each ISO week.
// Preferred weekdays win first; any shortfall is filled by an even spread
// over the remaining dates of that week. Weeks with fewer eligible dates
// than daysPerWeek keep everything they have.
func SelectStrategyDates(dates []time.Time, daysPerWeek int, preferred []time.Weekday) []time.Time {
	if daysPerWeek <= 0 || len(dates) == 0 {
		return dates
	}

	prefSet := make(map[time.Weekday]bool, len(preferred))
	for _, d := range preferred {
		prefSet[d] = true
	}

	type weekKey struct{ year, week int }
	weeks := make(map[weekKey][]time.Time)
	var order []weekKey
	for _, d := range dates {
		y, w := d.ISOWeek()
		k := weekKey{y, w}
		if _, seen := weeks[k]; !seen {
			order = append(order, k)
		}
		weeks[k] = append(weeks[k], d)
	}

	var out []time.Time
	for _, k := range order {
		week := weeks[k]
		if len(week) <= daysPerWeek {
			out = append(out, week...)
			continue
		}

		picked := make([]time.Time, 0, daysPerWeek)
		var rest []time.Time
		for _, d := range week {
			if prefSet[d.Weekday()] && len(picked) < daysPerWeek {
				picked = append(picked, d)
			} else {
				rest = append(rest, d)
			}
		}

		// Fill the shortfall with an even spread over the leftover dates.
		if need := daysPerWeek - len(picked); need > 0 && len(rest) > 0 {
			if need >= len(rest) {
				picked = append(picked, rest...)
			} else {
				step := float64(len(rest)) / float64(need)
				for i := 0; i < need; i++ {
					idx := int(float64(i) * step)
					picked = append(picked, rest[idx])
				}
			}
		}

		sort.Slice(picked, func(i, j int) bool { return picked[i].Before(picked[j]) })
		out = append(out, picked...)
	}
	return out
}
