// file: internals/features/plans/schedule/engine.go
package schedule

import (
	"fmt"
	"time"
)

/* =========================
   Engine facade
   =========================
   Pipeline: resolve calendar -> strategy thinning -> cadence split ->
   conflict filter -> distribute. The filter runs before distribution so
   dropped dates never hold content; everything is deterministic, the
   same inputs always yield byte-identical output. */

// Build runs the full pipeline for one content range.
func Build(cfg EffectiveConfig, rng ContentRange) (*Schedule, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	dates, err := ResolveCalendar(cfg.Period, cfg.Weekdays, cfg.Exclusions)
	if err != nil {
		return nil, err
	}
	if cfg.StudyType == StudyStrategy {
		dates = SelectStrategyDates(dates, cfg.DaysPerWeek, cfg.PreferredDays)
		if len(dates) == 0 {
			return nil, ErrEmptyCalendar
		}
	}

	slots := make([]Slot, len(dates))
	for i, d := range dates {
		slots[i] = Slot{Date: d}
	}
	slots = SplitCadence(slots, cfg.Cadence)

	slots, dropInfo := FilterConflicts(slots, cfg.Academies, cfg.NonStudyBlocks, cfg.StudyWindow)
	if len(slots) == 0 {
		return nil, ErrEmptyCalendar
	}
	// Re-split after the filter: cadence positions must count scheduled
	// days only, and dropping dates shifts every later position.
	if len(dropInfo) > 0 {
		slots = SplitCadence(slots, cfg.Cadence)
	}

	slots, warnings, err := Distribute(rng, slots, cfg.AllowSparse)
	if err != nil {
		return nil, err
	}

	out := &Schedule{Slots: slots, Warnings: warnings, Info: dropInfo}
	for _, s := range slots {
		switch s.Role {
		case DayStudy:
			out.StudyDays++
		case DayReview:
			out.ReviewDays++
		}
	}
	return out, nil
}

/* =========================
   Preview
   ========================= */

// Preview caps the slot list for display and attaches the distribution
// summary. Duration: study = units x minutesPerUnit, review = ceil of
// units-in-range x reviewMinutesPerUnit.
func (s *Schedule) Preview(cfg EffectiveConfig, rng ContentRange) *PreviewResult {
	max := cfg.MaxPreviewPlans
	if max <= 0 {
		max = 10
	}

	minsStudy := cfg.MinutesPerUnit
	if minsStudy <= 0 {
		minsStudy = 5
	}
	minsReview := cfg.ReviewMinutesPerUnit
	if minsReview <= 0 {
		minsReview = 2
	}

	total := rng.Total()
	daily := 0
	if s.StudyDays > 0 {
		daily = total / s.StudyDays
		if daily == 0 {
			daily = 1
		}
	}

	res := &PreviewResult{
		Distribution: Distribution{
			StudyDays:   s.StudyDays,
			ReviewDays:  s.ReviewDays,
			DailyAmount: daily,
			TotalDays:   len(s.Slots),
		},
		Warnings: s.Warnings,
		Info:     s.Info,
	}
	if len(s.Slots) > max {
		res.Info = append(res.Info,
			fmt.Sprintf("showing first %d of %d plans", max, len(s.Slots)))
	}

	for i, slot := range s.Slots {
		if i >= max {
			break
		}
		res.PlanPreviews = append(res.PlanPreviews, PlanPreviewItem{
			Date:              FormatDate(slot.Date),
			DayOfWeek:         int(slot.Date.Weekday()),
			DayType:           slot.Role,
			RangeStart:        slot.RangeStart,
			RangeEnd:          slot.RangeEnd,
			EstimatedDuration: SlotDuration(slot, minsStudy, minsReview),
		})
	}
	return res
}

// SlotDuration estimates minutes for one slot.
func SlotDuration(s Slot, minsStudy, minsReview int) int {
	switch s.Role {
	case DayReview:
		if s.RangeEnd < s.RangeStart || s.RangeStart == 0 {
			return 0
		}
		units := s.RangeEnd - s.RangeStart + 1
		return units * minsReview
	default:
		return s.Units * minsStudy
	}
}

// WeekdayInts converts weekdays to ints for persistence.
func WeekdayInts(days []time.Weekday) []int64 {
	out := make([]int64, len(days))
	for i, d := range days {
		out[i] = int64(d)
	}
	return out
}

// IntsToWeekdays is the inverse of WeekdayInts.
func IntsToWeekdays(vals []int64) []time.Weekday {
	out := make([]time.Weekday, len(vals))
	for i, v := range vals {
		out[i] = time.Weekday(v)
	}
	return out
}
