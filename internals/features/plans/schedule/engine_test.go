package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() EffectiveConfig {
	return EffectiveConfig{
		Period: Period{Start: date(2026, 3, 2), End: date(2026, 3, 27)},
		Weekdays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		StudyType:   StudyWeakness,
		Cadence:     CadenceRule{Kind: CadenceDaily},
		StudyWindow: TimeRange{Start: "10:00", End: "19:00"},
	}
}

func TestBuild_DailyWeakness(t *testing.T) {
	cfg := baseConfig()
	sched, err := Build(cfg, ContentRange{Unit: UnitPage, Start: 1, End: 100})
	require.NoError(t, err)

	// 4 full Mon-Fri weeks
	assert.Equal(t, 20, sched.StudyDays)
	assert.Equal(t, 0, sched.ReviewDays)
	assert.Equal(t, 100, sched.Slots[19].RangeEnd)
}

func TestBuild_Deterministic(t *testing.T) {
	cfg := baseConfig()
	cfg.Cadence = CadenceRule{Kind: CadenceCyclic, StudyDays: 3, ReviewDays: 1}
	rng := ContentRange{Unit: UnitPage, Start: 1, End: 60}

	first, err := Build(cfg, rng)
	require.NoError(t, err)
	second, err := Build(cfg, rng)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuild_StrategyThinsWeeks(t *testing.T) {
	cfg := baseConfig()
	cfg.StudyType = StudyStrategy
	cfg.DaysPerWeek = 3
	cfg.PreferredDays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}

	sched, err := Build(cfg, ContentRange{Unit: UnitPage, Start: 1, End: 24})
	require.NoError(t, err)
	assert.Equal(t, 12, sched.StudyDays) // 3 per week x 4 weeks
	for _, s := range sched.Slots {
		wd := s.Date.Weekday()
		assert.Contains(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, wd)
	}
}

func TestBuild_ConflictFilterReassignsCadence(t *testing.T) {
	cfg := baseConfig()
	cfg.Cadence = CadenceRule{Kind: CadenceCyclic, StudyDays: 2, ReviewDays: 1}
	// every Wednesday fully blocked
	cfg.Academies = []AcademySchedule{{DayOfWeek: time.Wednesday, Start: "09:00", End: "20:00"}}

	sched, err := Build(cfg, ContentRange{Unit: UnitPage, Start: 1, End: 32})
	require.NoError(t, err)
	assert.NotEmpty(t, sched.Info)

	// cadence positions count kept days only
	for i, s := range sched.Slots {
		assert.NotEqual(t, time.Wednesday, s.Date.Weekday())
		if (i+1)%3 == 0 {
			assert.Equal(t, DayReview, s.Role, "slot %d", i)
		} else {
			assert.Equal(t, DayStudy, s.Role, "slot %d", i)
		}
	}
}

func TestBuild_InvalidRangeRejected(t *testing.T) {
	_, err := Build(baseConfig(), ContentRange{Unit: UnitPage, Start: 9, End: 3})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestBuild_AllDatesExcluded(t *testing.T) {
	cfg := baseConfig()
	cfg.Period = Period{Start: date(2026, 3, 2), End: date(2026, 3, 3)}
	cfg.Exclusions = []Exclusion{
		{Date: date(2026, 3, 2), Kind: ExclusionHoliday},
		{Date: date(2026, 3, 3), Kind: ExclusionPersonal},
	}
	_, err := Build(cfg, ContentRange{Unit: UnitPage, Start: 1, End: 10})
	assert.ErrorIs(t, err, ErrEmptyCalendar)
}

func TestPreview_CapsAndDurations(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxPreviewPlans = 5
	cfg.MinutesPerUnit = 5
	cfg.ReviewMinutesPerUnit = 2
	cfg.Cadence = CadenceRule{Kind: CadenceCyclic, StudyDays: 4, ReviewDays: 1}

	rng := ContentRange{Unit: UnitPage, Start: 1, End: 80}
	sched, err := Build(cfg, rng)
	require.NoError(t, err)

	res := sched.Preview(cfg, rng)
	require.Len(t, res.PlanPreviews, 5)
	assert.Equal(t, len(sched.Slots), res.Distribution.TotalDays)
	assert.Contains(t, res.Info[len(res.Info)-1], "showing first 5")

	// study duration = units x 5
	first := res.PlanPreviews[0]
	require.Equal(t, DayStudy, first.DayType)
	units := first.RangeEnd - first.RangeStart + 1
	assert.Equal(t, units*5, first.EstimatedDuration)

	// 5th slot is the first review: duration = units-in-range x 2
	review := res.PlanPreviews[4]
	require.Equal(t, DayReview, review.DayType)
	revUnits := review.RangeEnd - review.RangeStart + 1
	assert.Equal(t, revUnits*2, review.EstimatedDuration)
}

func TestPreview_DefaultCap(t *testing.T) {
	cfg := baseConfig()
	rng := ContentRange{Unit: UnitPage, Start: 1, End: 100}
	sched, err := Build(cfg, rng)
	require.NoError(t, err)

	res := sched.Preview(cfg, rng) // MaxPreviewPlans unset -> 10
	assert.Len(t, res.PlanPreviews, 10)
}
