package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exclusionModel "studyku_backend/internals/features/plans/exclusions/model"
	"studyku_backend/internals/features/plans/schedule"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMergeExclusions_DedupeByDate(t *testing.T) {
	rows := []exclusionModel.PlanExclusionModel{
		{PlanExclusionDate: day(2026, 3, 5), PlanExclusionKind: exclusionModel.ExclusionKindHoliday, PlanExclusionReason: "national holiday"},
	}
	extra := []time.Time{day(2026, 3, 5), day(2026, 3, 9)}

	got := MergeExclusions(rows, extra)
	require.Len(t, got, 2)

	// sorted ascending, stored row wins on the duplicate date
	assert.Equal(t, day(2026, 3, 5), got[0].Date)
	assert.Equal(t, schedule.ExclusionHoliday, got[0].Kind)
	assert.Equal(t, "national holiday", got[0].Reason)

	assert.Equal(t, day(2026, 3, 9), got[1].Date)
	assert.Equal(t, schedule.ExclusionPersonal, got[1].Kind)
}

func TestMergeExclusions_TimeOfDayNormalized(t *testing.T) {
	rows := []exclusionModel.PlanExclusionModel{
		{PlanExclusionDate: time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC), PlanExclusionKind: exclusionModel.ExclusionKindPersonal},
	}
	extra := []time.Time{time.Date(2026, 3, 5, 2, 0, 0, 0, time.UTC)}

	got := MergeExclusions(rows, extra)
	assert.Len(t, got, 1)
	assert.Equal(t, day(2026, 3, 5), got[0].Date)
}

func TestMergeExclusions_Empty(t *testing.T) {
	assert.Empty(t, MergeExclusions(nil, nil))
}
