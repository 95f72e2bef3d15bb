// internals/features/plans/exclusions/service/resolver.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	exclusionModel "studyku_backend/internals/features/plans/exclusions/model"
	"studyku_backend/internals/features/plans/schedule"
)

/* =========================
   Exclusion resolver
   ========================= */

type Resolver struct {
	DB *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{DB: db}
}

// Resolve loads every exclusion visible to the student inside the period:
// global rows (nil group) plus rows scoped to groupID when given. Extra
// ad-hoc dates from the request are merged in as personal exclusions.
// The result is deduplicated by date and sorted ascending.
func (r *Resolver) Resolve(ctx context.Context, studentID uuid.UUID, groupID *uuid.UUID, period schedule.Period, extraDates []time.Time) ([]schedule.Exclusion, error) {
	var rows []exclusionModel.PlanExclusionModel

	q := r.DB.WithContext(ctx).
		Where("plan_exclusion_student_id = ?", studentID).
		Where("plan_exclusion_date BETWEEN ? AND ?", schedule.DateOnly(period.Start), schedule.DateOnly(period.End))
	if groupID != nil {
		q = q.Where("plan_exclusion_group_id IS NULL OR plan_exclusion_group_id = ?", *groupID)
	} else {
		q = q.Where("plan_exclusion_group_id IS NULL")
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	return MergeExclusions(rows, extraDates), nil
}

// MergeExclusions combines stored rows and ad-hoc dates, deduplicating by
// calendar date. Stored rows win over ad-hoc dates so kind/reason survive.
func MergeExclusions(rows []exclusionModel.PlanExclusionModel, extraDates []time.Time) []schedule.Exclusion {
	byDate := make(map[string]schedule.Exclusion, len(rows)+len(extraDates))

	for _, d := range extraDates {
		day := schedule.DateOnly(d)
		byDate[schedule.FormatDate(day)] = schedule.Exclusion{
			Date: day,
			Kind: schedule.ExclusionPersonal,
		}
	}
	for _, row := range rows {
		day := schedule.DateOnly(row.PlanExclusionDate)
		byDate[schedule.FormatDate(day)] = schedule.Exclusion{
			Date:   day,
			Kind:   schedule.ExclusionKind(row.PlanExclusionKind),
			Reason: row.PlanExclusionReason,
		}
	}

	out := make([]schedule.Exclusion, 0, len(byDate))
	for _, ex := range byDate {
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
