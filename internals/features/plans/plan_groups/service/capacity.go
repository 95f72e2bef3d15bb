// internals/features/plans/plan_groups/service/capacity.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyku_backend/internals/constants"
	"studyku_backend/internals/features/plans/plan_groups/model"
)

/* =========================
   Capacity guard
   ========================= */

type CapacityInfo struct {
	Current   int
	Max       int
	Remaining int
	CanAdd    bool
}

// CheckCapacity counts the student's live plan groups (draft/active/paused,
// not deleted, templates excluded). This read is advisory for the UI; the
// commit path recounts under a row lock.
func CheckCapacity(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (CapacityInfo, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.PlanGroupModel{}).
		Where("plan_group_student_id = ?", studentID).
		Where("plan_group_is_template = ?", false).
		Where("plan_group_status IN ?", []string{
			model.PlanGroupStatusDraft,
			model.PlanGroupStatusActive,
			model.PlanGroupStatusPaused,
		}).
		Count(&count).Error
	if err != nil {
		return CapacityInfo{}, err
	}

	info := CapacityInfo{
		Current: int(count),
		Max:     constants.MaxContentPlanGroups,
	}
	info.Remaining = info.Max - info.Current
	if info.Remaining < 0 {
		info.Remaining = 0
	}
	info.CanAdd = info.Current < info.Max
	return info, nil
}
