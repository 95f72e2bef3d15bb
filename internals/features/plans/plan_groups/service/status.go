// internals/features/plans/plan_groups/service/status.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	exclusionModel "studyku_backend/internals/features/plans/exclusions/model"
	"studyku_backend/internals/features/plans/plan_groups/model"
)

var (
	ErrGroupNotFound        = errors.New("plan group not found")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrTerminalStatusLocked = errors.New("plan group is in a terminal status")
)

/* =========================
   Lifecycle
   ========================= */

// UpdateStatus moves a group through the lifecycle state machine. Terminal
// groups reject every transition.
func UpdateStatus(ctx context.Context, db *gorm.DB, studentID, groupID uuid.UUID, newStatus string) (*model.PlanGroupModel, error) {
	var group model.PlanGroupModel

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("plan_group_id = ? AND plan_group_student_id = ?", groupID, studentID).
			First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}

		if model.IsTerminal(group.PlanGroupStatus) {
			return ErrTerminalStatusLocked
		}
		if !model.CanTransition(group.PlanGroupStatus, newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, group.PlanGroupStatus, newStatus)
		}

		group.PlanGroupStatus = newStatus
		return tx.Model(&group).
			Update("plan_group_status", newStatus).Error
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

/* =========================
   Cascade delete
   ========================= */

// DeleteGroup removes a group in one transaction: the group row is
// soft-deleted (frees its capacity slot, keeps an audit trail), while its
// plan units and group-scoped exclusions are hard-deleted — a deleted group
// must leave no schedulable residue on the student's calendar.
func DeleteGroup(ctx context.Context, db *gorm.DB, studentID, groupID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("plan_group_id = ? AND plan_group_student_id = ?", groupID, studentID).
			Delete(&model.PlanGroupModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrGroupNotFound
		}

		// children are hard-deleted; only the group row keeps a tombstone
		if err := tx.Unscoped().
			Where("plan_unit_group_id = ?", groupID).
			Delete(&model.PlanUnitModel{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().
			Where("plan_exclusion_group_id = ?", groupID).
			Delete(&exclusionModel.PlanExclusionModel{}).Error
	})
}
