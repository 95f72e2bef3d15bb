package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyku_backend/internals/constants"
	exclusionModel "studyku_backend/internals/features/plans/exclusions/model"
	"studyku_backend/internals/features/plans/plan_groups/model"
	"studyku_backend/internals/features/plans/schedule"
)

func TestCheckCapacity_Arithmetic(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()
	seedGroups(t, db, studentID, 3, model.PlanGroupStatusActive)

	info, err := CheckCapacity(context.Background(), db, studentID)
	require.NoError(t, err)
	assert.Equal(t, 3, info.Current)
	assert.Equal(t, constants.MaxContentPlanGroups, info.Max)
	assert.Equal(t, constants.MaxContentPlanGroups-3, info.Remaining)
	assert.True(t, info.CanAdd)
}

func TestCheckCapacity_AtCeiling(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()
	seedGroups(t, db, studentID, constants.MaxContentPlanGroups, model.PlanGroupStatusActive)

	info, err := CheckCapacity(context.Background(), db, studentID)
	require.NoError(t, err)
	assert.Equal(t, constants.MaxContentPlanGroups, info.Current)
	assert.Equal(t, 0, info.Remaining)
	assert.False(t, info.CanAdd)
}

func TestCheckCapacity_TerminalGroupsFreeTheirSlot(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()
	seedGroups(t, db, studentID, 2, model.PlanGroupStatusActive)
	seedGroups(t, db, studentID, 4, model.PlanGroupStatusCompleted)
	seedGroups(t, db, studentID, 1, model.PlanGroupStatusCancelled)

	info, err := CheckCapacity(context.Background(), db, studentID)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Current)
	assert.True(t, info.CanAdd)
}

func TestCheckCapacity_IgnoresOtherStudents(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()
	seedGroups(t, db, uuid.New(), constants.MaxContentPlanGroups, model.PlanGroupStatusActive)

	info, err := CheckCapacity(context.Background(), db, studentID)
	require.NoError(t, err)
	assert.Equal(t, 0, info.Current)
	assert.True(t, info.CanAdd)
}

/* =========================
   Commit-time enforcement
   ========================= */

func TestCommit_RejectsAtCeilingEvenWhenGuardWasStale(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()
	m := NewMaterializer(db)

	// guard says allowed at 8 of 9...
	seedGroups(t, db, studentID, constants.MaxContentPlanGroups-1, model.PlanGroupStatusActive)
	info, err := CheckCapacity(context.Background(), db, studentID)
	require.NoError(t, err)
	require.True(t, info.CanAdd)

	// ...but another group lands before this commit runs
	seedGroups(t, db, studentID, 1, model.PlanGroupStatusActive)

	_, err = m.Commit(context.Background(), studentID, commitRequest())
	assert.ErrorIs(t, err, schedule.ErrCapacityExceeded)

	var count int64
	require.NoError(t, db.Model(&model.PlanGroupModel{}).
		Where("plan_group_student_id = ?", studentID).Count(&count).Error)
	assert.Equal(t, int64(constants.MaxContentPlanGroups), count)
}

func TestCommit_FreedSlotAllowsCommit(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()
	m := NewMaterializer(db)
	seedGroups(t, db, studentID, constants.MaxContentPlanGroups, model.PlanGroupStatusActive)

	_, err := m.Commit(context.Background(), studentID, commitRequest())
	require.ErrorIs(t, err, schedule.ErrCapacityExceeded)

	// completing one group frees its slot
	var victim model.PlanGroupModel
	require.NoError(t, db.Where("plan_group_student_id = ?", studentID).First(&victim).Error)
	require.NoError(t, db.Model(&victim).
		Update("plan_group_status", model.PlanGroupStatusCompleted).Error)

	group, err := m.Commit(context.Background(), studentID, commitRequest())
	require.NoError(t, err)
	assert.Equal(t, model.PlanGroupStatusDraft, group.PlanGroupStatus)
}

func TestCommit_PersistsUnitsWithBlockIndexes(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()
	m := NewMaterializer(db)

	first, err := m.Commit(context.Background(), studentID, commitRequest())
	require.NoError(t, err)

	var units []model.PlanUnitModel
	require.NoError(t, db.Where("plan_unit_group_id = ?", first.PlanGroupID).
		Order("plan_unit_date ASC").Find(&units).Error)
	require.Len(t, units, first.PlanGroupTotalPlans)
	for _, u := range units {
		assert.Equal(t, 0, u.PlanUnitBlockIndex)
		assert.Equal(t, model.PlanUnitStatusPending, u.PlanUnitStatus)
	}

	// a second group over the same period stacks after the first
	second, err := m.Commit(context.Background(), studentID, commitRequest())
	require.NoError(t, err)

	var stacked []model.PlanUnitModel
	require.NoError(t, db.Where("plan_unit_group_id = ?", second.PlanGroupID).
		Find(&stacked).Error)
	require.NotEmpty(t, stacked)
	for _, u := range stacked {
		assert.Equal(t, 1, u.PlanUnitBlockIndex)
	}
}

func TestCommit_TemplateOccupiesNoSlot(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()
	m := NewMaterializer(db)
	seedGroups(t, db, studentID, constants.MaxContentPlanGroups, model.PlanGroupStatusActive)

	req := commitRequest()
	req.IsTemplate = true
	tpl, err := m.Commit(context.Background(), studentID, req)
	require.NoError(t, err)
	assert.True(t, tpl.PlanGroupIsTemplate)

	// templates carry settings only
	var units int64
	require.NoError(t, db.Model(&model.PlanUnitModel{}).
		Where("plan_unit_group_id = ?", tpl.PlanGroupID).Count(&units).Error)
	assert.Equal(t, int64(0), units)
}

/* =========================
   Cascade delete
   ========================= */

func TestDeleteGroup_HardDeletesChildren(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()
	m := NewMaterializer(db)

	group, err := m.Commit(context.Background(), studentID, commitRequest())
	require.NoError(t, err)

	gid := group.PlanGroupID
	require.NoError(t, db.Create(&exclusionModel.PlanExclusionModel{
		PlanExclusionStudentID: studentID,
		PlanExclusionGroupID:   &gid,
		PlanExclusionDate:      group.PlanGroupPeriodStart,
		PlanExclusionKind:      exclusionModel.ExclusionKindPersonal,
	}).Error)

	require.NoError(t, DeleteGroup(context.Background(), db, studentID, gid))

	// group row keeps a tombstone and frees its capacity slot
	var softDeleted model.PlanGroupModel
	require.NoError(t, db.Unscoped().
		Where("plan_group_id = ?", gid).First(&softDeleted).Error)
	assert.True(t, softDeleted.PlanGroupDeletedAt.Valid)

	info, err := CheckCapacity(context.Background(), db, studentID)
	require.NoError(t, err)
	assert.Equal(t, 0, info.Current)

	// children leave no residue, not even soft-deleted rows
	var unitCount int64
	require.NoError(t, db.Unscoped().Model(&model.PlanUnitModel{}).
		Where("plan_unit_group_id = ?", gid).Count(&unitCount).Error)
	assert.Equal(t, int64(0), unitCount)

	var exclusionCount int64
	require.NoError(t, db.Unscoped().Model(&exclusionModel.PlanExclusionModel{}).
		Where("plan_exclusion_group_id = ?", gid).Count(&exclusionCount).Error)
	assert.Equal(t, int64(0), exclusionCount)
}

func TestDeleteGroup_NotFound(t *testing.T) {
	db := openTestDB(t)
	err := DeleteGroup(context.Background(), db, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrGroupNotFound)
}
