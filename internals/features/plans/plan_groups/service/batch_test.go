package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyku_backend/internals/constants"
	"studyku_backend/internals/features/plans/plan_groups/dto"
	"studyku_backend/internals/features/plans/plan_groups/model"
)

func batchItems(n int) []dto.BatchPlanItem {
	items := make([]dto.BatchPlanItem, n)
	for i := range items {
		items[i] = dto.BatchPlanItem{CreatePlanGroupRequest: commitRequest()}
	}
	return items
}

func TestRunBatch_AllSucceed(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()
	m := NewMaterializer(db)

	resp := RunBatch(context.Background(), m, studentID, batchItems(3))
	assert.Equal(t, 3, resp.Succeeded)
	assert.Equal(t, 0, resp.Failed)
	for i, r := range resp.Results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, studentID, r.StudentID)
		require.NotNil(t, r.PlanGroupID)
	}
}

func TestRunBatch_OneFailureDoesNotBlockTheRest(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()
	m := NewMaterializer(db)

	items := batchItems(3)
	items[1].Content.Start = 50
	items[1].Content.End = 10 // invalid range, fails in the engine

	resp := RunBatch(context.Background(), m, studentID, items)
	assert.Equal(t, 2, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)

	assert.NotNil(t, resp.Results[0].PlanGroupID)
	assert.NotEmpty(t, resp.Results[1].Error)
	assert.Nil(t, resp.Results[1].PlanGroupID)
	assert.NotNil(t, resp.Results[2].PlanGroupID)

	// the failed item rolled back alone; the others are committed
	var count int64
	require.NoError(t, db.Model(&model.PlanGroupModel{}).
		Where("plan_group_student_id = ?", studentID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestRunBatch_CeilingHoldsWithinOneBatch(t *testing.T) {
	// one batch request with more items than the student's remaining slots
	// must not breach the ceiling: commits serialize per student and the
	// in-transaction recount rejects the overflow items
	db := openTestDB(t)
	studentID := uuid.New()
	m := NewMaterializer(db)

	resp := RunBatch(context.Background(), m, studentID, batchItems(constants.MaxContentPlanGroups+1))
	assert.Equal(t, constants.MaxContentPlanGroups, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)

	var count int64
	require.NoError(t, db.Model(&model.PlanGroupModel{}).
		Where("plan_group_student_id = ?", studentID).Count(&count).Error)
	assert.Equal(t, int64(constants.MaxContentPlanGroups), count)
}

func TestRunBatch_PerItemStudentTargets(t *testing.T) {
	db := openTestDB(t)
	caller := uuid.New()
	invited := uuid.New()
	m := NewMaterializer(db)

	items := batchItems(2)
	items[1].StudentID = &invited

	resp := RunBatch(context.Background(), m, caller, items)
	require.Equal(t, 2, resp.Succeeded)
	assert.Equal(t, caller, resp.Results[0].StudentID)
	assert.Equal(t, invited, resp.Results[1].StudentID)

	var callerCount, invitedCount int64
	require.NoError(t, db.Model(&model.PlanGroupModel{}).
		Where("plan_group_student_id = ?", caller).Count(&callerCount).Error)
	require.NoError(t, db.Model(&model.PlanGroupModel{}).
		Where("plan_group_student_id = ?", invited).Count(&invitedCount).Error)
	assert.Equal(t, int64(1), callerCount)
	assert.Equal(t, int64(1), invitedCount)
}

func TestRunBatch_CancelledContextMarksRemainingItems(t *testing.T) {
	db := openTestDB(t)
	m := NewMaterializer(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := RunBatch(ctx, m, uuid.New(), batchItems(2))
	assert.Equal(t, 0, resp.Succeeded)
	assert.Equal(t, 2, resp.Failed)
	for _, r := range resp.Results {
		assert.NotEmpty(t, r.Error)
	}
}
