package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"studyku_backend/internals/features/plans/plan_groups/model"
)

// The production schema uses gen_random_uuid() defaults, so tests create
// the tables by hand (ids are assigned in BeforeCreate either way). One
// connection keeps the in-memory database alive and serializes writes.
var testSchema = []string{
	`CREATE TABLE plan_groups (
		plan_group_id TEXT PRIMARY KEY,
		plan_group_student_id TEXT NOT NULL,
		plan_group_name TEXT NOT NULL,
		plan_group_status TEXT NOT NULL DEFAULT 'draft',
		plan_group_content_name TEXT NOT NULL,
		plan_group_content_unit TEXT NOT NULL,
		plan_group_content_start INTEGER NOT NULL,
		plan_group_content_end INTEGER NOT NULL,
		plan_group_period_start DATETIME,
		plan_group_period_end DATETIME,
		plan_group_weekdays TEXT,
		plan_group_study_type TEXT NOT NULL DEFAULT 'weakness',
		plan_group_days_per_week INTEGER,
		plan_group_cadence TEXT,
		plan_group_scheduler_options TEXT,
		plan_group_is_template NUMERIC NOT NULL DEFAULT 0,
		plan_group_template_id TEXT,
		plan_group_is_archived NUMERIC NOT NULL DEFAULT 0,
		plan_group_total_plans INTEGER NOT NULL DEFAULT 0,
		plan_group_study_days INTEGER NOT NULL DEFAULT 0,
		plan_group_review_days INTEGER NOT NULL DEFAULT 0,
		plan_group_daily_amount INTEGER NOT NULL DEFAULT 0,
		plan_group_created_at DATETIME,
		plan_group_updated_at DATETIME,
		plan_group_deleted_at DATETIME
	)`,
	`CREATE TABLE plan_units (
		plan_unit_id TEXT PRIMARY KEY,
		plan_unit_group_id TEXT NOT NULL,
		plan_unit_student_id TEXT NOT NULL,
		plan_unit_date DATETIME NOT NULL,
		plan_unit_block_index INTEGER NOT NULL DEFAULT 0,
		plan_unit_day_type TEXT NOT NULL,
		plan_unit_content_name TEXT NOT NULL,
		plan_unit_content_unit TEXT NOT NULL,
		plan_unit_range_start INTEGER NOT NULL DEFAULT 0,
		plan_unit_range_end INTEGER NOT NULL DEFAULT 0,
		plan_unit_duration_minutes INTEGER NOT NULL DEFAULT 0,
		plan_unit_status TEXT NOT NULL DEFAULT 'pending',
		plan_unit_created_at DATETIME,
		plan_unit_updated_at DATETIME,
		plan_unit_deleted_at DATETIME
	)`,
	`CREATE TABLE plan_exclusions (
		plan_exclusion_id TEXT PRIMARY KEY,
		plan_exclusion_student_id TEXT NOT NULL,
		plan_exclusion_group_id TEXT,
		plan_exclusion_date DATETIME NOT NULL,
		plan_exclusion_kind TEXT NOT NULL DEFAULT 'personal',
		plan_exclusion_reason TEXT,
		plan_exclusion_created_at DATETIME,
		plan_exclusion_updated_at DATETIME,
		plan_exclusion_deleted_at DATETIME
	)`,
	`CREATE TABLE academy_schedules (
		academy_schedule_id TEXT PRIMARY KEY,
		academy_schedule_student_id TEXT NOT NULL,
		academy_schedule_name TEXT NOT NULL,
		academy_schedule_subject TEXT,
		academy_schedule_day_of_week INTEGER NOT NULL,
		academy_schedule_start_time TEXT NOT NULL,
		academy_schedule_end_time TEXT NOT NULL,
		academy_schedule_travel_minutes INTEGER NOT NULL DEFAULT 0,
		academy_schedule_created_at DATETIME,
		academy_schedule_updated_at DATETIME,
		academy_schedule_deleted_at DATETIME
	)`,
	`CREATE TABLE non_study_blocks (
		non_study_block_id TEXT PRIMARY KEY,
		non_study_block_student_id TEXT NOT NULL,
		non_study_block_label TEXT,
		non_study_block_day_of_week INTEGER NOT NULL,
		non_study_block_start_time TEXT NOT NULL,
		non_study_block_end_time TEXT NOT NULL,
		non_study_block_created_at DATETIME,
		non_study_block_updated_at DATETIME,
		non_study_block_deleted_at DATETIME
	)`,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, ddl := range testSchema {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedGroups(t *testing.T, db *gorm.DB, studentID uuid.UUID, n int, status string) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&model.PlanGroupModel{
			PlanGroupStudentID:    studentID,
			PlanGroupName:         "seed",
			PlanGroupStatus:       status,
			PlanGroupContentName:  "seed content",
			PlanGroupContentUnit:  "page",
			PlanGroupContentStart: 1,
			PlanGroupContentEnd:   10,
		}).Error)
	}
}
