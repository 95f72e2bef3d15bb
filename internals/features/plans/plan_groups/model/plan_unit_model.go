// internals/features/plans/plan_groups/model/plan_unit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PlanUnitStatusPending = "pending"
	PlanUnitStatusDone    = "done"
	PlanUnitStatusSkipped = "skipped"
)

const (
	PlanUnitDayStudy  = "study"
	PlanUnitDayReview = "review"
)

// PlanUnitModel is one materialized calendar slot. BlockIndex orders slots
// sharing the same (student, date) across plan groups.
type PlanUnitModel struct {
	PlanUnitID        uuid.UUID `json:"plan_unit_id"         gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:plan_unit_id"`
	PlanUnitGroupID   uuid.UUID `json:"plan_unit_group_id"   gorm:"type:uuid;not null;index;column:plan_unit_group_id"`
	PlanUnitStudentID uuid.UUID `json:"plan_unit_student_id" gorm:"type:uuid;not null;index:idx_plan_units_student_date;column:plan_unit_student_id"`

	PlanUnitDate       time.Time `json:"plan_unit_date"        gorm:"type:date;not null;index:idx_plan_units_student_date;column:plan_unit_date"`
	PlanUnitBlockIndex int       `json:"plan_unit_block_index" gorm:"not null;default:0;column:plan_unit_block_index"`
	PlanUnitDayType    string    `json:"plan_unit_day_type"    gorm:"type:varchar(10);not null;column:plan_unit_day_type"`

	PlanUnitContentName string `json:"plan_unit_content_name" gorm:"type:varchar(120);not null;column:plan_unit_content_name"`
	PlanUnitContentUnit string `json:"plan_unit_content_unit" gorm:"type:varchar(20);not null;column:plan_unit_content_unit"`
	PlanUnitRangeStart  int    `json:"plan_unit_range_start"  gorm:"not null;default:0;column:plan_unit_range_start"`
	PlanUnitRangeEnd    int    `json:"plan_unit_range_end"    gorm:"not null;default:0;column:plan_unit_range_end"`

	PlanUnitDurationMinutes int    `json:"plan_unit_duration_minutes" gorm:"not null;default:0;column:plan_unit_duration_minutes"`
	PlanUnitStatus          string `json:"plan_unit_status"           gorm:"type:text;not null;default:'pending';column:plan_unit_status"`

	PlanUnitCreatedAt time.Time      `json:"plan_unit_created_at"           gorm:"column:plan_unit_created_at;autoCreateTime"`
	PlanUnitUpdatedAt *time.Time     `json:"plan_unit_updated_at,omitempty" gorm:"column:plan_unit_updated_at;autoUpdateTime"`
	PlanUnitDeletedAt gorm.DeletedAt `json:"-"                              gorm:"column:plan_unit_deleted_at;index"`
}

func (PlanUnitModel) TableName() string {
	return "plan_units"
}

func (m *PlanUnitModel) BeforeCreate(tx *gorm.DB) error {
	if m.PlanUnitID == uuid.Nil {
		m.PlanUnitID = uuid.New()
	}
	return nil
}
