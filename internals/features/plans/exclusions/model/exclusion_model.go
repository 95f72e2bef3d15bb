// internals/features/plans/exclusions/model/exclusion_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ExclusionKindHoliday      = "holiday"
	ExclusionKindPersonal     = "personal"
	ExclusionKindAcademyBlock = "academy_block"
)

// PlanExclusionModel is one non-study date owned by the student. A nil
// group ID means the exclusion applies to every plan group; a set group ID
// scopes it to that group and lets cascade delete clean it up.
type PlanExclusionModel struct {
	PlanExclusionID        uuid.UUID  `json:"plan_exclusion_id"         gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:plan_exclusion_id"`
	PlanExclusionStudentID uuid.UUID  `json:"plan_exclusion_student_id" gorm:"type:uuid;not null;index;column:plan_exclusion_student_id"`
	PlanExclusionGroupID   *uuid.UUID `json:"plan_exclusion_group_id,omitempty" gorm:"type:uuid;index;column:plan_exclusion_group_id"`

	PlanExclusionDate   time.Time `json:"plan_exclusion_date"   gorm:"type:date;not null;column:plan_exclusion_date"`
	PlanExclusionKind   string    `json:"plan_exclusion_kind"   gorm:"type:varchar(20);not null;default:'personal';column:plan_exclusion_kind"`
	PlanExclusionReason string    `json:"plan_exclusion_reason" gorm:"type:varchar(200);column:plan_exclusion_reason"`

	PlanExclusionCreatedAt time.Time      `json:"plan_exclusion_created_at"           gorm:"column:plan_exclusion_created_at;autoCreateTime"`
	PlanExclusionUpdatedAt *time.Time     `json:"plan_exclusion_updated_at,omitempty" gorm:"column:plan_exclusion_updated_at;autoUpdateTime"`
	PlanExclusionDeletedAt gorm.DeletedAt `json:"-"                                   gorm:"column:plan_exclusion_deleted_at;index"`
}

func (PlanExclusionModel) TableName() string {
	return "plan_exclusions"
}

func (m *PlanExclusionModel) BeforeCreate(tx *gorm.DB) error {
	if m.PlanExclusionID == uuid.Nil {
		m.PlanExclusionID = uuid.New()
	}
	return nil
}
