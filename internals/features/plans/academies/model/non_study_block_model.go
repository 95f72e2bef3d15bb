// internals/features/plans/academies/model/non_study_block_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NonStudyBlockModel is a weekly recurring block of unavailable time that
// is not an academy (meals, commute, fixed routines).
type NonStudyBlockModel struct {
	NonStudyBlockID        uuid.UUID `json:"non_study_block_id"         gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:non_study_block_id"`
	NonStudyBlockStudentID uuid.UUID `json:"non_study_block_student_id" gorm:"type:uuid;not null;index;column:non_study_block_student_id"`

	NonStudyBlockLabel     string `json:"non_study_block_label"       gorm:"type:varchar(120);column:non_study_block_label"`
	NonStudyBlockDayOfWeek int    `json:"non_study_block_day_of_week" gorm:"not null;column:non_study_block_day_of_week"`
	NonStudyBlockStartTime string `json:"non_study_block_start_time"  gorm:"type:varchar(5);not null;column:non_study_block_start_time"`
	NonStudyBlockEndTime   string `json:"non_study_block_end_time"    gorm:"type:varchar(5);not null;column:non_study_block_end_time"`

	NonStudyBlockCreatedAt time.Time      `json:"non_study_block_created_at"           gorm:"column:non_study_block_created_at;autoCreateTime"`
	NonStudyBlockUpdatedAt *time.Time     `json:"non_study_block_updated_at,omitempty" gorm:"column:non_study_block_updated_at;autoUpdateTime"`
	NonStudyBlockDeletedAt gorm.DeletedAt `json:"-"                                    gorm:"column:non_study_block_deleted_at;index"`
}

func (NonStudyBlockModel) TableName() string {
	return "non_study_blocks"
}

func (m *NonStudyBlockModel) BeforeCreate(tx *gorm.DB) error {
	if m.NonStudyBlockID == uuid.Nil {
		m.NonStudyBlockID = uuid.New()
	}
	return nil
}
