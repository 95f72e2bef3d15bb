// internals/features/plans/academies/model/academy_schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademyScheduleModel is a fixed weekly academy commitment for a student.
// Times are HH:mm clock strings; DayOfWeek follows time.Weekday (0=Sunday).
type AcademyScheduleModel struct {
	AcademyScheduleID        uuid.UUID `json:"academy_schedule_id"         gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:academy_schedule_id"`
	AcademyScheduleStudentID uuid.UUID `json:"academy_schedule_student_id" gorm:"type:uuid;not null;index;column:academy_schedule_student_id"`

	AcademyScheduleName    string `json:"academy_schedule_name"    gorm:"type:varchar(120);not null;column:academy_schedule_name"`
	AcademyScheduleSubject string `json:"academy_schedule_subject" gorm:"type:varchar(120);column:academy_schedule_subject"`

	AcademyScheduleDayOfWeek     int    `json:"academy_schedule_day_of_week"    gorm:"not null;column:academy_schedule_day_of_week"`
	AcademyScheduleStartTime     string `json:"academy_schedule_start_time"     gorm:"type:varchar(5);not null;column:academy_schedule_start_time"`
	AcademyScheduleEndTime       string `json:"academy_schedule_end_time"       gorm:"type:varchar(5);not null;column:academy_schedule_end_time"`
	AcademyScheduleTravelMinutes int    `json:"academy_schedule_travel_minutes" gorm:"not null;default:0;column:academy_schedule_travel_minutes"`

	AcademyScheduleCreatedAt time.Time      `json:"academy_schedule_created_at"           gorm:"column:academy_schedule_created_at;autoCreateTime"`
	AcademyScheduleUpdatedAt *time.Time     `json:"academy_schedule_updated_at,omitempty" gorm:"column:academy_schedule_updated_at;autoUpdateTime"`
	AcademyScheduleDeletedAt gorm.DeletedAt `json:"-"                                     gorm:"column:academy_schedule_deleted_at;index"`
}

func (AcademyScheduleModel) TableName() string {
	return "academy_schedules"
}

func (m *AcademyScheduleModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademyScheduleID == uuid.Nil {
		m.AcademyScheduleID = uuid.New()
	}
	return nil
}
