// internals/features/plans/plan_groups/model/plan_group_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Status lifecycle
   ========================= */

const (
	PlanGroupStatusDraft     = "draft"
	PlanGroupStatusActive    = "active"
	PlanGroupStatusPaused    = "paused"
	PlanGroupStatusCompleted = "completed"
	PlanGroupStatusCancelled = "cancelled"
)

// allowed status transitions; terminal states have no outgoing edges
var planGroupTransitions = map[string][]string{
	PlanGroupStatusDraft:  {PlanGroupStatusActive, PlanGroupStatusCancelled},
	PlanGroupStatusActive: {PlanGroupStatusPaused, PlanGroupStatusCompleted, PlanGroupStatusCancelled},
	PlanGroupStatusPaused: {PlanGroupStatusActive, PlanGroupStatusCancelled},
}

// CanTransition reports whether from -> to is a legal lifecycle move.
func CanTransition(from, to string) bool {
	for _, next := range planGroupTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status accepts no further transitions.
func IsTerminal(status string) bool {
	return status == PlanGroupStatusCompleted || status == PlanGroupStatusCancelled
}

// CountsTowardCapacity: completed/cancelled groups free their capacity slot.
func CountsTowardCapacity(status string) bool {
	return !IsTerminal(status)
}

/* =========================
   Model
   ========================= */

type PlanGroupModel struct {
	PlanGroupID        uuid.UUID `json:"plan_group_id"         gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:plan_group_id"`
	PlanGroupStudentID uuid.UUID `json:"plan_group_student_id" gorm:"type:uuid;not null;index;column:plan_group_student_id"`

	PlanGroupName   string `json:"plan_group_name"   gorm:"type:varchar(120);not null;column:plan_group_name"`
	PlanGroupStatus string `json:"plan_group_status" gorm:"type:text;not null;default:'draft';index;column:plan_group_status"`

	// content
	PlanGroupContentName  string `json:"plan_group_content_name"  gorm:"type:varchar(120);not null;column:plan_group_content_name"`
	PlanGroupContentUnit  string `json:"plan_group_content_unit"  gorm:"type:varchar(20);not null;column:plan_group_content_unit"`
	PlanGroupContentStart int    `json:"plan_group_content_start" gorm:"not null;column:plan_group_content_start"`
	PlanGroupContentEnd   int    `json:"plan_group_content_end"   gorm:"not null;column:plan_group_content_end"`

	// scheduling window
	PlanGroupPeriodStart time.Time     `json:"plan_group_period_start" gorm:"type:date;not null;column:plan_group_period_start"`
	PlanGroupPeriodEnd   time.Time     `json:"plan_group_period_end"   gorm:"type:date;not null;column:plan_group_period_end"`
	PlanGroupWeekdays    pq.Int64Array `json:"plan_group_weekdays"     gorm:"type:int[];column:plan_group_weekdays"`

	PlanGroupStudyType   string `json:"plan_group_study_type"             gorm:"type:varchar(20);not null;default:'weakness';column:plan_group_study_type"`
	PlanGroupDaysPerWeek int    `json:"plan_group_days_per_week,omitempty" gorm:"column:plan_group_days_per_week"`

	// cadence + options as JSON blobs (preferred days, study window,
	// sparse policy, academy overrides)
	PlanGroupCadence          datatypes.JSON `json:"plan_group_cadence,omitempty"           gorm:"type:jsonb;column:plan_group_cadence"`
	PlanGroupSchedulerOptions datatypes.JSON `json:"plan_group_scheduler_options,omitempty" gorm:"type:jsonb;column:plan_group_scheduler_options"`

	// template inheritance
	PlanGroupIsTemplate bool       `json:"plan_group_is_template"        gorm:"not null;default:false;column:plan_group_is_template"`
	PlanGroupTemplateID *uuid.UUID `json:"plan_group_template_id,omitempty" gorm:"type:uuid;column:plan_group_template_id"`

	PlanGroupIsArchived bool `json:"plan_group_is_archived" gorm:"not null;default:false;column:plan_group_is_archived"`

	// denormalized summary filled at commit
	PlanGroupTotalPlans  int `json:"plan_group_total_plans"  gorm:"not null;default:0;column:plan_group_total_plans"`
	PlanGroupStudyDays   int `json:"plan_group_study_days"   gorm:"not null;default:0;column:plan_group_study_days"`
	PlanGroupReviewDays  int `json:"plan_group_review_days"  gorm:"not null;default:0;column:plan_group_review_days"`
	PlanGroupDailyAmount int `json:"plan_group_daily_amount" gorm:"not null;default:0;column:plan_group_daily_amount"`

	PlanGroupCreatedAt time.Time      `json:"plan_group_created_at"           gorm:"column:plan_group_created_at;autoCreateTime"`
	PlanGroupUpdatedAt *time.Time     `json:"plan_group_updated_at,omitempty" gorm:"column:plan_group_updated_at;autoUpdateTime"`
	PlanGroupDeletedAt gorm.DeletedAt `json:"-"                               gorm:"column:plan_group_deleted_at;index"`
}

func (PlanGroupModel) TableName() string {
	return "plan_groups"
}

// BeforeCreate assigns the id client-side so inserts work the same on
// backends without the gen_random_uuid() column default.
func (m *PlanGroupModel) BeforeCreate(tx *gorm.DB) error {
	if m.PlanGroupID == uuid.Nil {
		m.PlanGroupID = uuid.New()
	}
	return nil
}
