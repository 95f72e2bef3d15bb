// internals/features/plans/plan_groups/dto/plan_group_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"studyku_backend/internals/features/plans/schedule"
)

/* =========================
   Request DTOs
   ========================= */

type ContentRangeDTO struct {
	Name  string `json:"name"  validate:"required,max=120"`
	Unit  string `json:"unit"  validate:"required,oneof=page episode day chapter unit"`
	Start int    `json:"start" validate:"required,min=1"`
	End   int    `json:"end"   validate:"required,min=1"`
}

type PeriodDTO struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end"   validate:"required,datetime=2006-01-02"`
}

type CadenceDTO struct {
	Kind       string `json:"kind"         validate:"required,oneof=daily cyclic periodic-review"`
	StudyDays  int    `json:"study_days"   validate:"omitempty,min=1,max=30"`
	ReviewDays int    `json:"review_days"  validate:"omitempty,min=0,max=30"`
	EveryNDays int    `json:"every_n_days" validate:"omitempty,min=2,max=30"`
}

type StudyWindowDTO struct {
	Start string `json:"start" validate:"required,datetime=15:04"`
	End   string `json:"end"   validate:"required,datetime=15:04"`
}

// IndividualScheduleDTO carries per-request overrides on top of the
// student's stored academy schedules and non-study blocks.
type IndividualScheduleDTO struct {
	StudyWindow    *StudyWindowDTO `json:"study_window,omitempty"`
	IgnoreAcademy  bool            `json:"ignore_academy,omitempty"`
	ExtraExclusion []string        `json:"extra_exclusions,omitempty" validate:"omitempty,dive,datetime=2006-01-02"`
}

type PreviewPlanGroupRequest struct {
	Name    string          `json:"name"    validate:"required,max=120"`
	Content ContentRangeDTO `json:"content" validate:"required"`
	Period  PeriodDTO       `json:"period"  validate:"required"`

	Weekdays []int `json:"weekdays" validate:"required,min=1,max=7,dive,min=0,max=6"`

	StudyType     string `json:"study_type"               validate:"required,oneof=weakness strategy"`
	DaysPerWeek   int    `json:"days_per_week,omitempty"  validate:"omitempty,min=2,max=4"`
	PreferredDays []int  `json:"preferred_days,omitempty" validate:"omitempty,dive,min=0,max=6"`

	Cadence CadenceDTO `json:"cadence" validate:"required"`

	TemplateID         *uuid.UUID             `json:"template_id,omitempty"`
	IndividualSchedule *IndividualScheduleDTO `json:"individual_schedule,omitempty"`

	// AllowSparse defaults to true (over-allocation degrades to a warning);
	// send false to make it a hard error instead.
	AllowSparse     *bool `json:"allow_sparse,omitempty"`
	MaxPreviewPlans int   `json:"max_preview_plans,omitempty" validate:"omitempty,min=1,max=100"`
}

// CreatePlanGroupRequest commits a previewed configuration. Same shape as
// the preview request; the engine reruns, so preview and commit can never
// drift apart.
type CreatePlanGroupRequest struct {
	PreviewPlanGroupRequest
	IsTemplate bool `json:"is_template,omitempty"`
}

type UpdatePlanGroupStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active paused completed cancelled"`
}

// BatchPlanItem is one generation target. StudentID overrides the caller's
// own id so an admin batch can generate plans for invited students; items
// without it fall back to the authenticated student.
type BatchPlanItem struct {
	StudentID *uuid.UUID `json:"student_id,omitempty"`
	CreatePlanGroupRequest
}

type BatchGenerateRequest struct {
	Items []BatchPlanItem `json:"items" validate:"required,min=1,max=50,dive"`
}

/* =========================
   Response DTOs
   ========================= */

type CapacityResponse struct {
	Current   int  `json:"current"`
	Max       int  `json:"max"`
	Remaining int  `json:"remaining"`
	CanAdd    bool `json:"can_add"`
}

type BatchItemResult struct {
	Index       int        `json:"index"`
	StudentID   uuid.UUID  `json:"student_id"`
	PlanGroupID *uuid.UUID `json:"plan_group_id,omitempty"`
	Error       string     `json:"error,omitempty"`
}

type BatchGenerateResponse struct {
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Results   []BatchItemResult `json:"results"`
}

/* =========================
   Conversion helpers
   ========================= */

const dateLayout = "2006-01-02"

func (p PeriodDTO) ToPeriod() (schedule.Period, error) {
	start, err := time.Parse(dateLayout, p.Start)
	if err != nil {
		return schedule.Period{}, err
	}
	end, err := time.Parse(dateLayout, p.End)
	if err != nil {
		return schedule.Period{}, err
	}
	return schedule.Period{Start: start, End: end}, nil
}

func (c ContentRangeDTO) ToRange() schedule.ContentRange {
	return schedule.ContentRange{
		Unit:  schedule.ContentUnit(c.Unit),
		Start: c.Start,
		End:   c.End,
	}
}

func (c CadenceDTO) ToRule() schedule.CadenceRule {
	return schedule.CadenceRule{
		Kind:       schedule.CadenceKind(c.Kind),
		StudyDays:  c.StudyDays,
		ReviewDays: c.ReviewDays,
		EveryNDays: c.EveryNDays,
	}
}

func ToWeekdays(vals []int) []time.Weekday {
	out := make([]time.Weekday, len(vals))
	for i, v := range vals {
		out[i] = time.Weekday(v)
	}
	return out
}
