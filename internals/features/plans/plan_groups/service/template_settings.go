// internals/features/plans/plan_groups/service/template_settings.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyku_backend/internals/constants"
	academyModel "studyku_backend/internals/features/plans/academies/model"
	exclusionService "studyku_backend/internals/features/plans/exclusions/service"
	"studyku_backend/internals/features/plans/plan_groups/dto"
	"studyku_backend/internals/features/plans/plan_groups/model"
	"studyku_backend/internals/features/plans/schedule"
)

var ErrTemplateNotFound = errors.New("template plan group not found")

/* =========================
   Stored scheduler options
   ========================= */

// SchedulerOptions is the JSON blob persisted on a plan group. Template
// groups carry defaults here that child groups inherit.
type SchedulerOptions struct {
	StudyWindowStart string `json:"study_window_start,omitempty"`
	StudyWindowEnd   string `json:"study_window_end,omitempty"`
	PreferredDays    []int  `json:"preferred_days,omitempty"`
	AllowSparse      bool   `json:"allow_sparse,omitempty"`
}

/* =========================
   Effective config resolver
   ========================= */

// ConfigResolver merges template settings, the student's stored academy
// schedules / exclusions, and per-request overrides into one explicit
// schedule.EffectiveConfig. Resolution is a separate step so the engine
// never reads optional fields.
type ConfigResolver struct {
	DB         *gorm.DB
	Exclusions *exclusionService.Resolver
}

func NewConfigResolver(db *gorm.DB) *ConfigResolver {
	return &ConfigResolver{DB: db, Exclusions: exclusionService.NewResolver(db)}
}

func (r *ConfigResolver) Resolve(ctx context.Context, studentID uuid.UUID, req dto.PreviewPlanGroupRequest) (schedule.EffectiveConfig, error) {
	var cfg schedule.EffectiveConfig

	period, err := req.Period.ToPeriod()
	if err != nil {
		return cfg, err
	}

	cfg = schedule.EffectiveConfig{
		Period:               period,
		Weekdays:             dto.ToWeekdays(req.Weekdays),
		StudyType:            schedule.StudyType(req.StudyType),
		DaysPerWeek:          req.DaysPerWeek,
		PreferredDays:        dto.ToWeekdays(req.PreferredDays),
		Cadence:              req.Cadence.ToRule(),
		StudyWindow:          schedule.TimeRange{Start: constants.DefaultStudyWindowStart, End: constants.DefaultStudyWindowEnd},
		MinutesPerUnit:       constants.StudyMinutesPerUnit,
		ReviewMinutesPerUnit: constants.ReviewMinutesPerUnit,
		AllowSparse:          true,
		MaxPreviewPlans:      req.MaxPreviewPlans,
	}
	if cfg.MaxPreviewPlans <= 0 {
		cfg.MaxPreviewPlans = constants.DefaultMaxPreviewPlans
	}

	// template defaults fill gaps the request left open
	if req.TemplateID != nil {
		if err := r.applyTemplate(ctx, studentID, *req.TemplateID, &cfg); err != nil {
			return cfg, err
		}
	}
	// an explicit request value beats both the default and the template
	if req.AllowSparse != nil {
		cfg.AllowSparse = *req.AllowSparse
	}

	// stored weekly commitments
	ignoreAcademy := req.IndividualSchedule != nil && req.IndividualSchedule.IgnoreAcademy
	if !ignoreAcademy {
		academies, blocks, err := r.loadCommitments(ctx, studentID)
		if err != nil {
			return cfg, err
		}
		cfg.Academies = academies
		cfg.NonStudyBlocks = blocks
	}

	// stored exclusions plus ad-hoc dates from the request
	var extra []time.Time
	if req.IndividualSchedule != nil {
		for _, raw := range req.IndividualSchedule.ExtraExclusion {
			d, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return cfg, err
			}
			extra = append(extra, d)
		}
		if w := req.IndividualSchedule.StudyWindow; w != nil {
			cfg.StudyWindow = schedule.TimeRange{Start: w.Start, End: w.End}
		}
	}
	exclusions, err := r.Exclusions.Resolve(ctx, studentID, req.TemplateID, period, extra)
	if err != nil {
		return cfg, err
	}
	cfg.Exclusions = exclusions

	return cfg, nil
}

// applyTemplate copies scheduler options from a template group the student
// owns. Request values stay untouched; only unset fields inherit.
func (r *ConfigResolver) applyTemplate(ctx context.Context, studentID, templateID uuid.UUID, cfg *schedule.EffectiveConfig) error {
	var tpl model.PlanGroupModel
	err := r.DB.WithContext(ctx).
		Where("plan_group_id = ? AND plan_group_student_id = ? AND plan_group_is_template = true", templateID, studentID).
		First(&tpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}

	if len(tpl.PlanGroupSchedulerOptions) == 0 {
		return nil
	}
	var opts SchedulerOptions
	if err := sonic.Unmarshal(tpl.PlanGroupSchedulerOptions, &opts); err != nil {
		return err
	}

	if opts.StudyWindowStart != "" && opts.StudyWindowEnd != "" {
		cfg.StudyWindow = schedule.TimeRange{Start: opts.StudyWindowStart, End: opts.StudyWindowEnd}
	}
	if len(cfg.PreferredDays) == 0 && len(opts.PreferredDays) > 0 {
		days := make([]int64, len(opts.PreferredDays))
		for i, v := range opts.PreferredDays {
			days[i] = int64(v)
		}
		cfg.PreferredDays = schedule.IntsToWeekdays(days)
	}
	if opts.AllowSparse {
		cfg.AllowSparse = true
	}
	return nil
}

func (r *ConfigResolver) loadCommitments(ctx context.Context, studentID uuid.UUID) ([]schedule.AcademySchedule, []schedule.TimeBlock, error) {
	var academyRows []academyModel.AcademyScheduleModel
	if err := r.DB.WithContext(ctx).
		Where("academy_schedule_student_id = ?", studentID).
		Find(&academyRows).Error; err != nil {
		return nil, nil, err
	}

	var blockRows []academyModel.NonStudyBlockModel
	if err := r.DB.WithContext(ctx).
		Where("non_study_block_student_id = ?", studentID).
		Find(&blockRows).Error; err != nil {
		return nil, nil, err
	}

	academies := make([]schedule.AcademySchedule, 0, len(academyRows))
	for _, row := range academyRows {
		academies = append(academies, schedule.AcademySchedule{
			DayOfWeek:     time.Weekday(row.AcademyScheduleDayOfWeek),
			Start:         row.AcademyScheduleStartTime,
			End:           row.AcademyScheduleEndTime,
			AcademyName:   row.AcademyScheduleName,
			Subject:       row.AcademyScheduleSubject,
			TravelMinutes: row.AcademyScheduleTravelMinutes,
		})
	}
	blocks := make([]schedule.TimeBlock, 0, len(blockRows))
	for _, row := range blockRows {
		blocks = append(blocks, schedule.TimeBlock{
			DayOfWeek: time.Weekday(row.NonStudyBlockDayOfWeek),
			Start:     row.NonStudyBlockStartTime,
			End:       row.NonStudyBlockEndTime,
			Label:     row.NonStudyBlockLabel,
		})
	}
	return academies, blocks, nil
}
