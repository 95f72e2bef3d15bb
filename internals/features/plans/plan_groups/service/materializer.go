// internals/features/plans/plan_groups/service/materializer.go
package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"studyku_backend/internals/constants"
	"studyku_backend/internals/features/plans/plan_groups/dto"
	"studyku_backend/internals/features/plans/plan_groups/model"
	"studyku_backend/internals/features/plans/schedule"
)

/* =========================
   Materializer
   ========================= */

type Materializer struct {
	DB       *gorm.DB
	Resolver *ConfigResolver
}

func NewMaterializer(db *gorm.DB) *Materializer {
	return &Materializer{DB: db, Resolver: NewConfigResolver(db)}
}

// Preview resolves the effective config, runs the engine, and returns the
// capped preview. Nothing is written.
func (m *Materializer) Preview(ctx context.Context, studentID uuid.UUID, req dto.PreviewPlanGroupRequest) (*schedule.PreviewResult, error) {
	cfg, err := m.Resolver.Resolve(ctx, studentID, req)
	if err != nil {
		return nil, err
	}
	sched, err := schedule.Build(cfg, req.Content.ToRange())
	if err != nil {
		return nil, err
	}
	return sched.Preview(cfg, req.Content.ToRange()), nil
}

// Commit reruns the engine and persists the group with every plan unit in
// one transaction. The capacity ceiling is re-checked under FOR UPDATE so
// two concurrent commits cannot both slip under it.
func (m *Materializer) Commit(ctx context.Context, studentID uuid.UUID, req dto.CreatePlanGroupRequest) (*model.PlanGroupModel, error) {
	cfg, err := m.Resolver.Resolve(ctx, studentID, req.PreviewPlanGroupRequest)
	if err != nil {
		return nil, err
	}
	rng := req.Content.ToRange()
	sched, err := schedule.Build(cfg, rng)
	if err != nil {
		return nil, err
	}

	group, err := buildGroupRow(studentID, req, cfg, sched, rng)
	if err != nil {
		return nil, err
	}

	err = m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize commits per student, then recount. Row locks cannot
		// close this race: a concurrent insert is a phantom the recount
		// never sees, and at zero groups there is no row to lock.
		if !req.IsTemplate {
			if err := lockStudent(tx, studentID); err != nil {
				return err
			}
			var live int64
			if err := tx.
				Model(&model.PlanGroupModel{}).
				Where("plan_group_student_id = ?", studentID).
				Where("plan_group_is_template = ?", false).
				Where("plan_group_status IN ?", []string{
					model.PlanGroupStatusDraft,
					model.PlanGroupStatusActive,
					model.PlanGroupStatusPaused,
				}).
				Count(&live).Error; err != nil {
				return err
			}
			if live >= constants.MaxContentPlanGroups {
				return schedule.ErrCapacityExceeded
			}
		}

		if err := tx.Create(group).Error; err != nil {
			return err
		}
		if req.IsTemplate {
			return nil // templates carry settings only, no units
		}

		blockIdx, err := nextBlockIndexes(tx, studentID, sched.Slots)
		if err != nil {
			return err
		}

		units := make([]model.PlanUnitModel, 0, len(sched.Slots))
		for _, slot := range sched.Slots {
			key := schedule.FormatDate(slot.Date)
			units = append(units, model.PlanUnitModel{
				PlanUnitGroupID:         group.PlanGroupID,
				PlanUnitStudentID:       studentID,
				PlanUnitDate:            slot.Date,
				PlanUnitBlockIndex:      blockIdx[key],
				PlanUnitDayType:         string(slot.Role),
				PlanUnitContentName:     req.Content.Name,
				PlanUnitContentUnit:     req.Content.Unit,
				PlanUnitRangeStart:      slot.RangeStart,
				PlanUnitRangeEnd:        slot.RangeEnd,
				PlanUnitDurationMinutes: schedule.SlotDuration(slot, cfg.MinutesPerUnit, cfg.ReviewMinutesPerUnit),
				PlanUnitStatus:          model.PlanUnitStatusPending,
			})
			blockIdx[key]++
		}
		return tx.CreateInBatches(units, 100).Error
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// lockStudent takes a transaction-scoped advisory lock keyed on the student
// so concurrent commits for the same student serialize before the capacity
// recount. Advisory locks are Postgres-only; other dialects (the test
// backend) serialize at the connection level instead.
func lockStudent(tx *gorm.DB, studentID uuid.UUID) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", studentID.String()).Error
}

// nextBlockIndexes returns, per date, the number of live units the student
// already has on that date. New units stack after the existing ones.
func nextBlockIndexes(tx *gorm.DB, studentID uuid.UUID, slots []schedule.Slot) (map[string]int, error) {
	if len(slots) == 0 {
		return map[string]int{}, nil
	}
	first := slots[0].Date
	last := slots[len(slots)-1].Date

	type dateCount struct {
		Date  time.Time `gorm:"column:plan_unit_date"`
		Count int       `gorm:"column:cnt"`
	}
	var rows []dateCount
	err := tx.Model(&model.PlanUnitModel{}).
		Select("plan_unit_date, COUNT(*) AS cnt").
		Where("plan_unit_student_id = ?", studentID).
		Where("plan_unit_date BETWEEN ? AND ?", first, last).
		Group("plan_unit_date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[schedule.FormatDate(schedule.DateOnly(r.Date))] = r.Count
	}
	return out, nil
}

func buildGroupRow(studentID uuid.UUID, req dto.CreatePlanGroupRequest, cfg schedule.EffectiveConfig, sched *schedule.Schedule, rng schedule.ContentRange) (*model.PlanGroupModel, error) {
	cadenceJSON, err := sonic.Marshal(req.Cadence)
	if err != nil {
		return nil, err
	}
	opts := SchedulerOptions{
		StudyWindowStart: cfg.StudyWindow.Start,
		StudyWindowEnd:   cfg.StudyWindow.End,
		PreferredDays:    req.PreferredDays,
		AllowSparse:      cfg.AllowSparse,
	}
	optsJSON, err := sonic.Marshal(opts)
	if err != nil {
		return nil, err
	}

	daily := 0
	if sched.StudyDays > 0 {
		daily = rng.Total() / sched.StudyDays
		if daily == 0 {
			daily = 1
		}
	}

	weekdays := make([]int64, len(req.Weekdays))
	for i, v := range req.Weekdays {
		weekdays[i] = int64(v)
	}

	return &model.PlanGroupModel{
		PlanGroupStudentID:        studentID,
		PlanGroupName:             req.Name,
		PlanGroupStatus:           model.PlanGroupStatusDraft,
		PlanGroupContentName:      req.Content.Name,
		PlanGroupContentUnit:      req.Content.Unit,
		PlanGroupContentStart:     req.Content.Start,
		PlanGroupContentEnd:       req.Content.End,
		PlanGroupPeriodStart:      schedule.DateOnly(cfg.Period.Start),
		PlanGroupPeriodEnd:        schedule.DateOnly(cfg.Period.End),
		PlanGroupWeekdays:         weekdays,
		PlanGroupStudyType:        req.StudyType,
		PlanGroupDaysPerWeek:      req.DaysPerWeek,
		PlanGroupCadence:          datatypes.JSON(cadenceJSON),
		PlanGroupSchedulerOptions: datatypes.JSON(optsJSON),
		PlanGroupIsTemplate:       req.IsTemplate,
		PlanGroupTemplateID:       req.TemplateID,
		PlanGroupTotalPlans:       len(sched.Slots),
		PlanGroupStudyDays:        sched.StudyDays,
		PlanGroupReviewDays:       sched.ReviewDays,
		PlanGroupDailyAmount:      daily,
	}, nil
}
