// internals/features/plans/academies/controller/academy_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyku_backend/internals/features/plans/academies/dto"
	"studyku_backend/internals/features/plans/academies/model"
	helper "studyku_backend/internals/helpers"
	authHelper "studyku_backend/internals/helpers/auth"
)

type AcademyController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAcademyController(db *gorm.DB) *AcademyController {
	return &AcademyController{DB: db, Validate: validator.New()}
}

/* =========================
   POST /academy-schedules
   ========================= */

func (ctrl *AcademyController) Create(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateAcademyScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.EndTime <= req.StartTime {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_time must be after start_time")
	}

	row := model.AcademyScheduleModel{
		AcademyScheduleStudentID:     studentID,
		AcademyScheduleName:          req.Name,
		AcademyScheduleSubject:       req.Subject,
		AcademyScheduleDayOfWeek:     req.DayOfWeek,
		AcademyScheduleStartTime:     req.StartTime,
		AcademyScheduleEndTime:       req.EndTime,
		AcademyScheduleTravelMinutes: req.TravelMinutes,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create academy schedule")
	}
	return helper.JsonCreated(c, "academy schedule created", row)
}

/* =========================
   GET /academy-schedules
   ========================= */

func (ctrl *AcademyController) List(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []model.AcademyScheduleModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("academy_schedule_student_id = ?", studentID).
		Order("academy_schedule_day_of_week ASC, academy_schedule_start_time ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list academy schedules")
	}
	return helper.JsonOK(c, "", rows)
}

/* =========================
   PUT /academy-schedules/:id
   ========================= */

func (ctrl *AcademyController) Update(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}
	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid academy schedule id")
	}

	var req dto.UpdateAcademyScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var row model.AcademyScheduleModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("academy_schedule_id = ? AND academy_schedule_student_id = ?", scheduleID, studentID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "academy schedule not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load academy schedule")
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["academy_schedule_name"] = *req.Name
	}
	if req.Subject != nil {
		updates["academy_schedule_subject"] = *req.Subject
	}
	if req.DayOfWeek != nil {
		updates["academy_schedule_day_of_week"] = *req.DayOfWeek
	}
	if req.StartTime != nil {
		updates["academy_schedule_start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		updates["academy_schedule_end_time"] = *req.EndTime
	}
	if req.TravelMinutes != nil {
		updates["academy_schedule_travel_minutes"] = *req.TravelMinutes
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "nothing to update", row)
	}

	if err := ctrl.DB.WithContext(c.Context()).
		Model(&row).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update academy schedule")
	}
	return helper.JsonUpdated(c, "academy schedule updated", row)
}

/* =========================
   DELETE /academy-schedules/:id
   ========================= */

func (ctrl *AcademyController) Delete(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}
	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid academy schedule id")
	}

	res := ctrl.DB.WithContext(c.Context()).
		Where("academy_schedule_id = ? AND academy_schedule_student_id = ?", scheduleID, studentID).
		Delete(&model.AcademyScheduleModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete academy schedule")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "academy schedule not found")
	}
	return helper.JsonDeleted(c, "academy schedule deleted", fiber.Map{"academy_schedule_id": scheduleID})
}

/* =========================
   Non-study blocks
   ========================= */

func (ctrl *AcademyController) CreateBlock(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateNonStudyBlockRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.EndTime <= req.StartTime {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_time must be after start_time")
	}

	row := model.NonStudyBlockModel{
		NonStudyBlockStudentID: studentID,
		NonStudyBlockLabel:     req.Label,
		NonStudyBlockDayOfWeek: req.DayOfWeek,
		NonStudyBlockStartTime: req.StartTime,
		NonStudyBlockEndTime:   req.EndTime,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create non-study block")
	}
	return helper.JsonCreated(c, "non-study block created", row)
}

func (ctrl *AcademyController) ListBlocks(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []model.NonStudyBlockModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("non_study_block_student_id = ?", studentID).
		Order("non_study_block_day_of_week ASC, non_study_block_start_time ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list non-study blocks")
	}
	return helper.JsonOK(c, "", rows)
}

func (ctrl *AcademyController) DeleteBlock(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}
	blockID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid non-study block id")
	}

	res := ctrl.DB.WithContext(c.Context()).
		Where("non_study_block_id = ? AND non_study_block_student_id = ?", blockID, studentID).
		Delete(&model.NonStudyBlockModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete non-study block")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "non-study block not found")
	}
	return helper.JsonDeleted(c, "non-study block deleted", fiber.Map{"non_study_block_id": blockID})
}
