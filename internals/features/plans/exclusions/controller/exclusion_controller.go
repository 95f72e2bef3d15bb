// internals/features/plans/exclusions/controller/exclusion_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyku_backend/internals/features/plans/exclusions/dto"
	"studyku_backend/internals/features/plans/exclusions/model"
	helper "studyku_backend/internals/helpers"
	authHelper "studyku_backend/internals/helpers/auth"
)

type ExclusionController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewExclusionController(db *gorm.DB) *ExclusionController {
	return &ExclusionController{DB: db, Validate: validator.New()}
}

const dateLayout = "2006-01-02"

/* =========================
   POST /exclusions
   ========================= */

func (ctrl *ExclusionController) Create(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateExclusionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	row := model.PlanExclusionModel{
		PlanExclusionStudentID: studentID,
		PlanExclusionGroupID:   req.GroupID,
		PlanExclusionDate:      date,
		PlanExclusionKind:      req.Kind,
		PlanExclusionReason:    req.Reason,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create exclusion")
	}
	return helper.JsonCreated(c, "exclusion created", row)
}

/* =========================
   GET /exclusions
   ========================= */

func (ctrl *ExclusionController) List(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	q := ctrl.DB.WithContext(c.Context()).
		Where("plan_exclusion_student_id = ?", studentID)

	if from := c.Query("from"); from != "" {
		if d, err := time.Parse(dateLayout, from); err == nil {
			q = q.Where("plan_exclusion_date >= ?", d)
		}
	}
	if to := c.Query("to"); to != "" {
		if d, err := time.Parse(dateLayout, to); err == nil {
			q = q.Where("plan_exclusion_date <= ?", d)
		}
	}

	var rows []model.PlanExclusionModel
	if err := q.Order("plan_exclusion_date ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list exclusions")
	}
	return helper.JsonOK(c, "", rows)
}

/* =========================
   PUT /exclusions/:id
   ========================= */

func (ctrl *ExclusionController) Update(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}
	exclusionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid exclusion id")
	}

	var req dto.UpdateExclusionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var row model.PlanExclusionModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("plan_exclusion_id = ? AND plan_exclusion_student_id = ?", exclusionID, studentID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "exclusion not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load exclusion")
	}

	updates := map[string]any{}
	if req.Date != nil {
		d, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
		updates["plan_exclusion_date"] = d
	}
	if req.Kind != nil {
		updates["plan_exclusion_kind"] = *req.Kind
	}
	if req.Reason != nil {
		updates["plan_exclusion_reason"] = *req.Reason
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "nothing to update", row)
	}

	if err := ctrl.DB.WithContext(c.Context()).
		Model(&row).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update exclusion")
	}
	return helper.JsonUpdated(c, "exclusion updated", row)
}

/* =========================
   DELETE /exclusions/:id
   ========================= */

func (ctrl *ExclusionController) Delete(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}
	exclusionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid exclusion id")
	}

	res := ctrl.DB.WithContext(c.Context()).
		Where("plan_exclusion_id = ? AND plan_exclusion_student_id = ?", exclusionID, studentID).
		Delete(&model.PlanExclusionModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete exclusion")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "exclusion not found")
	}
	return helper.JsonDeleted(c, "exclusion deleted", fiber.Map{"plan_exclusion_id": exclusionID})
}
