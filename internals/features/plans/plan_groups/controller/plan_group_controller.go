// internals/features/plans/plan_groups/controller/plan_group_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyku_backend/internals/features/plans/plan_groups/dto"
	"studyku_backend/internals/features/plans/plan_groups/model"
	"studyku_backend/internals/features/plans/plan_groups/service"
	"studyku_backend/internals/features/plans/schedule"
	helper "studyku_backend/internals/helpers"
	authHelper "studyku_backend/internals/helpers/auth"
)

type PlanGroupController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Engine   *service.Materializer
}

func NewPlanGroupController(db *gorm.DB) *PlanGroupController {
	return &PlanGroupController{
		DB:       db,
		Validate: validator.New(),
		Engine:   service.NewMaterializer(db),
	}
}

// engineError maps typed engine failures onto HTTP statuses.
func engineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, schedule.ErrInvalidRange):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, schedule.ErrOverAllocation):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, schedule.ErrEmptyCalendar),
		errors.Is(err, schedule.ErrInsufficientCapacity):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, schedule.ErrCapacityExceeded):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrTemplateNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	default:
		log.Println("[ERROR] plan group engine:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to build schedule")
	}
}

/* =========================
   POST /plan-groups/preview
   ========================= */

func (ctrl *PlanGroupController) Preview(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.PreviewPlanGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := ctrl.Engine.Preview(c.Context(), studentID, req)
	if err != nil {
		return engineError(c, err)
	}
	return helper.JsonOK(c, "preview generated", res)
}

/* =========================
   POST /plan-groups
   ========================= */

func (ctrl *PlanGroupController) Create(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreatePlanGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	group, err := ctrl.Engine.Commit(c.Context(), studentID, req)
	if err != nil {
		return engineError(c, err)
	}
	return helper.JsonCreated(c, "✅ plan group created", group)
}

/* =========================
   GET /plan-groups
   ========================= */

func (ctrl *PlanGroupController) List(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.Context()).
		Model(&model.PlanGroupModel{}).
		Where("plan_group_student_id = ?", studentID)

	if status := c.Query("status"); status != "" {
		q = q.Where("plan_group_status = ?", status)
	}
	if c.Query("templates") == "true" {
		q = q.Where("plan_group_is_template = true")
	} else {
		q = q.Where("plan_group_is_template = false")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count plan groups")
	}

	var groups []model.PlanGroupModel
	if err := q.
		Order("plan_group_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&groups).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list plan groups")
	}

	return helper.JsonList(c, "", groups, helper.BuildPagination(paging, total))
}

/* =========================
   GET /plan-groups/:id
   ========================= */

func (ctrl *PlanGroupController) GetByID(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid plan group id")
	}

	var group model.PlanGroupModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("plan_group_id = ? AND plan_group_student_id = ?", groupID, studentID).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "plan group not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load plan group")
	}

	var units []model.PlanUnitModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("plan_unit_group_id = ?", groupID).
		Order("plan_unit_date ASC, plan_unit_block_index ASC").
		Find(&units).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load plan units")
	}

	return helper.JsonOK(c, "", fiber.Map{
		"group": group,
		"units": units,
	})
}

/* =========================
   PATCH /plan-groups/:id/status
   ========================= */

func (ctrl *PlanGroupController) UpdateStatus(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid plan group id")
	}

	var req dto.UpdatePlanGroupStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	group, err := service.UpdateStatus(c.Context(), ctrl.DB, studentID, groupID, req.Status)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrGroupNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTerminalStatusLocked),
		errors.Is(err, service.ErrInvalidTransition):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update status")
	}

	return helper.JsonUpdated(c, "status updated", group)
}

/* =========================
   DELETE /plan-groups/:id
   ========================= */

func (ctrl *PlanGroupController) Delete(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid plan group id")
	}

	if err := service.DeleteGroup(c.Context(), ctrl.DB, studentID, groupID); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete plan group")
	}
	return helper.JsonDeleted(c, "plan group deleted", fiber.Map{"plan_group_id": groupID})
}

/* =========================
   PATCH /plan-groups/:id/archive
   ========================= */

// Archive toggles the archived flag on a template group. Regular groups go
// through the status lifecycle instead.
func (ctrl *PlanGroupController) Archive(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid plan group id")
	}

	var group model.PlanGroupModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("plan_group_id = ? AND plan_group_student_id = ?", groupID, studentID).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "plan group not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load plan group")
	}
	if !group.PlanGroupIsTemplate {
		return helper.JsonError(c, fiber.StatusConflict, "only template groups can be archived")
	}

	group.PlanGroupIsArchived = !group.PlanGroupIsArchived
	if err := ctrl.DB.WithContext(c.Context()).
		Model(&group).
		Update("plan_group_is_archived", group.PlanGroupIsArchived).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to archive plan group")
	}
	return helper.JsonUpdated(c, "archive flag updated", group)
}

/* =========================
   GET /plan-groups/capacity
   ========================= */

func (ctrl *PlanGroupController) Capacity(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	info, err := service.CheckCapacity(c.Context(), ctrl.DB, studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to check capacity")
	}
	return helper.JsonOK(c, "", dto.CapacityResponse{
		Current:   info.Current,
		Max:       info.Max,
		Remaining: info.Remaining,
		CanAdd:    info.CanAdd,
	})
}

/* =========================
   POST /plan-groups/batch
   ========================= */

func (ctrl *PlanGroupController) BatchGenerate(c *fiber.Ctx) error {
	studentID, err := authHelper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BatchGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	resp := service.RunBatch(c.Context(), ctrl.Engine, studentID, req.Items)
	return helper.JsonOK(c, "batch processed", resp)
}
