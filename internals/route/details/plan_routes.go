// internals/route/details/plan_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academyController "studyku_backend/internals/features/plans/academies/controller"
	exclusionController "studyku_backend/internals/features/plans/exclusions/controller"
	planGroupController "studyku_backend/internals/features/plans/plan_groups/controller"
	"studyku_backend/internals/middlewares"
	authMiddleware "studyku_backend/internals/middlewares/auth"
)

// PlanRoutes mounts the authenticated study-plan API under /api/u.
func PlanRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api/u", authMiddleware.AuthMiddleware())

	// 🗓️ plan groups
	planGroupCtrl := planGroupController.NewPlanGroupController(db)
	planGroups := api.Group("/plan-groups")
	planGroups.Post("/preview", planGroupCtrl.Preview)
	planGroups.Post("/batch", middlewares.BatchRateLimiter(), planGroupCtrl.BatchGenerate)
	planGroups.Get("/capacity", planGroupCtrl.Capacity)
	planGroups.Post("/", planGroupCtrl.Create)
	planGroups.Get("/", planGroupCtrl.List)
	planGroups.Get("/:id", planGroupCtrl.GetByID)
	planGroups.Patch("/:id/status", planGroupCtrl.UpdateStatus)
	planGroups.Patch("/:id/archive", planGroupCtrl.Archive)
	planGroups.Delete("/:id", planGroupCtrl.Delete)

	// 🚫 exclusions (non-study dates)
	exclusionCtrl := exclusionController.NewExclusionController(db)
	exclusions := api.Group("/exclusions")
	exclusions.Post("/", exclusionCtrl.Create)
	exclusions.Get("/", exclusionCtrl.List)
	exclusions.Put("/:id", exclusionCtrl.Update)
	exclusions.Delete("/:id", exclusionCtrl.Delete)

	// 🏫 academy schedules + non-study blocks
	academyCtrl := academyController.NewAcademyController(db)
	academies := api.Group("/academy-schedules")
	academies.Post("/", academyCtrl.Create)
	academies.Get("/", academyCtrl.List)
	academies.Put("/:id", academyCtrl.Update)
	academies.Delete("/:id", academyCtrl.Delete)

	blocks := api.Group("/non-study-blocks")
	blocks.Post("/", academyCtrl.CreateBlock)
	blocks.Get("/", academyCtrl.ListBlocks)
	blocks.Delete("/:id", academyCtrl.DeleteBlock)
}
