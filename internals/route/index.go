// internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	routeDetails "studyku_backend/internals/route/details"
)

// SetupRoutes mounts every route group on the app.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	routeDetails.PlanRoutes(app, db)
}
