// file: internals/helpers/auth/student_id.go
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetStudentIDFromToken returns the authenticated student id stashed in
// Locals by the auth middleware.
func GetStudentIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("user_id")
	if raw == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id not found in token")
	}
	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user_id in token")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user_id in token")
	}
}
