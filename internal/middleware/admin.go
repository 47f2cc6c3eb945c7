package middleware

import (
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/dto"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/models"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired gates a route on the resolved user's role. It must run
// after UserRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if user.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		return c.Next()
	}
}
