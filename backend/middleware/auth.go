package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"revreview/backend/config"
	"revreview/backend/models"
	"revreview/backend/utils"
)

// AuthMiddleware rejects requests without a valid token and stores the
// authenticated user ID in locals under "userID".
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		c.Locals("userID", userID)
		return c.Next()
	}
}

// TeacherMiddleware additionally requires the teacher role. Used for the
// class analytics endpoints.
func TeacherMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		if user.Role != "teacher" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden - Teacher access required",
			})
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

// UserID reads the authenticated user ID set by AuthMiddleware.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
