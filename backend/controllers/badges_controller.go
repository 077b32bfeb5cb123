package controllers

import (
	"github.com/gofiber/fiber/v2"

	"revreview/backend/badges"
	"revreview/backend/catalog"
	"revreview/backend/middleware"
	"revreview/backend/storage"
	"revreview/backend/utils"
)

// BadgesController serves the achievement page.
type BadgesController struct {
	Store   *storage.Store
	Catalog *catalog.Catalog
}

func NewBadgesController(store *storage.Store, cat *catalog.Catalog) *BadgesController {
	return &BadgesController{Store: store, Catalog: cat}
}

// List godoc
// @Summary Every badge with earned flag and progress toward its target
// @Tags badges
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /badges [get]
func (bc *BadgesController) List(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	earned := bc.Store.EarnedBadges(userID)
	statuses := badges.Statuses(earned, collectStats(bc.Store, bc.Catalog, userID))

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"badges": statuses,
		"earned": earned,
		"total":  len(statuses),
	})
}
