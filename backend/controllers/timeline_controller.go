package controllers

import (
	"github.com/gofiber/fiber/v2"

	"revreview/backend/catalog"
	"revreview/backend/middleware"
	"revreview/backend/storage"
	"revreview/backend/timeline"
	"revreview/backend/utils"
)

// TimelineController runs the drag-and-drop ordering challenge.
type TimelineController struct {
	Store   *storage.Store
	Catalog *catalog.Catalog
}

func NewTimelineController(store *storage.Store, cat *catalog.Catalog) *TimelineController {
	return &TimelineController{Store: store, Catalog: cat}
}

// Shuffled godoc
// @Summary Fetch a shuffled event pool and the user's timeline stats
// @Tags timeline
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /timeline/shuffled [get]
func (tc *TimelineController) Shuffled(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"events":   tc.Catalog.ShuffledTimelineEvents(),
		"slots":    len(tc.Catalog.TimelineEvents()),
		"progress": tc.Store.Timeline(middleware.UserID(c)),
	})
}

// Check godoc
// @Summary Grade a timeline placement
// @Description Scores the placement, updates best score and perfect count
// @Tags timeline
// @Accept json
// @Produce json
// @Param request body object true "Event IDs by slot order"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /timeline/check [post]
func (tc *TimelineController) Check(c *fiber.Ctx) error {
	type CheckInput struct {
		Placements []int `json:"placements"`
	}

	var input CheckInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	total := len(tc.Catalog.TimelineEvents())
	if len(input.Placements) > total {
		return utils.BadRequest(c, "More placements than timeline slots")
	}

	userID := middleware.UserID(c)
	result := timeline.Grade(input.Placements, total)
	progress := timeline.Apply(tc.Store.Timeline(userID), result)
	if err := tc.Store.SaveTimeline(userID, progress); err != nil {
		return utils.InternalServerError(c, "Could not save progress")
	}

	newBadges, err := awardBadges(tc.Store, tc.Catalog, userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not save badges")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"result":    result,
		"progress":  progress,
		"newBadges": newBadges,
	})
}
