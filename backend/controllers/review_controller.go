package controllers

import (
	"github.com/gofiber/fiber/v2"

	"revreview/backend/catalog"
	"revreview/backend/middleware"
	"revreview/backend/review"
	"revreview/backend/storage"
	"revreview/backend/utils"
)

// ReviewController builds focused study sessions from weak areas.
type ReviewController struct {
	Store   *storage.Store
	Catalog *catalog.Catalog
}

func NewReviewController(store *storage.Store, cat *catalog.Catalog) *ReviewController {
	return &ReviewController{Store: store, Catalog: cat}
}

// Analysis godoc
// @Summary Weak-area analysis
// @Description Unknown terms and topics under 70% accuracy
// @Tags review
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /review/analysis [get]
func (rc *ReviewController) Analysis(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	practice := rc.Store.PracticeProgress(userID)
	performances := review.TopicPerformances(rc.Catalog.Questions(), practice)
	unknown := review.UnknownTerms(rc.Catalog.Vocabulary(), rc.Store.VocabMastery(userID))

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"unknownTerms": unknown,
		"topics":       performances,
		"weakTopics":   review.WeakTopics(performances),
	})
}

// Focused godoc
// @Summary Build a focused study session
// @Description Up to ten unknown terms and ten unmastered questions from weak topics
// @Tags review
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /review/focused [get]
func (rc *ReviewController) Focused(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	set := review.BuildFocusedSet(
		rc.Catalog.Vocabulary(),
		rc.Catalog.Questions(),
		rc.Store.VocabMastery(userID),
		rc.Store.PracticeProgress(userID),
	)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"vocabulary": set.Vocabulary,
		"questions":  stripAnswerKeys(set.Questions),
		"weakTopics": set.WeakTopics,
	})
}
