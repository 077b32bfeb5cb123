package controllers

import (
	"github.com/gofiber/fiber/v2"

	"revreview/backend/catalog"
	"revreview/backend/utils"
)

// CatalogController serves the read-only curriculum content.
type CatalogController struct {
	Catalog *catalog.Catalog
}

func NewCatalogController(cat *catalog.Catalog) *CatalogController {
	return &CatalogController{Catalog: cat}
}

// Vocabulary godoc
// @Summary List all vocabulary terms
// @Tags catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /catalog/vocabulary [get]
func (cc *CatalogController) Vocabulary(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"terms":      cc.Catalog.Vocabulary(),
		"categories": cc.Catalog.Categories(),
		"total":      cc.Catalog.TotalVocab(),
	})
}

// Questions godoc
// @Summary List the multiple-choice question bank
// @Description Answer keys and explanations are never included
// @Tags catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /catalog/questions [get]
func (cc *CatalogController) Questions(c *fiber.Ctx) error {
	topic := c.Query("topic")
	if topic != "" {
		qs, ok := cc.Catalog.QuestionsByTopic()[topic]
		if !ok {
			return utils.NotFound(c, "Unknown topic")
		}
		return utils.Success(c, fiber.StatusOK, fiber.Map{
			"questions": stripAnswerKeys(qs),
			"total":     len(qs),
		})
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"questions": stripAnswerKeys(cc.Catalog.Questions()),
		"topics":    cc.Catalog.Topics(),
		"total":     cc.Catalog.TotalQuestions(),
	})
}

// TimelineEvents godoc
// @Summary List timeline events in chronological order
// @Tags catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /catalog/timeline [get]
func (cc *CatalogController) TimelineEvents(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"events": cc.Catalog.TimelineEvents(),
	})
}

// ShortAnswers godoc
// @Summary List short-answer writing prompts
// @Tags catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /catalog/shortanswers [get]
func (cc *CatalogController) ShortAnswers(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"prompts": cc.Catalog.ShortAnswers(),
	})
}
