package controllers

import (
	"github.com/gofiber/fiber/v2"

	"revreview/backend/catalog"
	"revreview/backend/mastery"
	"revreview/backend/middleware"
	"revreview/backend/storage"
	"revreview/backend/utils"
)

// VocabController manages the known-term set behind the flashcards.
type VocabController struct {
	Store   *storage.Store
	Catalog *catalog.Catalog
}

func NewVocabController(store *storage.Store, cat *catalog.Catalog) *VocabController {
	return &VocabController{Store: store, Catalog: cat}
}

// Known godoc
// @Summary List the user's known terms with mastery percentage
// @Tags vocabulary
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /vocab/known [get]
func (vc *VocabController) Known(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	known := vc.Store.VocabMastery(userID)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"known":   known,
		"total":   vc.Catalog.TotalVocab(),
		"percent": mastery.VocabPercent(len(known), vc.Catalog.TotalVocab()),
	})
}

// MarkKnown godoc
// @Summary Mark a flashcard term as mastered
// @Description The known set only grows; the reset endpoint is the sole clear
// @Tags vocabulary
// @Accept json
// @Produce json
// @Param request body object true "Term to mark"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /vocab/known [post]
func (vc *VocabController) MarkKnown(c *fiber.Ctx) error {
	type MarkInput struct {
		Term string `json:"term"`
	}

	var input MarkInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if _, ok := vc.Catalog.TermByName(input.Term); !ok {
		return utils.NotFound(c, "Term is not part of the curriculum")
	}

	userID := middleware.UserID(c)
	terms, err := vc.Store.MarkTermKnown(userID, input.Term)
	if err != nil {
		return utils.InternalServerError(c, "Could not save progress")
	}

	newBadges, err := awardBadges(vc.Store, vc.Catalog, userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not save badges")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"known":     terms,
		"percent":   mastery.VocabPercent(len(terms), vc.Catalog.TotalVocab()),
		"newBadges": newBadges,
	})
}

// Reset godoc
// @Summary Forget all known terms
// @Tags vocabulary
// @Produce json
// @Success 204
// @Router /vocab/reset [post]
func (vc *VocabController) Reset(c *fiber.Ctx) error {
	if err := vc.Store.ResetVocab(middleware.UserID(c)); err != nil {
		return utils.InternalServerError(c, "Could not reset progress")
	}
	return utils.NoContent(c)
}
