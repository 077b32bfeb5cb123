package controllers

import (
	"github.com/gofiber/fiber/v2"

	"revreview/backend/badges"
	"revreview/backend/catalog"
	"revreview/backend/mastery"
	"revreview/backend/middleware"
	"revreview/backend/models"
	"revreview/backend/review"
	"revreview/backend/storage"
	"revreview/backend/utils"
)

// ProgressController serves the progress dashboard and the export, import
// and reset operations.
type ProgressController struct {
	Store   *storage.Store
	Catalog *catalog.Catalog
}

func NewProgressController(store *storage.Store, cat *catalog.Catalog) *ProgressController {
	return &ProgressController{Store: store, Catalog: cat}
}

// Overview godoc
// @Summary Full progress dashboard
// @Description Mastery breakdown, streak, study time and badge counts
// @Tags progress
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /progress [get]
func (pc *ProgressController) Overview(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	breakdown := mastery.Compute(
		len(pc.Store.VocabMastery(userID)),
		pc.Catalog.TotalVocab(),
		pc.Store.PracticeProgress(userID),
		pc.Store.TestHistory(userID),
	)
	earned := pc.Store.EarnedBadges(userID)

	// last three unlocks, newest first
	recent := []string{}
	for i := len(earned) - 1; i >= 0 && len(recent) < 3; i-- {
		recent = append(recent, earned[i])
	}

	totalStudy := pc.Store.TotalStudyTime(userID)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"mastery":      breakdown,
		"streak":       pc.Store.Streak(userID),
		"totalStudyMs": totalStudy,
		"timeline":     pc.Store.Timeline(userID),
		"badges": fiber.Map{
			"earned": len(earned),
			"total":  len(badges.All()),
			"recent": recent,
		},
		// proficient overall and at least an hour studied
		"shareReady": breakdown.Overall >= 70 && totalStudy >= 3600000,
	})
}

// Breakdown godoc
// @Summary Per-category and per-topic mastery detail
// @Tags progress
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /progress/breakdown [get]
func (pc *ProgressController) Breakdown(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	known := pc.Store.VocabMastery(userID)
	practice := pc.Store.PracticeProgress(userID)
	performances := review.TopicPerformances(pc.Catalog.Questions(), practice)

	var lastTest *models.TestResult
	if history := pc.Store.TestHistory(userID); len(history) > 0 {
		lastTest = &history[len(history)-1]
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"categories": mastery.CategoryBreakdown(pc.Catalog.Vocabulary(), known),
		"topics":     performances,
		"weakTopics": review.WeakTopics(performances),
		"lastTest":   lastTest,
	})
}

// Export godoc
// @Summary Export all progress as a versioned snapshot
// @Tags progress
// @Produce json
// @Success 200 {object} models.ProgressSnapshot
// @Router /progress/export [get]
func (pc *ProgressController) Export(c *fiber.Ctx) error {
	snap := pc.Store.ExportAll(middleware.UserID(c))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="revolution-review-progress.json"`)
	return c.JSON(snap)
}

// Import godoc
// @Summary Restore progress from a snapshot
// @Description Only aggregates present in the snapshot are overwritten
// @Tags progress
// @Accept json
// @Produce json
// @Param snapshot body models.ProgressSnapshot true "Exported snapshot"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /progress/import [post]
func (pc *ProgressController) Import(c *fiber.Ctx) error {
	var snap models.ProgressSnapshot
	if err := c.BodyParser(&snap); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	userID := middleware.UserID(c)
	ok, err := pc.Store.ImportAll(userID, snap)
	if err != nil {
		return utils.InternalServerError(c, "Could not import progress")
	}
	if !ok {
		return utils.BadRequest(c, "Invalid file format")
	}

	// imported data may already satisfy badge rules
	if _, err := awardBadges(pc.Store, pc.Catalog, userID); err != nil {
		return utils.InternalServerError(c, "Could not save badges")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"imported": true})
}

// Clear godoc
// @Summary Delete all stored progress
// @Tags progress
// @Produce json
// @Success 204
// @Router /progress [delete]
func (pc *ProgressController) Clear(c *fiber.Ctx) error {
	if err := pc.Store.ClearAll(middleware.UserID(c)); err != nil {
		return utils.InternalServerError(c, "Could not clear progress")
	}
	return utils.NoContent(c)
}
