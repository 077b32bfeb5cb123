package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"revreview/backend/catalog"
	"revreview/backend/middleware"
	"revreview/backend/storage"
	"revreview/backend/utils"
)

// ShortAnswerController stores written-response drafts against the
// curriculum prompts.
type ShortAnswerController struct {
	Store   *storage.Store
	Catalog *catalog.Catalog
}

func NewShortAnswerController(store *storage.Store, cat *catalog.Catalog) *ShortAnswerController {
	return &ShortAnswerController{Store: store, Catalog: cat}
}

// Responses godoc
// @Summary Prompts with the user's saved drafts
// @Tags shortanswer
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /shortanswer/responses [get]
func (sc *ShortAnswerController) Responses(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"prompts":   sc.Catalog.ShortAnswers(),
		"responses": sc.Store.ShortAnswerResponses(middleware.UserID(c)),
	})
}

// Save godoc
// @Summary Save a draft for one prompt
// @Tags shortanswer
// @Accept json
// @Produce json
// @Param request body object true "Prompt index and text"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /shortanswer/responses [put]
func (sc *ShortAnswerController) Save(c *fiber.Ctx) error {
	type SaveInput struct {
		PromptIndex *int   `json:"promptIndex"`
		Text        string `json:"text"`
	}

	var input SaveInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.PromptIndex == nil {
		return utils.ValidationError(c, map[string]string{
			"promptIndex": "promptIndex is required",
		})
	}
	if *input.PromptIndex < 0 || *input.PromptIndex >= len(sc.Catalog.ShortAnswers()) {
		return utils.NotFound(c, "Unknown prompt")
	}
	if strings.TrimSpace(input.Text) == "" {
		return utils.BadRequest(c, "Response text is empty")
	}

	userID := middleware.UserID(c)
	key := strconv.Itoa(*input.PromptIndex)
	if err := sc.Store.SaveShortAnswerResponse(userID, key, input.Text); err != nil {
		return utils.InternalServerError(c, "Could not save response")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"saved":     true,
		"responses": sc.Store.ShortAnswerResponses(userID),
	})
}
