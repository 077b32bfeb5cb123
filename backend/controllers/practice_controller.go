package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"revreview/backend/catalog"
	"revreview/backend/mastery"
	"revreview/backend/middleware"
	"revreview/backend/review"
	"revreview/backend/storage"
	"revreview/backend/utils"
)

// PracticeController runs the untimed practice question flow.
type PracticeController struct {
	Store   *storage.Store
	Catalog *catalog.Catalog
}

func NewPracticeController(store *storage.Store, cat *catalog.Catalog) *PracticeController {
	return &PracticeController{Store: store, Catalog: cat}
}

// Set godoc
// @Summary Fetch a shuffled practice set
// @Description Answer keys are withheld until the answer is submitted
// @Tags practice
// @Produce json
// @Param size query int false "Number of questions" default(10)
// @Success 200 {object} utils.SuccessResponse
// @Router /practice/set [get]
func (pc *PracticeController) Set(c *fiber.Ctx) error {
	size := c.QueryInt("size", 10)
	if size <= 0 {
		return utils.BadRequest(c, "size must be positive")
	}

	set := stripAnswerKeys(pc.Catalog.RandomQuestions(size))
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"questions": set,
		"total":     len(set),
	})
}

// Progress godoc
// @Summary Practice progress with per-topic accuracy
// @Tags practice
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /practice/progress [get]
func (pc *PracticeController) Progress(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	practice := pc.Store.PracticeProgress(userID)
	correct, attempted, percent := mastery.PracticeStats(practice)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"progress":         practice,
		"wrongAnswerCount": pc.Store.WrongAnswerCount(userID),
		"correct":          correct,
		"attempted":        attempted,
		"percent":          percent,
		"topics":           review.TopicPerformances(pc.Catalog.Questions(), practice),
	})
}

// Answer godoc
// @Summary Submit one practice answer
// @Description Grades the choice, records the attempt and returns the explanation
// @Tags practice
// @Accept json
// @Produce json
// @Param request body object true "Question ID and selected option"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /practice/answer [post]
func (pc *PracticeController) Answer(c *fiber.Ctx) error {
	type AnswerInput struct {
		QuestionID *int `json:"questionId"`
		Selected   *int `json:"selected"`
	}

	var input AnswerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.QuestionID == nil || input.Selected == nil {
		return utils.ValidationError(c, map[string]string{
			"questionId": "questionId and selected are required",
		})
	}

	question, ok := pc.Catalog.QuestionByID(*input.QuestionID)
	if !ok {
		return utils.NotFound(c, "Unknown question")
	}
	if *input.Selected < 0 || *input.Selected >= len(question.Options) {
		return utils.BadRequest(c, "Selected option is out of range")
	}

	userID := middleware.UserID(c)
	correct := *input.Selected == question.Correct
	if err := pc.Store.RecordPracticeAnswer(userID, strconv.Itoa(question.ID), correct); err != nil {
		return utils.InternalServerError(c, "Could not save progress")
	}

	newBadges, err := awardBadges(pc.Store, pc.Catalog, userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not save badges")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"correct":     correct,
		"correctIdx":  question.Correct,
		"explanation": question.Explanation,
		"newBadges":   newBadges,
	})
}
