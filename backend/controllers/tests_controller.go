package controllers

import (
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"revreview/backend/catalog"
	"revreview/backend/mastery"
	"revreview/backend/middleware"
	"revreview/backend/models"
	"revreview/backend/storage"
	"revreview/backend/utils"
)

// TestsController grades full practice tests over the whole question bank.
type TestsController struct {
	Store   *storage.Store
	Catalog *catalog.Catalog
}

func NewTestsController(store *storage.Store, cat *catalog.Catalog) *TestsController {
	return &TestsController{Store: store, Catalog: cat}
}

// testQuestion is a bank entry with the answer key stripped.
type testQuestion struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Topic    string   `json:"topic"`
}

// stripAnswerKeys drops the correct index and explanation from questions
// served before grading.
func stripAnswerKeys(questions []models.Question) []testQuestion {
	out := make([]testQuestion, len(questions))
	for i, q := range questions {
		out[i] = testQuestion{ID: q.ID, Question: q.Question, Options: q.Options, Topic: q.Topic}
	}
	return out
}

// Paper godoc
// @Summary Fetch the test paper
// @Description Returns every bank question without answer keys
// @Tags tests
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /tests/paper [get]
func (tc *TestsController) Paper(c *fiber.Ctx) error {
	paper := stripAnswerKeys(tc.Catalog.Questions())
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"questions": paper,
		"total":     len(paper),
	})
}

// missedQuestion is review material for one wrong or skipped answer.
type missedQuestion struct {
	Question      string `json:"question"`
	Topic         string `json:"topic"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

// Submit godoc
// @Summary Grade a completed test
// @Description Scores answers over the full bank; unanswered questions count as wrong
// @Tags tests
// @Accept json
// @Produce json
// @Param request body object true "Answers keyed by question ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /tests/submit [post]
func (tc *TestsController) Submit(c *fiber.Ctx) error {
	type SubmitInput struct {
		Answers map[string]int `json:"answers"`
	}

	var input SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	bank := tc.Catalog.Questions()
	correct := 0
	topicScores := map[string]models.TopicScore{}
	missed := []missedQuestion{}

	for _, q := range bank {
		answer, answered := input.Answers[strconv.Itoa(q.ID)]
		isCorrect := answered && answer == q.Correct

		ts := topicScores[q.Topic]
		ts.Total++
		if isCorrect {
			ts.Correct++
			correct++
		} else {
			missed = append(missed, missedQuestion{
				Question:      q.Question,
				Topic:         q.Topic,
				CorrectAnswer: q.Options[q.Correct],
				Explanation:   q.Explanation,
			})
		}
		topicScores[q.Topic] = ts
	}

	score := int(math.Round(float64(correct) / float64(len(bank)) * 100))
	result := models.TestResult{
		Score:       score,
		Date:        time.Now().UTC().Format(time.RFC3339),
		TopicScores: topicScores,
	}

	userID := middleware.UserID(c)
	if err := tc.Store.AppendTestResult(userID, result); err != nil {
		return utils.InternalServerError(c, "Could not save test result")
	}

	newBadges, err := awardBadges(tc.Store, tc.Catalog, userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not save badges")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"score":       score,
		"correct":     correct,
		"total":       len(bank),
		"topicScores": topicScores,
		"missed":      missed,
		"newBadges":   newBadges,
	})
}

// History godoc
// @Summary List past test results, oldest first
// @Tags tests
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /tests/history [get]
func (tc *TestsController) History(c *fiber.Ctx) error {
	history := tc.Store.TestHistory(middleware.UserID(c))
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"results": history,
		"average": mastery.TestAverage(history),
	})
}
