package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"revreview/backend/catalog"
	"revreview/backend/config"
	"revreview/backend/controllers"
	"revreview/backend/models"
	"revreview/backend/routes"
	"revreview/backend/session"
	"revreview/backend/storage"
	"revreview/backend/utils"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fixture struct {
	app   *fiber.App
	db    *gorm.DB
	cfg   *config.Config
	cat   *catalog.Catalog
	store *storage.Store
	clock *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.LoginHistory{},
		&models.ProgressRecord{},
		&models.PlatformAnalytics{},
	))

	cfg := &config.Config{JWTSecret: "testsecret"}
	cat, err := catalog.Load()
	require.NoError(t, err)

	appLogger := utils.InitLogger()
	store := storage.NewStore(db, appLogger)
	clock := &fakeClock{now: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)}

	app := fiber.New()
	routes.SetupRoutes(app, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Store:    store,
		Catalog:  cat,
		Sessions: session.NewManager(clock),
		Clock:    clock,
	})

	return &fixture{app: app, db: db, cfg: cfg, cat: cat, store: store, clock: clock}
}

func (f *fixture) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func (f *fixture) register(t *testing.T, username, role string) string {
	t.Helper()

	resp, body := f.request(t, "POST", "/api/auth/register", "", fiber.Map{
		"username": username,
		"email":    username + "@school.edu",
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func data(body map[string]interface{}) map[string]interface{} {
	d, _ := body["data"].(map[string]interface{})
	return d
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	token := f.register(t, "abigail", "student")
	assert.NotEmpty(t, token)

	// duplicate username rejected
	resp, _ := f.request(t, "POST", "/api/auth/register", "", fiber.Map{
		"username": "abigail",
		"email":    "other@school.edu",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, body := f.request(t, "POST", "/api/auth/login", "", fiber.Map{
		"username": "abigail",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, _ = f.request(t, "POST", "/api/auth/login", "", fiber.Map{
		"username": "abigail",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.request(t, "GET", "/api/progress/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = f.request(t, "GET", "/api/progress/", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCatalogEndpoints(t *testing.T) {
	f := newFixture(t)

	resp, body := f.request(t, "GET", "/api/catalog/vocabulary", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(22), data(body)["total"])

	resp, body = f.request(t, "GET", "/api/catalog/questions", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(30), data(body)["total"])
	questions, _ := data(body)["questions"].([]interface{})
	firstQ, _ := questions[0].(map[string]interface{})
	assert.NotContains(t, firstQ, "correct")
	assert.NotContains(t, firstQ, "explanation")

	resp, body = f.request(t, "GET", "/api/catalog/timeline", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	events, _ := data(body)["events"].([]interface{})
	assert.Len(t, events, 10)

	resp, body = f.request(t, "GET", "/api/catalog/shortanswers", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	prompts, _ := data(body)["prompts"].([]interface{})
	assert.Len(t, prompts, 5)
}

func TestVocabFlow(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	resp, body := f.request(t, "POST", "/api/vocab/known", token, fiber.Map{"term": "Boycott"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	known, _ := data(body)["known"].([]interface{})
	assert.Equal(t, []interface{}{"Boycott"}, known)

	// unknown term rejected
	resp, _ = f.request(t, "POST", "/api/vocab/known", token, fiber.Map{"term": "Photosynthesis"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// the known set only grows; re-marking changes nothing
	resp, body = f.request(t, "POST", "/api/vocab/known", token, fiber.Map{"term": "Repeal"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, body = f.request(t, "POST", "/api/vocab/known", token, fiber.Map{"term": "Boycott"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	known, _ = data(body)["known"].([]interface{})
	assert.Equal(t, []interface{}{"Boycott", "Repeal"}, known)

	// explicit reset is the only clear
	resp, _ = f.request(t, "POST", "/api/vocab/reset", token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, body = f.request(t, "GET", "/api/vocab/known", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	known, _ = data(body)["known"].([]interface{})
	assert.Empty(t, known)
}

func TestPracticeSetHidesAnswers(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	resp, body := f.request(t, "GET", "/api/practice/set?size=5", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	questions, _ := data(body)["questions"].([]interface{})
	require.Len(t, questions, 5)
	first, _ := questions[0].(map[string]interface{})
	assert.NotContains(t, first, "correct")
	assert.NotContains(t, first, "explanation")

	// asking for more than the bank holds returns the whole bank
	resp, body = f.request(t, "GET", "/api/practice/set?size=100", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	questions, _ = data(body)["questions"].([]interface{})
	assert.Len(t, questions, 30)
}

func TestPracticeAnswerGrading(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	// question 0: correct option is 2
	resp, body := f.request(t, "POST", "/api/practice/answer", token, fiber.Map{
		"questionId": 0, "selected": 2,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, data(body)["correct"])
	assert.NotEmpty(t, data(body)["explanation"])
	// no unlock yet, but the array is always present
	assert.Equal(t, []interface{}{}, data(body)["newBadges"])

	resp, body = f.request(t, "POST", "/api/practice/answer", token, fiber.Map{
		"questionId": 1, "selected": 0,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, data(body)["correct"])

	resp, _ = f.request(t, "POST", "/api/practice/answer", token, fiber.Map{
		"questionId": 999, "selected": 0,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = f.request(t, "GET", "/api/practice/progress", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), data(body)["correct"])
	assert.Equal(t, float64(2), data(body)["attempted"])
	assert.Equal(t, float64(50), data(body)["percent"])
}

func TestSubmitTestAndHistory(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")
	cat, err := catalog.Load()
	require.NoError(t, err)

	// answer everything correctly
	answers := fiber.Map{}
	for _, q := range cat.Questions() {
		answers[strconv.Itoa(q.ID)] = q.Correct
	}
	resp, body := f.request(t, "POST", "/api/tests/submit", token, fiber.Map{"answers": answers})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(100), data(body)["score"])
	missed, _ := data(body)["missed"].([]interface{})
	assert.Empty(t, missed)

	// perfect score unlocks both test badges
	newBadges, _ := data(body)["newBadges"].([]interface{})
	ids := []string{}
	for _, b := range newBadges {
		m, _ := b.(map[string]interface{})
		ids = append(ids, m["id"].(string))
	}
	assert.Contains(t, ids, "test_pass")
	assert.Contains(t, ids, "perfect_test")

	// an empty submission counts everything wrong
	resp, body = f.request(t, "POST", "/api/tests/submit", token, fiber.Map{"answers": fiber.Map{}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), data(body)["score"])

	resp, body = f.request(t, "GET", "/api/tests/history", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	results, _ := data(body)["results"].([]interface{})
	assert.Len(t, results, 2)
	assert.Equal(t, float64(50), data(body)["average"])
}

func TestTestPaperHidesAnswers(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	resp, body := f.request(t, "GET", "/api/tests/paper", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	questions, _ := data(body)["questions"].([]interface{})
	require.Len(t, questions, 30)
	first, _ := questions[0].(map[string]interface{})
	assert.NotContains(t, first, "correct")
	assert.NotContains(t, first, "explanation")
}

func TestTimelineCheck(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	resp, body := f.request(t, "GET", "/api/timeline/shuffled", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	events, _ := data(body)["events"].([]interface{})
	assert.Len(t, events, 10)

	resp, body = f.request(t, "POST", "/api/timeline/check", token, fiber.Map{
		"placements": []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result, _ := data(body)["result"].(map[string]interface{})
	assert.Equal(t, float64(10), result["score"])
	assert.Equal(t, true, result["perfect"])

	progress, _ := data(body)["progress"].(map[string]interface{})
	assert.Equal(t, float64(1), progress["perfectCount"])
	assert.Equal(t, float64(10), progress["bestScore"])

	resp, _ = f.request(t, "POST", "/api/timeline/check", token, fiber.Map{
		"placements": []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	resp, body := f.request(t, "POST", "/api/session/start", token, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	streakData, _ := data(body)["streak"].(map[string]interface{})
	assert.Equal(t, float64(1), streakData["current"])

	// double start conflicts
	resp, _ = f.request(t, "POST", "/api/session/start", token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	f.clock.now = f.clock.now.Add(time.Minute)
	resp, body = f.request(t, "POST", "/api/session/pause", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	sess, _ := data(body)["session"].(map[string]interface{})
	assert.Equal(t, float64(60000), sess["elapsedMs"])

	// paused time is free
	f.clock.now = f.clock.now.Add(time.Hour)
	resp, body = f.request(t, "POST", "/api/session/resume", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	sess, _ = data(body)["session"].(map[string]interface{})
	assert.Equal(t, float64(60000), sess["elapsedMs"])

	f.clock.now = f.clock.now.Add(30 * time.Second)
	resp, body = f.request(t, "POST", "/api/session/stop", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(90000), data(body)["elapsedMs"])
	assert.Equal(t, float64(90000), data(body)["totalStudyMs"])

	// first study badge came with the banked time
	newBadges, _ := data(body)["newBadges"].([]interface{})
	require.Len(t, newBadges, 1)
	badge, _ := newBadges[0].(map[string]interface{})
	assert.Equal(t, "first_study", badge["id"])

	resp, body = f.request(t, "GET", "/api/session/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	sess, _ = data(body)["session"].(map[string]interface{})
	assert.Equal(t, "stopped", sess["state"])
}

func TestResumeDoesNotTouchStreak(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	resp, _ := f.request(t, "POST", "/api/session/start", token, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, _ = f.request(t, "POST", "/api/session/pause", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// pausing before midnight and resuming the next day is not a new study day
	f.clock.now = f.clock.now.Add(24 * time.Hour)
	resp, body := f.request(t, "POST", "/api/session/resume", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, data(body), "streak")

	resp, body = f.request(t, "GET", "/api/session/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	streakData, _ := data(body)["streak"].(map[string]interface{})
	assert.Equal(t, float64(1), streakData["current"])
	assert.Equal(t, "2026-03-10", streakData["lastStudyDate"])
}

func TestStreakAcrossDays(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	startStop := func() map[string]interface{} {
		resp, body := f.request(t, "POST", "/api/session/start", token, nil)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		streakData, _ := data(body)["streak"].(map[string]interface{})
		resp, _ = f.request(t, "POST", "/api/session/stop", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		return streakData
	}

	s := startStop()
	assert.Equal(t, float64(1), s["current"])

	f.clock.now = f.clock.now.AddDate(0, 0, 1)
	s = startStop()
	assert.Equal(t, float64(2), s["current"])
	assert.Equal(t, float64(2), s["longest"])

	// a three day gap resets current but not longest
	f.clock.now = f.clock.now.AddDate(0, 0, 3)
	s = startStop()
	assert.Equal(t, float64(1), s["current"])
	assert.Equal(t, float64(2), s["longest"])
}

func TestProgressOverview(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	for _, term := range []string{"Boycott", "Repeal", "Tax", "Patriot", "Tyranny"} {
		resp, _ := f.request(t, "POST", "/api/vocab/known", token, fiber.Map{"term": term})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, body := f.request(t, "GET", "/api/progress/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	masteryData, _ := data(body)["mastery"].(map[string]interface{})
	assert.Equal(t, float64(5), masteryData["vocabKnown"])
	assert.Equal(t, float64(23), masteryData["vocabPercent"])
	assert.Equal(t, "beginner", masteryData["tier"])

	badgeData, _ := data(body)["badges"].(map[string]interface{})
	// five known terms earn the word explorer badge
	assert.Equal(t, float64(1), badgeData["earned"])
	assert.Equal(t, float64(10), badgeData["total"])
	recent, _ := badgeData["recent"].([]interface{})
	assert.Equal(t, []interface{}{"vocab_5"}, recent)

	assert.Equal(t, false, data(body)["shareReady"])
}

func TestProgressBreakdown(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	resp, _ := f.request(t, "POST", "/api/vocab/known", token, fiber.Map{"term": "Boycott"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = f.request(t, "POST", "/api/practice/answer", token, fiber.Map{
		"questionId": 0, "selected": 0,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := f.request(t, "GET", "/api/progress/breakdown", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	categories, _ := data(body)["categories"].([]interface{})
	require.NotEmpty(t, categories)
	first, _ := categories[0].(map[string]interface{})
	assert.Equal(t, "Causes of Unrest", first["category"])
	assert.Equal(t, float64(1), first["known"])

	weak, _ := data(body)["weakTopics"].([]interface{})
	assert.Equal(t, []interface{}{"Causes of Unrest"}, weak)
	assert.Nil(t, data(body)["lastTest"])
}

func TestExportImportClear(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	resp, _ := f.request(t, "POST", "/api/vocab/known", token, fiber.Map{"term": "Boycott"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, snapshot := f.request(t, "GET", "/api/progress/export", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "1.0", snapshot["version"])

	resp, _ = f.request(t, "DELETE", "/api/progress/", token, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, body := f.request(t, "GET", "/api/vocab/known", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	known, _ := data(body)["known"].([]interface{})
	assert.Empty(t, known)

	resp, _ = f.request(t, "POST", "/api/progress/import", token, snapshot)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = f.request(t, "GET", "/api/vocab/known", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	known, _ = data(body)["known"].([]interface{})
	assert.Equal(t, []interface{}{"Boycott"}, known)

	// a snapshot without a version tag is rejected
	resp, _ = f.request(t, "POST", "/api/progress/import", token, fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFocusedReview(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	// two wrong answers in one topic make it weak
	for _, qid := range []int{0, 1} {
		resp, _ := f.request(t, "POST", "/api/practice/answer", token, fiber.Map{
			"questionId": qid, "selected": 0,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, body := f.request(t, "GET", "/api/review/analysis", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	weak, _ := data(body)["weakTopics"].([]interface{})
	assert.Equal(t, []interface{}{"Causes of Unrest"}, weak)

	resp, body = f.request(t, "GET", "/api/review/focused", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	vocab, _ := data(body)["vocabulary"].([]interface{})
	assert.Len(t, vocab, 10)
	questions, _ := data(body)["questions"].([]interface{})
	assert.NotEmpty(t, questions)
	assert.LessOrEqual(t, len(questions), 3)
}

func TestShortAnswerDrafts(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	resp, _ := f.request(t, "PUT", "/api/shortanswer/responses", token, fiber.Map{
		"promptIndex": 0, "text": "The Intolerable Acts crossed the line because...",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = f.request(t, "PUT", "/api/shortanswer/responses", token, fiber.Map{
		"promptIndex": 7, "text": "out of range",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = f.request(t, "PUT", "/api/shortanswer/responses", token, fiber.Map{
		"promptIndex": 1, "text": "   ",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := f.request(t, "GET", "/api/shortanswer/responses", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	responses, _ := data(body)["responses"].(map[string]interface{})
	assert.Contains(t, responses["0"], "Intolerable Acts")
}

func TestBadgeListing(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	resp, body := f.request(t, "GET", "/api/badges", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	list, _ := data(body)["badges"].([]interface{})
	require.Len(t, list, 10)
	first, _ := list[0].(map[string]interface{})
	assert.Equal(t, "first_study", first["id"])
	assert.Equal(t, false, first["earned"])
}

func TestAnalyticsTeacherOnly(t *testing.T) {
	f := newFixture(t)
	studentToken := f.register(t, "sam", "student")
	teacherToken := f.register(t, "msjones", "teacher")

	resp, _ := f.request(t, "GET", "/api/analytics/dashboard", studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// give the student some progress first
	resp, _ = f.request(t, "POST", "/api/vocab/known", studentToken, fiber.Map{"term": "Boycott"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := f.request(t, "GET", "/api/analytics/dashboard", teacherToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	students, _ := data(body)["students"].([]interface{})
	require.Len(t, students, 1)
	row, _ := students[0].(map[string]interface{})
	assert.Equal(t, "sam", row["username"])
}

func TestAnalyticsReportDownload(t *testing.T) {
	f := newFixture(t)
	f.register(t, "sam", "student")
	teacherToken := f.register(t, "msjones", "teacher")

	req := httptest.NewRequest("GET", "/api/analytics/report.xlsx", nil)
	req.Header.Set("Authorization", teacherToken)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

func TestDailyRollup(t *testing.T) {
	f := newFixture(t)
	studentToken := f.register(t, "sam", "student")
	teacherToken := f.register(t, "msjones", "teacher")

	answers := fiber.Map{}
	for _, q := range f.cat.Questions() {
		answers[strconv.Itoa(q.ID)] = q.Correct
	}
	resp, _ := f.request(t, "POST", "/api/tests/submit", studentToken, fiber.Map{"answers": answers})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ac := controllers.NewAnalyticsController(f.db, f.cfg, f.store, f.cat)
	require.NoError(t, ac.ComputeDailyRollup(f.clock.Now()))
	// running twice on the same day updates the existing row
	require.NoError(t, ac.ComputeDailyRollup(f.clock.Now()))

	resp, body := f.request(t, "GET", "/api/analytics/history", teacherToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	rollups, _ := data(body)["rollups"].([]interface{})
	require.Len(t, rollups, 1)
	row, _ := rollups[0].(map[string]interface{})
	assert.Equal(t, "2026-03-10", row["date"])
	assert.Equal(t, float64(1), row["totalUsers"])
	assert.Equal(t, float64(1), row["testsTaken"])
}

func TestSyncEndpointsNotImplemented(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "sam", "student")

	for _, path := range []string{"/api/sync/push", "/api/sync/pull"} {
		resp, _ := f.request(t, "POST", path, token, fiber.Map{})
		assert.Equal(t, fiber.StatusNotImplemented, resp.StatusCode, fmt.Sprintf("path %s", path))
	}
}
