package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"revreview/backend/catalog"
	"revreview/backend/config"
	"revreview/backend/controllers"
	"revreview/backend/middleware"
	"revreview/backend/session"
	"revreview/backend/storage"
)

// Deps bundles the shared services the route handlers need.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Store    *storage.Store
	Catalog  *catalog.Catalog
	Sessions *session.Manager
	Clock    session.Clock
}

func SetupRoutes(app *fiber.App, d Deps) {
	// Auth routes
	authController := controllers.NewAuthController(d.DB, d.Cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", authController.Me)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(d.Cfg)
	teacherMiddleware := middleware.TeacherMiddleware(d.DB, d.Cfg)

	// Classroom sync placeholders
	sync := app.Group("/api/sync", authMiddleware)
	sync.Post("/push", authController.SyncPush)
	sync.Post("/pull", authController.SyncPull)

	// Curriculum content, no auth needed
	catalogController := controllers.NewCatalogController(d.Catalog)
	cat := app.Group("/api/catalog")
	cat.Get("/vocabulary", catalogController.Vocabulary)
	cat.Get("/questions", catalogController.Questions)
	cat.Get("/timeline", catalogController.TimelineEvents)
	cat.Get("/shortanswers", catalogController.ShortAnswers)

	// Flashcard vocabulary routes
	vocabController := controllers.NewVocabController(d.Store, d.Catalog)
	vocab := app.Group("/api/vocab", authMiddleware)
	vocab.Get("/known", vocabController.Known)
	vocab.Post("/known", vocabController.MarkKnown)
	vocab.Post("/reset", vocabController.Reset)

	// Practice routes
	practiceController := controllers.NewPracticeController(d.Store, d.Catalog)
	practice := app.Group("/api/practice", authMiddleware)
	practice.Get("/set", practiceController.Set)
	practice.Get("/progress", practiceController.Progress)
	practice.Post("/answer", practiceController.Answer)

	// Test routes
	testsController := controllers.NewTestsController(d.Store, d.Catalog)
	tests := app.Group("/api/tests", authMiddleware)
	tests.Get("/paper", testsController.Paper)
	tests.Post("/submit", testsController.Submit)
	tests.Get("/history", testsController.History)

	// Timeline challenge routes
	timelineController := controllers.NewTimelineController(d.Store, d.Catalog)
	tl := app.Group("/api/timeline", authMiddleware)
	tl.Get("/shuffled", timelineController.Shuffled)
	tl.Post("/check", timelineController.Check)

	// Study session routes
	sessionController := controllers.NewSessionController(d.Store, d.Catalog, d.Sessions, d.Clock)
	sess := app.Group("/api/session", authMiddleware)
	sess.Get("/", sessionController.Status)
	sess.Post("/start", sessionController.Start)
	sess.Post("/pause", sessionController.Pause)
	sess.Post("/resume", sessionController.Resume)
	sess.Post("/stop", sessionController.Stop)

	// Progress dashboard routes
	progressController := controllers.NewProgressController(d.Store, d.Catalog)
	progress := app.Group("/api/progress", authMiddleware)
	progress.Get("/", progressController.Overview)
	progress.Get("/breakdown", progressController.Breakdown)
	progress.Get("/export", progressController.Export)
	progress.Post("/import", progressController.Import)
	progress.Delete("/", progressController.Clear)

	// Focused review routes
	reviewController := controllers.NewReviewController(d.Store, d.Catalog)
	rev := app.Group("/api/review", authMiddleware)
	rev.Get("/analysis", reviewController.Analysis)
	rev.Get("/focused", reviewController.Focused)

	// Short-answer routes
	shortAnswerController := controllers.NewShortAnswerController(d.Store, d.Catalog)
	sa := app.Group("/api/shortanswer", authMiddleware)
	sa.Get("/responses", shortAnswerController.Responses)
	sa.Put("/responses", shortAnswerController.Save)

	// Badge routes
	badgesController := controllers.NewBadgesController(d.Store, d.Catalog)
	app.Get("/api/badges", authMiddleware, badgesController.List)

	// Teacher analytics routes
	analyticsController := controllers.NewAnalyticsController(d.DB, d.Cfg, d.Store, d.Catalog)
	analytics := app.Group("/api/analytics", teacherMiddleware)
	analytics.Get("/dashboard", analyticsController.Dashboard)
	analytics.Get("/students/:id", analyticsController.Student)
	analytics.Get("/report.xlsx", analyticsController.ReportXLSX)
	analytics.Get("/history", analyticsController.History)
}
