package main

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"revreview/backend/catalog"
	"revreview/backend/config"
	"revreview/backend/controllers"
	"revreview/backend/middleware"
	"revreview/backend/routes"
	"revreview/backend/session"
	"revreview/backend/storage"
	"revreview/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Load the embedded curriculum
	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Error loading curriculum: %v", err)
	}

	store := storage.NewStore(db, logger)
	clock := session.RealClock()
	sessions := session.NewManager(clock)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Store:    store,
		Catalog:  cat,
		Sessions: sessions,
		Clock:    clock,
	})

	// Nightly analytics rollup
	analytics := controllers.NewAnalyticsController(db, cfg, store, cat)
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.Every(1).Day().At("02:00").Do(func() {
		if err := analytics.ComputeDailyRollup(time.Now()); err != nil {
			logger.Printf("analytics rollup failed: %v", err)
		}
	})
	scheduler.StartAsync()
	if err := analytics.ComputeDailyRollup(time.Now()); err != nil {
		logger.Printf("initial analytics rollup failed: %v", err)
	}

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
