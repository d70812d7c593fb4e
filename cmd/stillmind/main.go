package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/LarsJung/StillMind/app/models"
	"github.com/LarsJung/StillMind/app/repository"
	"github.com/LarsJung/StillMind/internal/pkg/cache"
	"github.com/LarsJung/StillMind/internal/pkg/database"
	"github.com/LarsJung/StillMind/internal/pkg/env"
	"github.com/LarsJung/StillMind/internal/pkg/metrics/counter"
	"github.com/LarsJung/StillMind/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	seedMindfulnessCatalog()
	startPlayCounterFlusher()

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/stillmind to project root
		"../../../", // Fallback
	}

	// Find the correct base path
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}
	if basePath == "" {
		panic("Could not find project root directory")
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName: "StillMind",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}

// seedMindfulnessCatalog fills an empty catalog with the built-in sessions.
// A non-empty catalog is left untouched so operators can curate it.
func seedMindfulnessCatalog() {
	repo := repository.GetGlobalFactory().GetMindfulnessRepository()
	if err := repo.Seed(defaultCatalog()); err != nil {
		log.Printf("Warning: could not seed mindfulness catalog: %v", err)
	}
}

func defaultCatalog() []models.MindfulnessSession {
	return []models.MindfulnessSession{
		{Title: "Morning Breath Awareness", Description: "A gentle five minute breathing exercise to start the day.", AudioURL: "/audio/morning-breath.mp3", ImageURL: "/images/morning-breath.jpg", Duration: 300, IsPremium: false},
		{Title: "Body Scan Basics", Description: "A guided scan from head to toe for releasing tension.", AudioURL: "/audio/body-scan.mp3", ImageURL: "/images/body-scan.jpg", Duration: 600, IsPremium: false},
		{Title: "Evening Wind Down", Description: "A short practice to let go of the day before sleep.", AudioURL: "/audio/evening-wind-down.mp3", ImageURL: "/images/evening-wind-down.jpg", Duration: 480, IsPremium: false},
		{Title: "Deep Focus Session", Description: "An extended concentration practice for demanding work.", AudioURL: "/audio/deep-focus.mp3", ImageURL: "/images/deep-focus.jpg", Duration: 1200, IsPremium: true},
		{Title: "Loving Kindness Journey", Description: "A full metta meditation cultivating warmth and goodwill.", AudioURL: "/audio/loving-kindness.mp3", ImageURL: "/images/loving-kindness.jpg", Duration: 1500, IsPremium: true},
		{Title: "Sleep Story: Mountain Lake", Description: "A slow narrated descent into rest beside a quiet lake.", AudioURL: "/audio/mountain-lake.mp3", ImageURL: "/images/mountain-lake.jpg", Duration: 1800, IsPremium: true},
	}
}

// startPlayCounterFlusher drains the Redis play counters into MySQL on a
// fixed interval.
func startPlayCounterFlusher() {
	interval := 5 * time.Minute
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if err := counter.FlushAll(); err != nil {
				log.Printf("Warning: play counter flush failed: %v", err)
			}
		}
	}()
}
