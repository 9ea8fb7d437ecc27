package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"      // .env loader for local development
	"github.com/labstack/echo/v4"   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mvolkova/travelads/internal/archive"
	"github.com/mvolkova/travelads/internal/config"
	"github.com/mvolkova/travelads/internal/database"
	"github.com/mvolkova/travelads/internal/handler"
	"github.com/mvolkova/travelads/internal/ingest"
	"github.com/mvolkova/travelads/internal/middleware"
	"github.com/mvolkova/travelads/internal/queue"
	"github.com/mvolkova/travelads/internal/repository"
	"github.com/mvolkova/travelads/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories
	geoRepo := repository.NewGeoRepo(db)
	tourRepo := repository.NewTourRepo(db)
	refRepo := repository.NewReferenceRepo(db)
	officeRepo := repository.NewOfficeRepo(db)
	advertRepo := repository.NewAdvertRepo(db)
	lockRepo := repository.NewAdvertLockRepo(db)
	photoRepo := repository.NewPhotoRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	tourHandler := handler.NewTourHandler(geoRepo, tourRepo, officeRepo)
	refHandler := handler.NewReferenceHandler(geoRepo, refRepo)
	advertHandler := handler.NewAdvertHandler(
		advertRepo, lockRepo, photoRepo, userRepo,
		archive.NewBuilder(cfg.PhotoDir, cfg.ArchiveDir),
		ingest.NewParser(ingest.Selectors{}),
	)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Redis-backed rate limiting over the public search routes.  A
	// missing Redis disables limiting instead of failing startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterTours(e, tourHandler, refHandler, limiter)
	router.RegisterModeration(e, advertHandler, cfg.JWTSecret)

	// Background consumer appending work.completed events to the
	// moderation log; reconnects on its own.
	go func() {
		if err := queue.StartModerationConsumer(); err != nil {
			log.Printf("moderation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
