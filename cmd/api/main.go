package main

import (
	"log"

	"github.com/stratify/stratify/internal/api"
	"github.com/stratify/stratify/internal/cache"
	"github.com/stratify/stratify/internal/config"
	"github.com/stratify/stratify/internal/database"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New()

	// Initialize database
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default phases and statuses (idempotent)
	if err := database.SeedDefaultData(db); err != nil {
		log.Fatalf("Failed to seed default data: %v", err)
	}

	// In dev auth mode the static actor must exist as a user row so that
	// ownership and audit references resolve.
	if cfg.AuthMode == config.AuthModeDev {
		actor, err := middleware.DevActor(cfg)
		if err != nil {
			log.Fatalf("Invalid dev actor configuration: %v", err)
		}
		if err := database.EnsureDevActor(db, actor); err != nil {
			log.Fatalf("Failed to ensure dev actor: %v", err)
		}
	}

	// Optional Redis cache for dashboard metrics; empty REDIS_URL disables it.
	appCache, err := cache.New(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize API server
	server, err := api.NewServer(cfg, db, appCache, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
