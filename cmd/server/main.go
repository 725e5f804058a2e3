package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/logger"
	"github.com/yukikurage/todo-api/internal/server"
	"github.com/yukikurage/todo-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.LogLevel, !cfg.IsProduction())

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	if cfg.IsProduction() && cfg.SecretKey == "default-secret-key-change-me" {
		log.Warn().Msg("SECRET_KEY is not set; tokens and sessions are signed with the default key")
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	svc := server.NewServices(cfg, db)

	if cfg.SeedData {
		if err := services.Seed(svc.Auth, svc.Todos); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed data")
		}
	}

	r, err := server.NewRouter(cfg, svc)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build router")
	}

	// Start server
	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("Server starting")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
