package main

import (
	"dipsport/config"
	"dipsport/di"
	"dipsport/helper"
	"dipsport/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Venue Reservation API
// @version 1.0
// @description Stadium, field and booking management.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Migrate(cfg, helper.ActionUp); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	http, cleanup, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	defer cleanup()

	http.Serve()
}
