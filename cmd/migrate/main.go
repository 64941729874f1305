package main

import (
	"context"
	"os"

	"dipsport/config"
	"dipsport/helper"
	"dipsport/infras/otel"
	"dipsport/infras/postgres"
	adminRepo "dipsport/internal/domains/admin/repository"
	"dipsport/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up/seed) is required")
	}

	var err error

	switch direction := os.Args[1]; direction {
	case "seed":
		err = seed(cfg)
	default:
		err = helper.Migrate(cfg, direction)
	}

	if err != nil {
		log.Fatal().Err(err).Str("direction", os.Args[1]).Msg("Migration failed")
	}
}

func seed(cfg *config.Config) error {
	conn, closeDB, err := postgres.New(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	return helper.SeedSuperadmin(context.Background(), cfg, adminRepo.New(conn, otel.New(cfg)))
}
