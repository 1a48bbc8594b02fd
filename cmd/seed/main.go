package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/primestaffing/recruiter-tracker/internal/config"
	"github.com/primestaffing/recruiter-tracker/internal/database"
	"github.com/primestaffing/recruiter-tracker/internal/repository"
	"github.com/primestaffing/recruiter-tracker/internal/service"
)

// seed creates the bootstrap administrator when it does not exist yet.
func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("command", "seed").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPass == "" {
		logger.Fatal().Msg("TRACKER_SEED_ADMIN_EMAIL and TRACKER_SEED_ADMIN_PASSWORD must be set")
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeder := service.NewSeedService(repository.NewUserRepository(db), logger)
	admin, created, err := seeder.EnsureAdmin(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPass)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to seed admin")
	}

	logger.Info().Uint("user_id", admin.ID).Bool("created", created).Msg("admin ready")
}
