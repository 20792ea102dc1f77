package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/planner/internal/config"
	"github.com/Nixie-Tech-LLC/planner/internal/db"
	"github.com/Nixie-Tech-LLC/planner/internal/storage"
)

// InitStorage selects and returns the configured feed storage backend
func InitStorage(cfg *config.Config) storage.Storage {
	if cfg.UseSpaces {
		spacesStorage, err := storage.NewSpacesStorage(
			cfg.SpacesEndpoint,
			cfg.SpacesRegion,
			cfg.SpacesBucket,
			cfg.SpacesCDNURL,
			cfg.SpacesAccessKey,
			cfg.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("cdn", cfg.SpacesCDNURL).Msg("using DigitalOcean Spaces storage")
		return spacesStorage
	}

	log.Info().Str("dir", cfg.UploadDir).Msg("using local file storage")
	return storage.NewLocalStorage(cfg.UploadDir)
}

// InitStore connects the configured record store, running migrations for
// PostgreSQL.
func InitStore(ctx context.Context, cfg *config.Config) db.Store {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return db.NewMemoryStore()
	}

	// initialize PostgreSQL
	if err := db.Init(ctx, cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(ctx, db.DB, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	return db.NewStore(db.DB)
}
