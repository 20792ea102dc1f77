package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var (
	DB *sqlx.DB
)

const (
	connectAttempts = 10
	connectInterval = 2 * time.Second
)

// Init opens the PostgreSQL connection, retrying while the database comes up,
// and assigns it to DB.
func Init(ctx context.Context, databaseURL string) error {
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		DB, err = sqlx.ConnectContext(ctx, "postgres", databaseURL)
		if err == nil {
			log.Info().Msg("connected to database")
			return nil
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("failed to connect to database, retrying in %s", connectInterval)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(connectInterval):
		}
	}

	return fmt.Errorf("could not connect to database after %d attempts: %w", connectAttempts, err)
}

// RunMigrations executes every "*.up.sql" file in migrationsPath in name
// order. "*.down.sql" files are ignored. Statements use IF NOT EXISTS so
// running them again is harmless.
func RunMigrations(ctx context.Context, db *sqlx.DB, migrationsPath string) error {
	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to glob migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read migration %q: %w", file, err)
		}
		stmt := strings.TrimSpace(string(sqlBytes))
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error executing migration %q: %w", file, err)
		}
		log.Info().Str("file", filepath.Base(file)).Msg("applied migration")
	}
	return nil
}
