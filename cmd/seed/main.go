// Command seed replaces every group with the defaults, or with the groups
// listed in a YAML file:
//
//	groups:
//	  - name: Personal
//	    color: bg-blue-500
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/Nixie-Tech-LLC/planner/internal/config"
	"github.com/Nixie-Tech-LLC/planner/internal/db"
	"github.com/Nixie-Tech-LLC/planner/internal/model"
	"github.com/Nixie-Tech-LLC/planner/internal/service"
)

type seedFile struct {
	Groups []model.Group `yaml:"groups"`
}

func loadGroups(path string) ([]model.Group, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Groups) == 0 {
		return nil, fmt.Errorf("%s lists no groups", path)
	}
	return f.Groups, nil
}

func main() {
	file := flag.String("file", "", "YAML file with the groups to seed (defaults are used when empty)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.StoreDriver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("seeding needs STORE_DRIVER=postgres")
	}

	groups, err := loadGroups(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read seed file")
	}

	ctx := context.Background()
	if err := db.Init(ctx, cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	defer db.DB.Close()

	if err := db.RunMigrations(ctx, db.DB, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	svc := service.NewCalendarService(db.NewStore(db.DB))
	seeded, err := svc.ResetGroups(ctx, groups)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed groups")
	}
	for _, g := range seeded {
		log.Info().Str("name", g.Name).Str("color", g.Color).Msg("seeded group")
	}
}
