package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/lander2k2/silenus-provisioner/internal/seed"
	"github.com/lander2k2/silenus-provisioner/pkg/config"
	"github.com/lander2k2/silenus-provisioner/pkg/store"
)

func main() {
	log := logrus.New()
	ctx := context.Background()

	cfg, err := config.ProcessMigrate()
	if err != nil {
		log.Fatalf("error loading configuration: %s", err)
	}

	if err := store.Migrate(cfg.Store.DSN(), log); err != nil {
		log.Fatalf("error applying migrations: %s", err)
	}
	log.Info("migrations applied")

	if !cfg.SeedDefaults {
		return
	}

	st, err := store.New(ctx, cfg.Store.DSN())
	if err != nil {
		log.Fatalf("error connecting to store: %s", err)
	}
	defer st.Close()

	if err := seed.Load(ctx, st); err != nil {
		log.Fatalf("error seeding defaults: %s", err)
	}
	log.Info("default jurisdiction types, configuration templates, and userdata templates seeded")
}
