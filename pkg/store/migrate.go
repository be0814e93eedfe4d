package store

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationHandler adapts logrus to the migrate library's Logger interface.
type MigrationHandler struct {
	Migrate *migrate.Migrate
	log     *logrus.Entry
}

func (h *MigrationHandler) Printf(format string, v ...interface{}) {
	h.log.Debugf(format, v...)
}

func (h *MigrationHandler) Verbose() bool {
	return true
}

// Migrate applies all pending migrations embedded under migrations/ to dsn.
func Migrate(dsn string, log *logrus.Logger) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("error loading embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	h := &MigrationHandler{Migrate: m, log: log.WithField("component", "migrate")}
	m.Log = h

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error applying migrations: %w", err)
	}
	return nil
}
