package database

import (
	"embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"wellness-events/config"
	"wellness-events/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationURL converts the database config into the pgx5:// URL golang-migrate expects.
func MigrationURL(config *config.DatabaseConfig) string {
	if config.URL != "" {
		for _, prefix := range []string{"postgresql://", "postgres://"} {
			if strings.HasPrefix(config.URL, prefix) {
				return "pgx5://" + strings.TrimPrefix(config.URL, prefix)
			}
		}
		return config.URL
	}
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(config.User, config.Password),
		Host:     config.Host + ":" + config.Port,
		Path:     "/" + config.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(config.SSLMode),
	}
	return u.String()
}

// Migrate applies every pending up migration for the Postgres store.
func Migrate(config *config.DatabaseConfig) error {
	log := logger.WithComponent("migrate")

	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, MigrationURL(config))
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn("close migrate", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("schema up to date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
