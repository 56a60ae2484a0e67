package postgres

import (
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// migration driver
	_ "github.com/golang-migrate/migrate/v4/source/file"     // file:// migration source

	"github.com/piyushjha0409/DockAI/internal/config"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/logging"
	"github.com/piyushjha0409/DockAI/pkg/errors"
)

// migrationURL renders the connection string for the migrate pgx/v5 driver.
func migrationURL(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)
}

// RunMigrations applies all pending schema migrations from
// cfg.MigrationPath.  An up-to-date schema is not an error.
func RunMigrations(cfg config.DatabaseConfig, log logging.Logger) error {
	m, err := migrate.New("file://"+cfg.MigrationPath, migrationURL(cfg))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to initialize migrator")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Warn("migration source close failed", logging.Err(srcErr))
		}
		if dbErr != nil {
			log.Warn("migration database close failed", logging.Err(dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Info("database schema is up to date")
			return nil
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "migration failed")
	}

	version, dirty, err := m.Version()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to read migration version")
	}
	log.Info("database migrated",
		logging.Any("version", version),
		logging.Bool("dirty", dirty),
	)
	return nil
}
