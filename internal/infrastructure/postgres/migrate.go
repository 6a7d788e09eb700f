package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

// migrateLogger forwards golang-migrate output to logrus at debug level.
type migrateLogger struct{ logger *logrus.Logger }

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Debugf(strings.TrimSpace(format), v...)
}

func (l migrateLogger) Verbose() bool { return l.logger.IsLevelEnabled(logrus.DebugLevel) }

// migrateURL rewrites a postgres:// DSN to the scheme the pgx/v5 migrate driver registers.
func migrateURL(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// RunMigrations applies every pending migration in migrationsDir and logs the
// resulting schema version.
func RunMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsDir), migrateURL(dsn))
	if err != nil {
		return fmt.Errorf("postgres.RunMigrations: %w", err)
	}
	defer func() { _, _ = m.Close() }()
	m.Log = migrateLogger{logger: logger}

	logger.Info("running migrations...")
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres.RunMigrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("postgres.RunMigrations: version: %w", err)
	}
	if dirty {
		return fmt.Errorf("postgres.RunMigrations: schema version %d is dirty", version)
	}
	logger.WithField("version", version).Info("schema up to date")
	return nil
}
