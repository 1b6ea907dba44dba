package sqlite

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
	"github.com/zjrosen/hyperstore/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to the latest version.
//
// Every migration is idempotent, so running Migrate against an already
// provisioned database is a no-op. Any failure is returned as a
// *domain.MigrationError and the store must not be used afterwards.
func (db *DB) Migrate(ctx context.Context) error {
	m, err := db.migrator(ctx)
	if err != nil {
		return &domain.MigrationError{Err: err}
	}
	defer func() { _, _ = m.Close() }()

	stop := context.AfterFunc(ctx, func() { m.GracefulStop <- true })
	defer stop()

	before, _, _ := db.SchemaVersion()
	log.Debug(log.CatSchema, "Running migrations", "version", before)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.ErrorErr(log.CatSchema, "Migration failed", err, "version", before)
		return &domain.MigrationError{Err: err}
	}
	if err := ctx.Err(); err != nil {
		return &domain.MigrationError{Err: err}
	}

	after, _, _ := db.SchemaVersion()
	if after != before {
		log.Info(log.CatSchema, "Applied migrations", "from", before, "to", after)
	}
	return nil
}

// SchemaVersion reports the applied schema version and whether the last
// migration was left half-applied. An unprovisioned database is version 0.
func (db *DB) SchemaVersion() (uint, bool, error) {
	m, err := db.migrator(context.Background())
	if err != nil {
		return 0, false, err
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, dirty, nil
}

func (db *DB) migrator(ctx context.Context) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	drv, err := newMigrationDriver(ctx, db.conn)
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	m.Log = migrateLogger{}
	return m, nil
}
