package storage

import (
	"errors"
	"time"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/logger"
	"financecontroll/internal/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresAdapter is the self-hosted relational variant, configured with a
// connection string.
type PostgresAdapter struct {
	dsn string
	db  *gorm.DB
}

// NewPostgresAdapter creates a postgres adapter for the given DSN.
func NewPostgresAdapter(connectionString string) *PostgresAdapter {
	return &PostgresAdapter{dsn: connectionString}
}

// Connect opens a pooled connection. Safe to call when already connected.
func (a *PostgresAdapter) Connect() error {
	if a.db != nil {
		return nil
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  a.dsn,
		PreferSimpleProtocol: true, // Required for Supabase Supavisor; harmless for direct connections
	}), &gorm.Config{})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrConnection, err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// The pool opens lazily; ping now so bad credentials surface here and not
	// on the first repository call.
	if err := sqlDB.Ping(); err != nil {
		return apperrors.Wrap(apperrors.ErrConnection, err)
	}

	a.db = db
	return nil
}

// Disconnect releases the pool. Idempotent.
func (a *PostgresAdapter) Disconnect() error {
	if a.db == nil {
		return nil
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Get().Warnf("postgres adapter close error: %v", closeErr)
		}
	}

	a.db = nil
	return nil
}

// IsConnected reports whether both the client and the query handle are up.
func (a *PostgresAdapter) IsConnected() bool {
	if a.db == nil {
		return false
	}
	sqlDB, err := a.db.DB()
	return err == nil && sqlDB != nil
}

// Mode returns ModePostgres.
func (a *PostgresAdapter) Mode() Mode { return ModePostgres }

// DB returns the query handle, or nil when disconnected.
func (a *PostgresAdapter) DB() *gorm.DB { return a.db }

// Migrate applies pending schema migrations over the live connection. Safe to
// run repeatedly; already-applied versions are skipped.
func (a *PostgresAdapter) Migrate() error {
	if a.db == nil {
		return apperrors.WithMessage(apperrors.ErrMigration, "Migrate called before Connect")
	}

	sqlDB, err := a.db.DB()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, err)
	}

	src, err := iofs.New(migrations.FS, "postgres")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, err)
	}

	mig, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, err)
	}
	// No Close: the migrate instance shares the adapter's pool.

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperrors.Wrap(apperrors.ErrMigration, err)
	}

	return nil
}

// ExportData dumps every row of every entity into a versioned snapshot.
func (a *PostgresAdapter) ExportData() (*Snapshot, error) {
	if a.db == nil {
		return nil, apperrors.ErrStorageNotReady
	}
	return exportData(a.db)
}

// ImportData replaces current state with the snapshot, all or nothing.
func (a *PostgresAdapter) ImportData(snap *Snapshot) error {
	if a.db == nil {
		return apperrors.ErrStorageNotReady
	}
	return importData(a.db, snap)
}

// Ping reports liveness. Never fails; returns false when disconnected.
func (a *PostgresAdapter) Ping() bool { return ping(a.db) }
