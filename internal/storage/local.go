package storage

import (
	"errors"
	"strings"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/logger"
	"financecontroll/internal/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// LocalAdapter is the embedded, on-device variant backed by SQLite. It is the
// only variant with no external process: one file, one writer.
type LocalAdapter struct {
	path string
	db   *gorm.DB
}

// NewLocalAdapter creates a local adapter persisting to the given database
// file. An in-memory DSN is accepted for tests.
func NewLocalAdapter(path string) *LocalAdapter {
	return &LocalAdapter{path: path}
}

// Connect opens the database file. Safe to call when already connected.
func (a *LocalAdapter) Connect() error {
	if a.db != nil {
		return nil
	}

	// Foreign-key enforcement must be on or the schema's cascades never fire.
	dsn := a.path
	if strings.Contains(dsn, "?") {
		dsn += "&_fk=1"
	} else {
		dsn += "?_fk=1"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return localConnectError(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return localConnectError(err)
	}
	if err := sqlDB.Ping(); err != nil {
		return localConnectError(err)
	}

	a.db = db
	return nil
}

// localConnectError maps driver failures onto the connection taxonomy. Quota
// exhaustion gets its own message so the UI can explain it.
func localConnectError(err error) *apperrors.AppError {
	if strings.Contains(err.Error(), "database or disk is full") {
		return apperrors.Wrap(apperrors.ErrStorageQuota, err)
	}
	return apperrors.Wrap(apperrors.ErrLocalStorage, err)
}

// Disconnect closes the database file. Idempotent.
func (a *LocalAdapter) Disconnect() error {
	if a.db == nil {
		return nil
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Get().Warnf("local adapter close error: %v", closeErr)
		}
	}

	a.db = nil
	return nil
}

// IsConnected reports whether both the client and the query handle are up.
func (a *LocalAdapter) IsConnected() bool {
	if a.db == nil {
		return false
	}
	sqlDB, err := a.db.DB()
	return err == nil && sqlDB != nil
}

// Mode returns ModeLocal.
func (a *LocalAdapter) Mode() Mode { return ModeLocal }

// DB returns the query handle, or nil when disconnected.
func (a *LocalAdapter) DB() *gorm.DB { return a.db }

// Migrate applies pending schema migrations over the live connection. Safe to
// run repeatedly; already-applied versions are skipped.
func (a *LocalAdapter) Migrate() error {
	if a.db == nil {
		return apperrors.WithMessage(apperrors.ErrMigration, "Migrate called before Connect")
	}

	sqlDB, err := a.db.DB()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, err)
	}

	driver, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, err)
	}

	src, err := iofs.New(migrations.FS, "sqlite")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, err)
	}

	mig, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, err)
	}
	// No Close here: the migrate instance shares the adapter's connection and
	// closing it would close the pool out from under us.

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperrors.Wrap(apperrors.ErrMigration, err)
	}

	return nil
}

// ExportData dumps every row of every entity into a versioned snapshot.
func (a *LocalAdapter) ExportData() (*Snapshot, error) {
	if a.db == nil {
		return nil, apperrors.ErrStorageNotReady
	}
	return exportData(a.db)
}

// ImportData replaces current state with the snapshot, all or nothing.
func (a *LocalAdapter) ImportData(snap *Snapshot) error {
	if a.db == nil {
		return apperrors.ErrStorageNotReady
	}
	return importData(a.db, snap)
}

// Ping reports liveness. Never fails; returns false when disconnected.
func (a *LocalAdapter) Ping() bool { return ping(a.db) }
