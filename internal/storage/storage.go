// Package storage provides the polymorphic persistence backend behind the
// repository layer. One Adapter interface, three variants: an embedded SQLite
// database (local), a self-hosted Postgres instance (postgres), and a hosted
// multi-tenant backend (supabase). Repositories only ever see the query
// handle; they never know which variant is active.
package storage

import (
	"time"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/models"

	"gorm.io/gorm"
)

// Mode identifies a storage variant.
type Mode string

const (
	ModeLocal    Mode = "local"
	ModePostgres Mode = "postgres"
	ModeSupabase Mode = "supabase"
)

// Config selects a variant and carries its credentials. The JSON shape is
// exactly what the mode store persists.
type Config struct {
	Mode             Mode   `json:"mode"`
	ConnectionString string `json:"connectionString,omitempty"`
	SupabaseURL      string `json:"supabaseUrl,omitempty"`
	SupabaseAnonKey  string `json:"supabaseAnonKey,omitempty"`

	// LocalPath is where the embedded database lives. Not part of the
	// persisted blob; it comes from application config.
	LocalPath string `json:"-"`
}

// SnapshotVersion tags exported snapshots with the schema generation that
// produced them.
const SnapshotVersion = "1.0.0"

// Snapshot is the portability contract between variants: a full, unfiltered
// dump of every entity table.
type Snapshot struct {
	Version       string                `json:"version"`
	ExportedAt    time.Time             `json:"exportedAt"`
	Portfolios    []models.Portfolio    `json:"portfolios"`
	Assets        []models.Asset        `json:"assets"`
	Transactions  []models.Transaction  `json:"transactions"`
	Valuations    []models.Valuation    `json:"valuations"`
	ExchangeRates []models.ExchangeRate `json:"exchangeRates"`
}

// Handle is the slice of an adapter the repositories depend on. DB returns
// nil while no backend is connected (including the window during a mode
// switch); repositories treat that as "not ready".
type Handle interface {
	DB() *gorm.DB
}

// Adapter is the capability set every storage variant implements.
type Adapter interface {
	Handle

	// Connect establishes the backend connection.
	Connect() error
	// Disconnect releases the connection. Idempotent.
	Disconnect() error
	// IsConnected reports whether both the client and the query handle are up.
	IsConnected() bool
	// Mode returns which variant this adapter is.
	Mode() Mode
	// Migrate idempotently creates or upgrades the schema. Fails with a
	// migration error when called before Connect.
	Migrate() error
	// ExportData produces a versioned snapshot of every row of every entity.
	ExportData() (*Snapshot, error)
	// ImportData replaces current state with the snapshot, all or nothing.
	ImportData(*Snapshot) error
	// Ping is a liveness probe. It reports false instead of failing.
	Ping() bool
}

// exportData dumps all five tables. Shared by the SQL-backed variants.
func exportData(db *gorm.DB) (*Snapshot, error) {
	snap := &Snapshot{
		Version:       SnapshotVersion,
		ExportedAt:    time.Now().UTC(),
		Portfolios:    []models.Portfolio{},
		Assets:        []models.Asset{},
		Transactions:  []models.Transaction{},
		Valuations:    []models.Valuation{},
		ExchangeRates: []models.ExchangeRate{},
	}

	if err := db.Find(&snap.Portfolios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := db.Find(&snap.Assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := db.Find(&snap.Transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := db.Find(&snap.Valuations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := db.Find(&snap.ExchangeRates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return snap, nil
}

// importData clears current state and bulk-loads the snapshot inside one
// database transaction, so a partial failure leaves prior state intact.
func importData(db *gorm.DB, snap *Snapshot) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Children first so foreign keys never dangle mid-delete.
		for _, table := range []string{"exchange_rates", "valuations", "transactions", "assets", "portfolios"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		// Parents first on the way back in.
		if len(snap.Portfolios) > 0 {
			if err := tx.Create(&snap.Portfolios).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if len(snap.Assets) > 0 {
			if err := tx.Create(&snap.Assets).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if len(snap.Transactions) > 0 {
			if err := tx.Create(&snap.Transactions).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if len(snap.Valuations) > 0 {
			if err := tx.Create(&snap.Valuations).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if len(snap.ExchangeRates) > 0 {
			if err := tx.Create(&snap.ExchangeRates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		return nil
	})
}

// ping probes the underlying connection without propagating failures.
func ping(db *gorm.DB) bool {
	if db == nil {
		return false
	}
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}
