package storage

import (
	apperrors "financecontroll/internal/errors"

	"gorm.io/gorm"
)

// SupabaseAdapter is the hosted multi-tenant variant, configured with a
// project URL and anon key. The operation set is defined contractually but
// every operation fails explicitly until the backend is built; the factory
// still enforces its configuration requirements.
type SupabaseAdapter struct {
	url     string
	anonKey string
}

// NewSupabaseAdapter creates a supabase adapter for the given project
// credentials.
func NewSupabaseAdapter(url, anonKey string) *SupabaseAdapter {
	return &SupabaseAdapter{url: url, anonKey: anonKey}
}

func notImplemented() *apperrors.AppError {
	return apperrors.WithMessage(apperrors.ErrNotImplemented, "Supabase backend is not implemented yet")
}

// Connect fails until the hosted backend is built.
func (a *SupabaseAdapter) Connect() error { return notImplemented() }

// Disconnect is a no-op. Idempotent.
func (a *SupabaseAdapter) Disconnect() error { return nil }

// IsConnected always reports false.
func (a *SupabaseAdapter) IsConnected() bool { return false }

// Mode returns ModeSupabase.
func (a *SupabaseAdapter) Mode() Mode { return ModeSupabase }

// DB returns nil; there is no query handle.
func (a *SupabaseAdapter) DB() *gorm.DB { return nil }

// Migrate fails until the hosted backend is built.
func (a *SupabaseAdapter) Migrate() error { return notImplemented() }

// ExportData fails until the hosted backend is built.
func (a *SupabaseAdapter) ExportData() (*Snapshot, error) { return nil, notImplemented() }

// ImportData fails until the hosted backend is built.
func (a *SupabaseAdapter) ImportData(*Snapshot) error { return notImplemented() }

// Ping reports false; there is nothing to probe.
func (a *SupabaseAdapter) Ping() bool { return false }
