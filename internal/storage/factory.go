package storage

import (
	"fmt"

	apperrors "financecontroll/internal/errors"
)

// DefaultLocalPath is where the embedded database lands when no explicit
// path is configured.
const DefaultLocalPath = "financecontroll.db"

// NewAdapter constructs the variant selected by cfg. It fails with a
// configuration error when the variant's required credentials are absent. It
// does not connect; that is the caller's next step.
func NewAdapter(cfg Config) (Adapter, error) {
	switch cfg.Mode {
	case ModeLocal:
		path := cfg.LocalPath
		if path == "" {
			path = DefaultLocalPath
		}
		return NewLocalAdapter(path), nil

	case ModePostgres:
		if cfg.ConnectionString == "" {
			return nil, apperrors.WithMessage(apperrors.ErrConfiguration,
				"Connection string required for postgres mode")
		}
		return NewPostgresAdapter(cfg.ConnectionString), nil

	case ModeSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
			return nil, apperrors.WithMessage(apperrors.ErrConfiguration,
				"Supabase URL and anon key required for supabase mode")
		}
		return NewSupabaseAdapter(cfg.SupabaseURL, cfg.SupabaseAnonKey), nil

	default:
		return nil, apperrors.WithMessage(apperrors.ErrConfiguration,
			fmt.Sprintf("Unknown storage mode: %s", cfg.Mode))
	}
}
