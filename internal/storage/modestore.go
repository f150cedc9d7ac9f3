package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// modeKey names the durable slot holding the last-chosen storage config.
const modeKey = "financecontroll_storage_mode"

// ModeStore persists the last-chosen storage config in a file-backed
// key-value slot so the choice survives restarts.
type ModeStore struct {
	dir string
}

// NewModeStore creates a mode store rooted at the given state directory.
func NewModeStore(dir string) *ModeStore {
	return &ModeStore{dir: dir}
}

func (s *ModeStore) path() string {
	return filepath.Join(s.dir, modeKey)
}

// Load retrieves the persisted config. Missing or corrupt state is reported
// as absent, never as an error.
func (s *ModeStore) Load() (Config, bool) {
	raw, err := os.ReadFile(s.path())
	if err != nil {
		return Config{}, false
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, false
	}
	if cfg.Mode == "" {
		return Config{}, false
	}

	return cfg, true
}

// Save persists the config, creating the state directory if needed.
func (s *ModeStore) Save(cfg Config) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path(), raw, 0o600)
}

// Clear removes the persisted config. Removing an absent slot is not an error.
func (s *ModeStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
