package storage

import (
	"sync"

	"financecontroll/internal/logger"

	"gorm.io/gorm"
)

// Manager owns the active storage adapter and serializes mode switches. It
// implements Handle, so repositories can be constructed once and keep working
// across switches; during the transition window they observe a nil handle and
// report not-ready.
type Manager struct {
	mu      sync.RWMutex
	adapter Adapter

	// switchMu keeps mode switches sequential: the old adapter is fully
	// disconnected before the new one comes up.
	switchMu sync.Mutex

	store     *ModeStore
	localPath string
}

// NewManager creates a manager with no active adapter. store may be nil, in
// which case mode choices are not persisted. localPath overrides where the
// local variant keeps its database file.
func NewManager(store *ModeStore, localPath string) *Manager {
	return &Manager{store: store, localPath: localPath}
}

// DB implements Handle. Returns nil while no mode is active or a switch is in
// flight.
func (m *Manager) DB() *gorm.DB {
	m.mu.RLock()
	a := m.adapter
	m.mu.RUnlock()

	if a == nil {
		return nil
	}
	return a.DB()
}

// Mode returns the active variant, or false when none is active.
func (m *Manager) Mode() (Mode, bool) {
	m.mu.RLock()
	a := m.adapter
	m.mu.RUnlock()

	if a == nil {
		return "", false
	}
	return a.Mode(), true
}

// Adapter returns the active adapter, or nil when none is active.
func (m *Manager) Adapter() Adapter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.adapter
}

// Ping probes the active adapter. False when none is active.
func (m *Manager) Ping() bool {
	m.mu.RLock()
	a := m.adapter
	m.mu.RUnlock()

	if a == nil {
		return false
	}
	return a.Ping()
}

// SwitchMode tears down the current adapter, then constructs, connects and
// migrates the one selected by cfg, and persists the choice. On failure the
// manager is left with no active adapter; the previous backend is already
// disconnected and its data untouched.
func (m *Manager) SwitchMode(cfg Config) error {
	m.switchMu.Lock()
	defer m.switchMu.Unlock()

	if cfg.LocalPath == "" {
		cfg.LocalPath = m.localPath
	}

	// Detach before disconnecting so repository calls see "not ready" rather
	// than a half-closed handle.
	m.mu.Lock()
	old := m.adapter
	m.adapter = nil
	m.mu.Unlock()

	if old != nil {
		if err := old.Disconnect(); err != nil {
			return err
		}
	}

	next, err := NewAdapter(cfg)
	if err != nil {
		return err
	}
	if err := next.Connect(); err != nil {
		return err
	}
	if err := next.Migrate(); err != nil {
		_ = next.Disconnect()
		return err
	}

	if m.store != nil {
		if err := m.store.Save(cfg); err != nil {
			logger.Get().Warnf("failed to persist storage mode: %v", err)
		}
	}

	m.mu.Lock()
	m.adapter = next
	m.mu.Unlock()
	return nil
}

// Restore reconnects using the persisted mode. Reports false when no mode has
// been chosen yet (or the persisted state was corrupt).
func (m *Manager) Restore() (bool, error) {
	if m.store == nil {
		return false, nil
	}
	cfg, ok := m.store.Load()
	if !ok {
		return false, nil
	}
	return true, m.SwitchMode(cfg)
}

// Close disconnects the active adapter, if any.
func (m *Manager) Close() error {
	m.switchMu.Lock()
	defer m.switchMu.Unlock()

	m.mu.Lock()
	a := m.adapter
	m.adapter = nil
	m.mu.Unlock()

	if a == nil {
		return nil
	}
	return a.Disconnect()
}
