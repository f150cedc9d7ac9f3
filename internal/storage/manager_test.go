package storage_test

import (
	"path/filepath"
	"testing"

	"financecontroll/internal/models"
	"financecontroll/internal/storage"
	"financecontroll/internal/testutil"
)

func TestManagerSwitchMode(t *testing.T) {
	t.Run("starts_without_backend", func(t *testing.T) {
		manager := storage.NewManager(nil, "")

		if manager.DB() != nil {
			t.Error("expected nil handle before a mode is chosen")
		}
		if _, ok := manager.Mode(); ok {
			t.Error("expected no active mode before a switch")
		}
		if manager.Ping() {
			t.Error("expected ping to fail with no backend")
		}
	})

	t.Run("switch_to_local", func(t *testing.T) {
		manager := storage.NewManager(nil, filepath.Join(t.TempDir(), "test.db"))
		defer manager.Close()

		err := manager.SwitchMode(storage.Config{Mode: storage.ModeLocal})
		testutil.AssertNoError(t, err)

		if manager.DB() == nil {
			t.Fatal("expected a live handle after switching to local")
		}
		mode, ok := manager.Mode()
		if !ok || mode != storage.ModeLocal {
			t.Errorf("expected active local mode, got %s (%v)", mode, ok)
		}
		if !manager.Ping() {
			t.Error("expected ping to succeed after switch")
		}

		// Schema is migrated as part of the switch.
		var count int64
		testutil.AssertNoError(t, manager.DB().Model(&models.Portfolio{}).Count(&count).Error)
	})

	t.Run("failed_switch_leaves_no_backend", func(t *testing.T) {
		manager := storage.NewManager(nil, filepath.Join(t.TempDir(), "test.db"))
		defer manager.Close()

		testutil.AssertNoError(t, manager.SwitchMode(storage.Config{Mode: storage.ModeLocal}))

		err := manager.SwitchMode(storage.Config{Mode: storage.ModePostgres})
		testutil.AssertAppError(t, err, "CONFIGURATION_ERROR")

		if manager.DB() != nil {
			t.Error("expected nil handle after a failed switch")
		}
		if _, ok := manager.Mode(); ok {
			t.Error("expected no active mode after a failed switch")
		}
	})

	t.Run("switch_persists_choice", func(t *testing.T) {
		dir := t.TempDir()
		store := storage.NewModeStore(dir)

		manager := storage.NewManager(store, filepath.Join(dir, "test.db"))
		testutil.AssertNoError(t, manager.SwitchMode(storage.Config{Mode: storage.ModeLocal}))
		testutil.AssertNoError(t, manager.Close())

		cfg, ok := store.Load()
		if !ok {
			t.Fatal("expected mode choice to be persisted")
		}
		if cfg.Mode != storage.ModeLocal {
			t.Errorf("expected persisted local mode, got %s", cfg.Mode)
		}
	})

	t.Run("restore_reconnects_persisted_mode", func(t *testing.T) {
		dir := t.TempDir()
		store := storage.NewModeStore(dir)
		path := filepath.Join(dir, "test.db")

		first := storage.NewManager(store, path)
		testutil.AssertNoError(t, first.SwitchMode(storage.Config{Mode: storage.ModeLocal}))
		portfolio := testutil.CreateTestPortfolio(t, first.DB())
		testutil.AssertNoError(t, first.Close())

		second := storage.NewManager(store, path)
		defer second.Close()

		restored, err := second.Restore()
		testutil.AssertNoError(t, err)
		if !restored {
			t.Fatal("expected restore to find the persisted mode")
		}

		var found models.Portfolio
		testutil.AssertNoError(t, second.DB().First(&found, "id = ?", portfolio.ID).Error)
	})

	t.Run("restore_without_persisted_mode", func(t *testing.T) {
		manager := storage.NewManager(storage.NewModeStore(t.TempDir()), "")

		restored, err := manager.Restore()
		testutil.AssertNoError(t, err)
		if restored {
			t.Error("expected nothing to restore from a fresh store")
		}
	})
}
