// Package testutil provides test helpers for setting up in-memory storage,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"financecontroll/internal/storage"
)

// dbCounter keeps each test's in-memory database isolated from the others.
var dbCounter atomic.Int64

// SetupTestAdapter creates a connected, migrated local adapter backed by a
// private in-memory SQLite database.
func SetupTestAdapter(t *testing.T) *storage.LocalAdapter {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	adapter := storage.NewLocalAdapter(dsn)

	if err := adapter.Connect(); err != nil {
		t.Fatalf("failed to connect test adapter: %v", err)
	}
	if err := adapter.Migrate(); err != nil {
		t.Fatalf("failed to migrate test adapter: %v", err)
	}

	return adapter
}

// TeardownTestAdapter disconnects the adapter, dropping the in-memory
// database with it.
func TeardownTestAdapter(t *testing.T, adapter *storage.LocalAdapter) {
	t.Helper()

	if err := adapter.Disconnect(); err != nil {
		t.Errorf("failed to disconnect test adapter: %v", err)
	}
}
