package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/storage"
)

// modeCookie mirrors the active storage mode to the client so the UI can
// render the right backend without an extra round trip.
const modeCookie = "storage-mode"

// StorageHandler exposes the storage-mode lifecycle: which backend is active,
// switching backends, and moving data between them via snapshots.
type StorageHandler struct {
	manager *storage.Manager
}

// NewStorageHandler creates a new StorageHandler.
func NewStorageHandler(manager *storage.Manager) *StorageHandler {
	return &StorageHandler{manager: manager}
}

// SwitchModeRequest represents the request payload for selecting a storage
// backend. Credentials are required only for the modes that need them.
type SwitchModeRequest struct {
	Mode             string `json:"mode" binding:"required,oneof=local postgres supabase"`
	ConnectionString string `json:"connection_string"`
	SupabaseURL      string `json:"supabase_url"`
	SupabaseAnonKey  string `json:"supabase_anon_key"`
}

// Health reports liveness of the process and of the active storage backend.
func (h *StorageHandler) Health(c *gin.Context) {
	mode, active := h.manager.Mode()

	st := gin.H{"active": active, "connected": h.manager.Ping()}
	if active {
		st["mode"] = mode
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": st})
}

// GetMode returns the active storage mode, or null when none has been chosen.
func (h *StorageHandler) GetMode(c *gin.Context) {
	mode, active := h.manager.Mode()
	if !active {
		c.JSON(http.StatusOK, gin.H{"mode": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mode": mode, "connected": h.manager.Ping()})
}

// SwitchMode switches the active storage backend. On success the choice is
// persisted and mirrored into the storage-mode cookie.
func (h *StorageHandler) SwitchMode(c *gin.Context) {
	var req SwitchModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cfg := storage.Config{
		Mode:             storage.Mode(req.Mode),
		ConnectionString: req.ConnectionString,
		SupabaseURL:      req.SupabaseURL,
		SupabaseAnonKey:  req.SupabaseAnonKey,
	}
	if err := h.manager.SwitchMode(cfg); err != nil {
		respondWithError(c, err)
		return
	}

	c.SetCookie(modeCookie, req.Mode, 0, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"mode": req.Mode})
}

// Export dumps every entity table from the active backend as a versioned
// snapshot.
func (h *StorageHandler) Export(c *gin.Context) {
	adapter := h.manager.Adapter()
	if adapter == nil {
		respondWithError(c, apperrors.ErrStorageNotReady)
		return
	}

	snap, err := adapter.ExportData()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// Import replaces the active backend's data with the posted snapshot.
func (h *StorageHandler) Import(c *gin.Context) {
	adapter := h.manager.Adapter()
	if adapter == nil {
		respondWithError(c, apperrors.ErrStorageNotReady)
		return
	}

	var snap storage.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if snap.Version == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Snapshot version is required"))
		return
	}

	if err := adapter.ImportData(&snap); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Snapshot imported"})
}
