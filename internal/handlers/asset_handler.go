package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/models"
	"financecontroll/internal/repositories"
)

// AssetHandler handles asset-related requests.
type AssetHandler struct {
	assets repositories.AssetRepositorer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assets repositories.AssetRepositorer) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// CreateAssetRequest represents the request payload for creating an asset.
// Metadata is the raw JSON blob for the asset type; it is validated against
// the type's schema before the asset is stored.
type CreateAssetRequest struct {
	PortfolioID string  `json:"portfolio_id" binding:"required,uuid"`
	Type        string  `json:"type" binding:"required,asset_type"`
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Ticker      string  `json:"ticker" binding:"max=20"`
	Notes       string  `json:"notes" binding:"max=2000"`
	Metadata    *string `json:"metadata"`
}

// UpdateAssetRequest represents the request payload for updating an asset.
type UpdateAssetRequest struct {
	Type     *string `json:"type" binding:"omitempty,asset_type"`
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Ticker   *string `json:"ticker" binding:"omitempty,max=20"`
	Notes    *string `json:"notes" binding:"omitempty,max=2000"`
	Metadata *string `json:"metadata"`
}

// List returns all assets, or only a portfolio's assets when the
// portfolio_id query parameter is given.
func (h *AssetHandler) List(c *gin.Context) {
	if portfolioID := c.Query("portfolio_id"); portfolioID != "" {
		assets, err := h.assets.FindByPortfolioID(portfolioID)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"assets": assets})
		return
	}

	assets, err := h.assets.FindAll()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// Get returns a single asset by ID.
func (h *AssetHandler) Get(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assets.FindByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// Create handles the creation of a new asset.
func (h *AssetHandler) Create(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assets.Create(repositories.CreateAssetInput{
		PortfolioID: req.PortfolioID,
		Type:        models.AssetType(req.Type),
		Name:        req.Name,
		Ticker:      req.Ticker,
		Notes:       req.Notes,
		Metadata:    req.Metadata,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// Update applies a partial update to an asset.
func (h *AssetHandler) Update(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := repositories.UpdateAssetInput{
		Name:     req.Name,
		Ticker:   req.Ticker,
		Notes:    req.Notes,
		Metadata: req.Metadata,
	}
	if req.Type != nil {
		t := models.AssetType(*req.Type)
		input.Type = &t
	}

	asset, err := h.assets.Update(id, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// Delete removes an asset and its ledger.
func (h *AssetHandler) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assets.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted"})
}
