package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/repositories"
)

// ValuationHandler handles valuation requests.
type ValuationHandler struct {
	valuations repositories.ValuationRepositorer
}

// NewValuationHandler creates a new ValuationHandler.
func NewValuationHandler(valuations repositories.ValuationRepositorer) *ValuationHandler {
	return &ValuationHandler{valuations: valuations}
}

// CreateValuationRequest represents the request payload for recording a
// point-in-time value observation.
type CreateValuationRequest struct {
	AssetID       string `json:"asset_id" binding:"required,uuid"`
	ValuePerUnit  string `json:"value_per_unit" binding:"required,decimal"`
	Currency      string `json:"currency" binding:"omitempty,iso4217"`
	ExchangeRate  string `json:"exchange_rate" binding:"omitempty,decimal"`
	ValuationDate string `json:"valuation_date" binding:"required"`
	Source        string `json:"source" binding:"max=200"`
	Notes         string `json:"notes" binding:"max=2000"`
}

// UpdateValuationRequest represents the request payload for amending a
// valuation.
type UpdateValuationRequest struct {
	ValuePerUnit  *string `json:"value_per_unit" binding:"omitempty,decimal"`
	Currency      *string `json:"currency" binding:"omitempty,iso4217"`
	ExchangeRate  *string `json:"exchange_rate" binding:"omitempty,decimal"`
	ValuationDate *string `json:"valuation_date"`
	Source        *string `json:"source" binding:"omitempty,max=200"`
	Notes         *string `json:"notes" binding:"omitempty,max=2000"`
}

// List returns all valuations, or one asset's history when the asset_id
// query parameter is given.
func (h *ValuationHandler) List(c *gin.Context) {
	if assetID := c.Query("asset_id"); assetID != "" {
		valuations, err := h.valuations.FindByAssetID(assetID)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"valuations": valuations})
		return
	}

	valuations, err := h.valuations.FindAll()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valuations": valuations})
}

// Get returns a single valuation by ID.
func (h *ValuationHandler) Get(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	valuation, err := h.valuations.FindByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valuation": valuation})
}

// Latest returns the most recent valuation for an asset, or null when the
// asset has none.
func (h *ValuationHandler) Latest(c *gin.Context) {
	assetID, err := parsePathID(c, "assetId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	valuation, err := h.valuations.GetLatest(assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valuation": valuation})
}

// Create records a valuation and refreshes the asset's cached valuation date.
func (h *ValuationHandler) Create(c *gin.Context) {
	var req CreateValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	value, err := parseDecimal("value_per_unit", req.ValuePerUnit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	rate := decimal.NewFromInt(1)
	if req.ExchangeRate != "" {
		if rate, err = parseDecimal("exchange_rate", req.ExchangeRate); err != nil {
			respondWithError(c, err)
			return
		}
	}
	date, err := parseDate("valuation_date", req.ValuationDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	valuation, err := h.valuations.Create(repositories.CreateValuationInput{
		AssetID:       req.AssetID,
		ValuePerUnit:  value,
		Currency:      req.Currency,
		ExchangeRate:  rate,
		ValuationDate: date,
		Source:        req.Source,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"valuation": valuation})
}

// Update amends a valuation.
func (h *ValuationHandler) Update(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	value, err := parseDecimalPtr("value_per_unit", req.ValuePerUnit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	rate, err := parseDecimalPtr("exchange_rate", req.ExchangeRate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	date, err := parseDatePtr("valuation_date", req.ValuationDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	valuation, err := h.valuations.Update(id, repositories.UpdateValuationInput{
		ValuePerUnit:  value,
		Currency:      req.Currency,
		ExchangeRate:  rate,
		ValuationDate: date,
		Source:        req.Source,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valuation": valuation})
}

// Delete removes a valuation.
func (h *ValuationHandler) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.valuations.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Valuation deleted"})
}
