package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/models"
	"financecontroll/internal/repositories"
)

// TransactionHandler handles ledger-entry requests.
type TransactionHandler struct {
	transactions repositories.TransactionRepositorer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactions repositories.TransactionRepositorer) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// CreateTransactionRequest represents the request payload for recording a buy
// or sell. Quantities and prices travel as decimal strings so nothing is lost
// to binary floating point on the wire.
type CreateTransactionRequest struct {
	AssetID      string `json:"asset_id" binding:"required,uuid"`
	Type         string `json:"type" binding:"required,transaction_type"`
	Quantity     string `json:"quantity" binding:"required,decimal"`
	PricePerUnit string `json:"price_per_unit" binding:"required,decimal"`
	Currency     string `json:"currency" binding:"omitempty,iso4217"`
	ExchangeRate string `json:"exchange_rate" binding:"omitempty,decimal"`
	Date         string `json:"date" binding:"required"`
	Notes        string `json:"notes" binding:"max=2000"`
}

// UpdateTransactionRequest represents the request payload for amending a
// ledger entry.
type UpdateTransactionRequest struct {
	Quantity     *string `json:"quantity" binding:"omitempty,decimal"`
	PricePerUnit *string `json:"price_per_unit" binding:"omitempty,decimal"`
	Currency     *string `json:"currency" binding:"omitempty,iso4217"`
	ExchangeRate *string `json:"exchange_rate" binding:"omitempty,decimal"`
	Date         *string `json:"date"`
	Notes        *string `json:"notes" binding:"omitempty,max=2000"`
}

// List returns all transactions, or one asset's ledger when the asset_id
// query parameter is given.
func (h *TransactionHandler) List(c *gin.Context) {
	if assetID := c.Query("asset_id"); assetID != "" {
		transactions, err := h.transactions.FindByAssetID(assetID)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": transactions})
		return
	}

	transactions, err := h.transactions.FindAll()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// Get returns a single transaction by ID.
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactions.FindByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// Create records a buy or sell against an asset's ledger. Sells that exceed
// current holdings are rejected.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	quantity, err := parseDecimal("quantity", req.Quantity)
	if err != nil {
		respondWithError(c, err)
		return
	}
	price, err := parseDecimal("price_per_unit", req.PricePerUnit)
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
	date, err := parseDate("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactions.Create(repositories.CreateTransactionInput{
		AssetID:      req.AssetID,
		Type:         models.TransactionType(req.Type),
		Quantity:     quantity,
		PricePerUnit: price,
		Currency:     req.Currency,
		ExchangeRate: rate,
		Date:         date,
		Notes:        req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// Update amends a ledger entry and refreshes the asset's cached quantity.
func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	quantity, err := parseDecimalPtr("quantity", req.Quantity)
	if err != nil {
		respondWithError(c, err)
		return
	}
	price, err := parseDecimalPtr("price_per_unit", req.PricePerUnit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	rate, err := parseDecimalPtr("exchange_rate", req.ExchangeRate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	date, err := parseDatePtr("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactions.Update(id, repositories.UpdateTransactionInput{
		Quantity:     quantity,
		PricePerUnit: price,
		Currency:     req.Currency,
		ExchangeRate: rate,
		Date:         date,
		Notes:        req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// Delete removes a ledger entry and refreshes the asset's cached quantity.
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactions.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// Summary returns the cost-basis totals for one asset's ledger.
func (h *TransactionHandler) Summary(c *gin.Context) {
	assetID, err := parsePathID(c, "assetId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.transactions.GetQuantitySummary(assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
