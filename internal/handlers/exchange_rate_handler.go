package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/repositories"
)

// ExchangeRateHandler handles exchange-rate requests.
type ExchangeRateHandler struct {
	rates repositories.ExchangeRateRepositorer
}

// NewExchangeRateHandler creates a new ExchangeRateHandler.
func NewExchangeRateHandler(rates repositories.ExchangeRateRepositorer) *ExchangeRateHandler {
	return &ExchangeRateHandler{rates: rates}
}

// UpsertExchangeRateRequest represents the request payload for recording a
// rate. The (from, to, date) triple is the natural key: posting the same
// triple twice overwrites the rate instead of duplicating it.
type UpsertExchangeRateRequest struct {
	FromCurrency string `json:"from_currency" binding:"required,iso4217"`
	ToCurrency   string `json:"to_currency" binding:"required,iso4217"`
	Rate         string `json:"rate" binding:"required,decimal"`
	Date         string `json:"date" binding:"required"`
}

// List returns every stored exchange rate.
func (h *ExchangeRateHandler) List(c *gin.Context) {
	rates, err := h.rates.FindAll()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exchange_rates": rates})
}

// Find looks up the rate for a (from, to, date) triple via query parameters.
// Returns null when no rate is stored for that key.
func (h *ExchangeRateHandler) Find(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from and to query parameters are required"))
		return
	}
	date, err := parseDate("date", c.Query("date"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	rate, err := h.rates.FindByDateAndCurrencies(from, to, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exchange_rate": rate})
}

// Upsert writes the rate for its (from, to, date) key.
func (h *ExchangeRateHandler) Upsert(c *gin.Context) {
	var req UpsertExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rate, err := parseDecimal("rate", req.Rate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stored, err := h.rates.Upsert(repositories.UpsertExchangeRateInput{
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		Rate:         rate,
		Date:         date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exchange_rate": stored})
}

// Delete removes a stored rate.
func (h *ExchangeRateHandler) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.rates.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exchange rate deleted"})
}
