package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/repositories"
)

// PortfolioHandler handles portfolio-related requests.
type PortfolioHandler struct {
	portfolios repositories.PortfolioRepositorer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolios repositories.PortfolioRepositorer) *PortfolioHandler {
	return &PortfolioHandler{portfolios: portfolios}
}

// CreatePortfolioRequest represents the request payload for creating a portfolio.
type CreatePortfolioRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Description  string `json:"description" binding:"max=500"`
	BaseCurrency string `json:"base_currency" binding:"omitempty,iso4217"`
}

// UpdatePortfolioRequest represents the request payload for updating a portfolio.
type UpdatePortfolioRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description  *string `json:"description" binding:"omitempty,max=500"`
	BaseCurrency *string `json:"base_currency" binding:"omitempty,iso4217"`
	IsArchived   *bool   `json:"is_archived"`
}

// List returns portfolios, excluding archived ones unless requested.
func (h *PortfolioHandler) List(c *gin.Context) {
	var (
		portfolios interface{}
		err        error
	)
	if c.Query("include_archived") == "true" {
		portfolios, err = h.portfolios.FindAllIncludingArchived()
	} else {
		portfolios, err = h.portfolios.FindAll()
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolios": portfolios})
}

// Get returns a single portfolio by ID.
func (h *PortfolioHandler) Get(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolios.FindByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// Create handles the creation of a new portfolio.
func (h *PortfolioHandler) Create(c *gin.Context) {
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolio, err := h.portfolios.Create(repositories.CreatePortfolioInput{
		Name:         req.Name,
		Description:  req.Description,
		BaseCurrency: req.BaseCurrency,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"portfolio": portfolio})
}

// Update applies a partial update to a portfolio.
func (h *PortfolioHandler) Update(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolio, err := h.portfolios.Update(id, repositories.UpdatePortfolioInput{
		Name:         req.Name,
		Description:  req.Description,
		BaseCurrency: req.BaseCurrency,
		IsArchived:   req.IsArchived,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// Delete removes a portfolio and everything under it.
func (h *PortfolioHandler) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.portfolios.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portfolio deleted"})
}

// Archive soft-hides a portfolio without touching its data.
func (h *PortfolioHandler) Archive(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolios.Archive(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// Unarchive restores an archived portfolio.
func (h *PortfolioHandler) Unarchive(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolios.Unarchive(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}
