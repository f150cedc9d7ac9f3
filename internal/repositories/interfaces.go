// Package repositories is the domain-facing persistence layer: one repository
// per entity, each a thin façade over the active storage adapter's query
// handle. This is the only layer that enforces domain invariants (cost-basis
// integrity, metadata validation, cached aggregates) on top of storage.
package repositories

import (
	"time"

	"financecontroll/internal/costbasis"
	"financecontroll/internal/models"

	"github.com/shopspring/decimal"
)

// CreatePortfolioInput carries the fields for a new portfolio. BaseCurrency
// defaults to NOK when empty.
type CreatePortfolioInput struct {
	Name         string
	Description  string
	BaseCurrency string
	UserID       *string
}

// UpdatePortfolioInput is a partial update; nil fields are left untouched.
type UpdatePortfolioInput struct {
	Name         *string
	Description  *string
	BaseCurrency *string
	IsArchived   *bool
}

// PortfolioRepositorer defines the portfolio persistence contract.
type PortfolioRepositorer interface {
	// FindAll returns non-archived portfolios, newest first.
	FindAll() ([]models.Portfolio, error)
	// FindAllIncludingArchived bypasses the archived filter.
	FindAllIncludingArchived() ([]models.Portfolio, error)
	FindByID(id string) (*models.Portfolio, error)
	Create(input CreatePortfolioInput) (*models.Portfolio, error)
	Update(id string, input UpdatePortfolioInput) (*models.Portfolio, error)
	// Delete removes the portfolio and cascades to its assets, transactions
	// and valuations.
	Delete(id string) error
	Archive(id string) (*models.Portfolio, error)
	Unarchive(id string) (*models.Portfolio, error)
}

// CreateAssetInput carries the fields for a new asset. Metadata, when
// present, must pass the metadata validator for the asset's type.
type CreateAssetInput struct {
	PortfolioID string
	Type        models.AssetType
	Name        string
	Ticker      string
	Notes       string
	Metadata    *string
}

// UpdateAssetInput is a partial update; nil fields are left untouched.
type UpdateAssetInput struct {
	Type     *models.AssetType
	Name     *string
	Ticker   *string
	Notes    *string
	Metadata *string
}

// AssetRepositorer defines the asset persistence contract.
type AssetRepositorer interface {
	FindAll() ([]models.Asset, error)
	FindByID(id string) (*models.Asset, error)
	FindByPortfolioID(portfolioID string) ([]models.Asset, error)
	Create(input CreateAssetInput) (*models.Asset, error)
	Update(id string, input UpdateAssetInput) (*models.Asset, error)
	Delete(id string) error

	// UpdateCachedQuantity and UpdateCachedValuationDate are the only writers
	// of the derived cache fields. The ledger stays the source of truth.
	UpdateCachedQuantity(assetID string, quantity string) error
	UpdateCachedValuationDate(assetID string, date time.Time) error
}

// CreateTransactionInput carries the fields for a new ledger entry.
type CreateTransactionInput struct {
	AssetID      string
	Type         models.TransactionType
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	Currency     string
	ExchangeRate decimal.Decimal
	Date         time.Time
	Notes        string
}

// UpdateTransactionInput is a partial update; nil fields are left untouched.
type UpdateTransactionInput struct {
	Quantity     *decimal.Decimal
	PricePerUnit *decimal.Decimal
	Currency     *string
	ExchangeRate *decimal.Decimal
	Date         *time.Time
	Notes        *string
}

// TransactionRepositorer defines the ledger persistence contract.
type TransactionRepositorer interface {
	FindAll() ([]models.Transaction, error)
	FindByID(id string) (*models.Transaction, error)
	FindByAssetID(assetID string) ([]models.Transaction, error)
	// Create rejects a sell that would exceed current holdings, checked
	// against the asset's full existing ledger.
	Create(input CreateTransactionInput) (*models.Transaction, error)
	Update(id string, input UpdateTransactionInput) (*models.Transaction, error)
	Delete(id string) error
	// GetQuantitySummary sums the asset's ledger through the cost-basis
	// engine.
	GetQuantitySummary(assetID string) (costbasis.Summary, error)
}

// CreateValuationInput carries the fields for a new valuation.
type CreateValuationInput struct {
	AssetID       string
	ValuePerUnit  decimal.Decimal
	Currency      string
	ExchangeRate  decimal.Decimal
	ValuationDate time.Time
	Source        string
	Notes         string
}

// UpdateValuationInput is a partial update; nil fields are left untouched.
type UpdateValuationInput struct {
	ValuePerUnit  *decimal.Decimal
	Currency      *string
	ExchangeRate  *decimal.Decimal
	ValuationDate *time.Time
	Source        *string
	Notes         *string
}

// ValuationRepositorer defines the valuation persistence contract.
type ValuationRepositorer interface {
	FindAll() ([]models.Valuation, error)
	FindByID(id string) (*models.Valuation, error)
	FindByAssetID(assetID string) ([]models.Valuation, error)
	// GetLatest returns the most-recent-by-date valuation, or nil when the
	// asset has none.
	GetLatest(assetID string) (*models.Valuation, error)
	Create(input CreateValuationInput) (*models.Valuation, error)
	Update(id string, input UpdateValuationInput) (*models.Valuation, error)
	Delete(id string) error
}

// UpsertExchangeRateInput identifies a rate by its (from, to, date) key.
type UpsertExchangeRateInput struct {
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
	Date         time.Time
}

// ExchangeRateRepositorer defines the exchange-rate persistence contract.
type ExchangeRateRepositorer interface {
	FindAll() ([]models.ExchangeRate, error)
	FindByID(id string) (*models.ExchangeRate, error)
	// FindByDateAndCurrencies returns the rate for the unique key, or nil
	// when absent.
	FindByDateAndCurrencies(from, to string, date time.Time) (*models.ExchangeRate, error)
	// Upsert writes the rate for its key: update in place when present,
	// create otherwise. Exactly one row per key either way.
	Upsert(input UpsertExchangeRateInput) (*models.ExchangeRate, error)
	Delete(id string) error
}
