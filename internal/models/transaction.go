package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a ledger entry.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "buy"
	TransactionTypeSell TransactionType = "sell"
)

// Transaction is one entry in an asset's ledger. Quantities and prices are
// exact decimals (decimal(20,8) columns); never stored as binary floats.
//
// Invariant: the running sum of buy quantities minus sell quantities for an
// asset never goes negative. Enforced at sell-creation time against the full
// existing ledger, not the cached total.
type Transaction struct {
	Base
	AssetID      string          `gorm:"type:uuid;not null;index:idx_transactions_asset_date,priority:1" json:"asset_id"`
	Type         TransactionType `gorm:"not null" json:"type"`
	Quantity     decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"quantity"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"price_per_unit"`
	Currency     string          `gorm:"not null" json:"currency"`

	// ExchangeRate converts Currency into the portfolio's base currency at
	// transaction time.
	ExchangeRate decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"exchange_rate"`
	Date         time.Time       `gorm:"type:date;not null;index:idx_transactions_asset_date,priority:2,sort:desc" json:"date"`
	Notes        string          `json:"notes,omitempty"`

	// Relationships
	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}
