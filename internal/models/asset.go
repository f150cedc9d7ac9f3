package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType is the closed set of asset categories. The metadata schema an
// asset is validated against is keyed by this type.
type AssetType string

const (
	AssetTypeStartupEquity   AssetType = "startup_equity"
	AssetTypeFund            AssetType = "fund"
	AssetTypeStateObligation AssetType = "state_obligation"
	AssetTypeCrypto          AssetType = "crypto"
	AssetTypePublicEquity    AssetType = "public_equity"
	AssetTypeOther           AssetType = "other"
)

// AssetTypes lists all known asset types.
var AssetTypes = []AssetType{
	AssetTypeStartupEquity,
	AssetTypeFund,
	AssetTypeStateObligation,
	AssetTypeCrypto,
	AssetTypePublicEquity,
	AssetTypeOther,
}

// Asset belongs to exactly one portfolio and owns its transactions and
// valuations. CurrentQuantity and LastValuationDate are cached derived
// fields: the transaction ledger is the source of truth, these only exist so
// listings don't have to re-sum the ledger. They are written exclusively by
// the dedicated cache updaters on AssetRepository.
type Asset struct {
	Base
	PortfolioID string    `gorm:"type:uuid;not null;index:idx_assets_portfolio" json:"portfolio_id"`
	Type        AssetType `gorm:"not null" json:"type"`
	Name        string    `gorm:"not null" json:"name"`
	Ticker      string    `json:"ticker,omitempty"`
	Notes       string    `json:"notes,omitempty"`

	// Metadata holds the serialized, validator-approved attribute bag. Empty
	// means no metadata. Never written without passing metadata.Validate.
	Metadata string `json:"metadata,omitempty"`

	CurrentQuantity   decimal.NullDecimal `gorm:"type:decimal(20,8)" json:"current_quantity"`
	LastValuationDate *time.Time          `gorm:"type:date" json:"last_valuation_date,omitempty"`
	UpdatedAt         time.Time           `json:"updated_at"`

	// Relationships
	Portfolio    *Portfolio    `gorm:"foreignKey:PortfolioID" json:"portfolio,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
	Valuations   []Valuation   `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"valuations,omitempty"`
}

// ValidType reports whether t is one of the known asset types.
func (t AssetType) ValidType() bool {
	switch t {
	case AssetTypeStartupEquity, AssetTypeFund, AssetTypeStateObligation,
		AssetTypeCrypto, AssetTypePublicEquity, AssetTypeOther:
		return true
	}
	return false
}
