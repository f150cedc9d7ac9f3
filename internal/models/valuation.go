package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valuation is a point-in-time estimate of an asset's per-unit value.
// Multiple valuations per asset are allowed; "latest" means most recent by
// valuation date.
type Valuation struct {
	Base
	AssetID       string          `gorm:"type:uuid;not null;index:idx_valuations_asset_date,priority:1" json:"asset_id"`
	ValuePerUnit  decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"value_per_unit"`
	Currency      string          `gorm:"not null" json:"currency"`
	ExchangeRate  decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"exchange_rate"`
	ValuationDate time.Time       `gorm:"type:date;not null;index:idx_valuations_asset_date,priority:2,sort:desc" json:"valuation_date"`
	Source        string          `json:"source,omitempty"`
	Notes         string          `json:"notes,omitempty"`

	// Relationships
	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}
