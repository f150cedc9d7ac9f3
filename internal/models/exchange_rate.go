package models

import (
	"time"

	"financecontroll/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExchangeRate stores one conversion rate per (from, to, date) key. Writes
// for an existing key overwrite the rate rather than duplicating the row.
type ExchangeRate struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	FromCurrency string          `gorm:"not null;uniqueIndex:currency_date_idx,priority:1" json:"from_currency"`
	ToCurrency   string          `gorm:"not null;uniqueIndex:currency_date_idx,priority:2" json:"to_currency"`
	Rate         decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"rate"`
	Date         time.Time       `gorm:"type:date;not null;uniqueIndex:currency_date_idx,priority:3" json:"date"`
}

// BeforeCreate hook generates a UUIDv7 for new records. ExchangeRate does not
// embed Base because it carries no creation timestamp.
func (r *ExchangeRate) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}
