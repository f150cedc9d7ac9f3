package models

import "time"

// Portfolio is the root aggregate. Deleting a portfolio cascades to its
// assets; archiving is a soft-delete that only hides it from default listings.
type Portfolio struct {
	Base
	UserID       *string   `gorm:"type:uuid" json:"user_id,omitempty"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description,omitempty"`
	BaseCurrency string    `gorm:"not null;default:'NOK'" json:"base_currency"`
	IsArchived   bool      `gorm:"not null;default:false" json:"is_archived"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Assets []Asset `gorm:"foreignKey:PortfolioID;constraint:OnDelete:CASCADE" json:"assets,omitempty"`
}
