package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"financecontroll/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestPortfolio creates a portfolio with a unique name and NOK base
// currency.
func CreateTestPortfolio(t *testing.T, db *gorm.DB) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		Name:         fmt.Sprintf("Test Portfolio %d", nextID()),
		BaseCurrency: "NOK",
	}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return portfolio
}

// CreateTestAsset creates an asset of the given type in the portfolio.
func CreateTestAsset(t *testing.T, db *gorm.DB, portfolioID string, assetType models.AssetType) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		PortfolioID: portfolioID,
		Type:        assetType,
		Name:        fmt.Sprintf("Test Asset %d", nextID()),
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestTransaction creates a ledger entry of the given type and
// quantity (a decimal string) dated today.
func CreateTestTransaction(t *testing.T, db *gorm.DB, assetID string, txType models.TransactionType, quantity string) *models.Transaction {
	t.Helper()

	qty, err := decimal.NewFromString(quantity)
	if err != nil {
		t.Fatalf("invalid test quantity %q: %v", quantity, err)
	}

	tx := &models.Transaction{
		AssetID:      assetID,
		Type:         txType,
		Quantity:     qty,
		PricePerUnit: decimal.NewFromInt(100),
		Currency:     "NOK",
		ExchangeRate: decimal.NewFromInt(1),
		Date:         time.Now().Truncate(24 * time.Hour),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestValuation creates a valuation for the asset on the given date.
func CreateTestValuation(t *testing.T, db *gorm.DB, assetID string, date time.Time) *models.Valuation {
	t.Helper()

	valuation := &models.Valuation{
		AssetID:       assetID,
		ValuePerUnit:  decimal.NewFromInt(150),
		Currency:      "NOK",
		ExchangeRate:  decimal.NewFromInt(1),
		ValuationDate: date,
	}
	if err := db.Create(valuation).Error; err != nil {
		t.Fatalf("failed to create test valuation: %v", err)
	}
	return valuation
}
