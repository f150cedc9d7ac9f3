package repositories

import (
	"testing"
	"time"

	"financecontroll/internal/models"
	"financecontroll/internal/testutil"
)

func strp(s string) *string { return &s }

func TestAssetCreate(t *testing.T) {
	t.Run("minimal", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewAssetRepository(adapter)
		portfolio := testutil.CreateTestPortfolio(t, adapter.DB())

		asset, err := repo.Create(CreateAssetInput{
			PortfolioID: portfolio.ID,
			Type:        models.AssetTypeCrypto,
			Name:        "Bitcoin",
			Ticker:      "BTC",
		})
		testutil.AssertNoError(t, err)

		if asset.ID == "" {
			t.Error("expected a generated id")
		}
		if asset.CurrentQuantity.Valid {
			t.Error("new asset must have no cached quantity")
		}
		if asset.LastValuationDate != nil {
			t.Error("new asset must have no cached valuation date")
		}
	})

	t.Run("name_required", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewAssetRepository(adapter)
		portfolio := testutil.CreateTestPortfolio(t, adapter.DB())

		_, err := repo.Create(CreateAssetInput{PortfolioID: portfolio.ID, Type: models.AssetTypeFund})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_type_rejected", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewAssetRepository(adapter)
		portfolio := testutil.CreateTestPortfolio(t, adapter.DB())

		_, err := repo.Create(CreateAssetInput{PortfolioID: portfolio.ID, Type: "yacht", Name: "Boat"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		testutil.AssertErrorMessage(t, err, "Unknown asset type: yacht")
	})

	t.Run("valid_metadata_stored", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewAssetRepository(adapter)
		portfolio := testutil.CreateTestPortfolio(t, adapter.DB())

		asset, err := repo.Create(CreateAssetInput{
			PortfolioID: portfolio.ID,
			Type:        models.AssetTypePublicEquity,
			Name:        "Equinor",
			Metadata:    strp(`{"exchange":"OSE","sector":"Energy"}`),
		})
		testutil.AssertNoError(t, err)
		if asset.Metadata == "" {
			t.Error("expected metadata to be stored")
		}
	})

	t.Run("invalid_metadata_aborts_write", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewAssetRepository(adapter)
		portfolio := testutil.CreateTestPortfolio(t, adapter.DB())

		_, err := repo.Create(CreateAssetInput{
			PortfolioID: portfolio.ID,
			Type:        models.AssetTypeCrypto,
			Name:        "Mystery Coin",
			Metadata:    strp(`{"sharesOutstanding":100}`),
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")

		var count int64
		testutil.AssertNoError(t, adapter.DB().Model(&models.Asset{}).Count(&count).Error)
		if count != 0 {
			t.Error("expected rejected asset not to be written")
		}
	})
}

func TestAssetUpdate(t *testing.T) {
	t.Run("metadata_validated_against_new_type", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewAssetRepository(adapter)
		portfolio := testutil.CreateTestPortfolio(t, adapter.DB())
		asset := testutil.CreateTestAsset(t, adapter.DB(), portfolio.ID, models.AssetTypeCrypto)

		// Crypto metadata paired with a fund type change must fail.
		fund := models.AssetTypeFund
		_, err := repo.Update(asset.ID, UpdateAssetInput{
			Type:     &fund,
			Metadata: strp(`{"walletAddress":"0xabc"}`),
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")

		// The same pair the other way around is fine.
		_, err = repo.Update(asset.ID, UpdateAssetInput{
			Type:     &fund,
			Metadata: strp(`{"vintageYear":2021}`),
		})
		testutil.AssertNoError(t, err)
	})

	t.Run("metadata_validated_against_existing_type", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewAssetRepository(adapter)
		portfolio := testutil.CreateTestPortfolio(t, adapter.DB())
		asset := testutil.CreateTestAsset(t, adapter.DB(), portfolio.ID, models.AssetTypeCrypto)

		_, err := repo.Update(asset.ID, UpdateAssetInput{Metadata: strp(`{"network":"mainnet"}`)})
		testutil.AssertNoError(t, err)
	})

	t.Run("not_found", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewAssetRepository(adapter)

		name := "Renamed"
		_, err := repo.Update("0198e9c1-0000-7000-8000-000000000000", UpdateAssetInput{Name: &name})
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}

func TestAssetCachedFields(t *testing.T) {
	t.Run("update_cached_quantity", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewAssetRepository(adapter)
		portfolio := testutil.CreateTestPortfolio(t, adapter.DB())
		asset := testutil.CreateTestAsset(t, adapter.DB(), portfolio.ID, models.AssetTypeCrypto)

		testutil.AssertNoError(t, repo.UpdateCachedQuantity(asset.ID, "42.50000000"))

		found, err := repo.FindByID(asset.ID)
		testutil.AssertNoError(t, err)
		if !found.CurrentQuantity.Valid || found.CurrentQuantity.Decimal.StringFixed(8) != "42.50000000" {
			t.Errorf("cached quantity not written: %+v", found.CurrentQuantity)
		}
	})

	t.Run("update_cached_valuation_date", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewAssetRepository(adapter)
		portfolio := testutil.CreateTestPortfolio(t, adapter.DB())
		asset := testutil.CreateTestAsset(t, adapter.DB(), portfolio.ID, models.AssetTypeFund)

		date := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
		testutil.AssertNoError(t, repo.UpdateCachedValuationDate(asset.ID, date))

		found, err := repo.FindByID(asset.ID)
		testutil.AssertNoError(t, err)
		if found.LastValuationDate == nil || !found.LastValuationDate.Equal(date) {
			t.Errorf("cached valuation date not written: %v", found.LastValuationDate)
		}
	})

	t.Run("cache_writes_report_missing_asset", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewAssetRepository(adapter)

		err := repo.UpdateCachedQuantity("0198e9c1-0000-7000-8000-000000000000", "1.00000000")
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}
