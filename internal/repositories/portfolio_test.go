package repositories

import (
	"testing"

	"financecontroll/internal/models"
	"financecontroll/internal/storage"
	"financecontroll/internal/testutil"
)

func TestPortfolioCreate(t *testing.T) {
	t.Run("defaults_to_nok", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewPortfolioRepository(adapter)

		portfolio, err := repo.Create(CreatePortfolioInput{Name: "Langsiktig"})
		testutil.AssertNoError(t, err)

		if portfolio.ID == "" {
			t.Error("expected a generated id")
		}
		if portfolio.BaseCurrency != "NOK" {
			t.Errorf("expected NOK default currency, got %s", portfolio.BaseCurrency)
		}
		if portfolio.IsArchived {
			t.Error("new portfolio must not be archived")
		}
	})

	t.Run("explicit_currency", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewPortfolioRepository(adapter)

		portfolio, err := repo.Create(CreatePortfolioInput{Name: "USD Portfolio", BaseCurrency: "USD"})
		testutil.AssertNoError(t, err)
		if portfolio.BaseCurrency != "USD" {
			t.Errorf("expected USD, got %s", portfolio.BaseCurrency)
		}
	})

	t.Run("name_required", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewPortfolioRepository(adapter)

		_, err := repo.Create(CreatePortfolioInput{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestPortfolioFind(t *testing.T) {
	t.Run("find_all_excludes_archived", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewPortfolioRepository(adapter)

		visible, err := repo.Create(CreatePortfolioInput{Name: "Visible"})
		testutil.AssertNoError(t, err)
		hidden, err := repo.Create(CreatePortfolioInput{Name: "Hidden"})
		testutil.AssertNoError(t, err)
		_, err = repo.Archive(hidden.ID)
		testutil.AssertNoError(t, err)

		listed, err := repo.FindAll()
		testutil.AssertNoError(t, err)
		if len(listed) != 1 || listed[0].ID != visible.ID {
			t.Errorf("expected only the visible portfolio, got %+v", listed)
		}

		all, err := repo.FindAllIncludingArchived()
		testutil.AssertNoError(t, err)
		if len(all) != 2 {
			t.Errorf("expected both portfolios, got %d", len(all))
		}
	})

	t.Run("find_by_id_not_found", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewPortfolioRepository(adapter)

		_, err := repo.FindByID("0198e9c1-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "PORTFOLIO_NOT_FOUND")
	})

	t.Run("archived_still_addressable", func(t *testing.T) {
		adapter := testutil.SetupTestAdapter(t)
		defer testutil.TeardownTestAdapter(t, adapter)
		repo := NewPortfolioRepository(adapter)

		portfolio, err := repo.Create(CreatePortfolioInput{Name: "Old"})
		testutil.AssertNoError(t, err)
		_, err = repo.Archive(portfolio.ID)
		testutil.AssertNoError(t, err)

		found, err := repo.FindByID(portfolio.ID)
		testutil.AssertNoError(t, err)
		if !found.IsArchived {
			t.Error("expected archived flag on fetched portfolio")
		}
	})
}

func TestPortfolioUpdate(t *testing.T) {
	adapter := testutil.SetupTestAdapter(t)
	defer testutil.TeardownTestAdapter(t, adapter)
	repo := NewPortfolioRepository(adapter)

	portfolio, err := repo.Create(CreatePortfolioInput{Name: "Before", Description: "original"})
	testutil.AssertNoError(t, err)

	name := "After"
	updated, err := repo.Update(portfolio.ID, UpdatePortfolioInput{Name: &name})
	testutil.AssertNoError(t, err)

	if updated.Name != "After" {
		t.Errorf("expected updated name, got %s", updated.Name)
	}
	if updated.Description != "original" {
		t.Errorf("expected untouched description, got %s", updated.Description)
	}
}

func TestPortfolioArchiveRoundTrip(t *testing.T) {
	adapter := testutil.SetupTestAdapter(t)
	defer testutil.TeardownTestAdapter(t, adapter)
	repo := NewPortfolioRepository(adapter)

	portfolio, err := repo.Create(CreatePortfolioInput{Name: "Seasonal"})
	testutil.AssertNoError(t, err)
	asset := testutil.CreateTestAsset(t, adapter.DB(), portfolio.ID, models.AssetTypeFund)

	_, err = repo.Archive(portfolio.ID)
	testutil.AssertNoError(t, err)

	// Archiving hides the portfolio but keeps its assets intact.
	var count int64
	testutil.AssertNoError(t, adapter.DB().Model(&models.Asset{}).Where("id = ?", asset.ID).Count(&count).Error)
	if count != 1 {
		t.Error("expected archived portfolio's asset to survive")
	}

	restored, err := repo.Unarchive(portfolio.ID)
	testutil.AssertNoError(t, err)
	if restored.IsArchived {
		t.Error("expected unarchived portfolio")
	}
}

func TestPortfolioDeleteCascades(t *testing.T) {
	adapter := testutil.SetupTestAdapter(t)
	defer testutil.TeardownTestAdapter(t, adapter)
	repo := NewPortfolioRepository(adapter)
	db := adapter.DB()

	portfolio, err := repo.Create(CreatePortfolioInput{Name: "Doomed"})
	testutil.AssertNoError(t, err)
	asset := testutil.CreateTestAsset(t, db, portfolio.ID, models.AssetTypeCrypto)
	testutil.CreateTestTransaction(t, db, asset.ID, models.TransactionTypeBuy, "1")

	testutil.AssertNoError(t, repo.Delete(portfolio.ID))

	var assets, transactions int64
	testutil.AssertNoError(t, db.Model(&models.Asset{}).Count(&assets).Error)
	testutil.AssertNoError(t, db.Model(&models.Transaction{}).Count(&transactions).Error)
	if assets != 0 || transactions != 0 {
		t.Errorf("expected cascade to remove children, got %d assets, %d transactions", assets, transactions)
	}
}

func TestPortfolioStorageNotReady(t *testing.T) {
	manager := storage.NewManager(nil, "")
	repo := NewPortfolioRepository(manager)

	_, err := repo.FindAll()
	testutil.AssertAppError(t, err, "STORAGE_NOT_READY")

	_, err = repo.Create(CreatePortfolioInput{Name: "X"})
	testutil.AssertAppError(t, err, "STORAGE_NOT_READY")
}
