package repositories

import (
	"errors"

	"financecontroll/internal/costbasis"
	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/logger"
	"financecontroll/internal/models"
	"financecontroll/internal/storage"

	"gorm.io/gorm"
)

// transactionRepository handles the ledger and enforces the overselling
// invariant at write time.
type transactionRepository struct {
	h      storage.Handle
	assets AssetRepositorer
}

// NewTransactionRepository creates a new TransactionRepositorer. The asset
// repository is used to refresh the cached quantity after ledger changes.
func NewTransactionRepository(h storage.Handle, assets AssetRepositorer) TransactionRepositorer {
	return &transactionRepository{h: h, assets: assets}
}

func (r *transactionRepository) db() (*gorm.DB, *apperrors.AppError) {
	db := r.h.DB()
	if db == nil {
		return nil, apperrors.ErrStorageNotReady
	}
	return db, nil
}

// FindAll returns the entire ledger, most recent transaction date first.
func (r *transactionRepository) FindAll() ([]models.Transaction, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var transactions []models.Transaction
	if err := db.Order("date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// FindByID returns the transaction with the given id.
func (r *transactionRepository) FindByID(id string) (*models.Transaction, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var tx models.Transaction
	if err := db.First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

// FindByAssetID returns the asset's full ledger, most recent date first.
func (r *transactionRepository) FindByAssetID(assetID string) ([]models.Transaction, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var transactions []models.Transaction
	if err := db.Where("asset_id = ?", assetID).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// Create appends a ledger entry. A sell is checked against the asset's full
// existing ledger first: holdings may never go negative, and a rejected sell
// leaves no trace. The check-then-insert is safe under this system's
// single-writer model; a shared multi-writer backend needs it upgraded to an
// atomic conditional write before production use.
func (r *transactionRepository) Create(input CreateTransactionInput) (*models.Transaction, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	if !input.Quantity.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity must be positive")
	}
	if input.Type != models.TransactionTypeBuy && input.Type != models.TransactionTypeSell {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Transaction type must be buy or sell")
	}

	// The asset must exist; a dangling ledger entry is never acceptable.
	if _, err := r.assets.FindByID(input.AssetID); err != nil {
		return nil, err
	}

	ledger, err := r.FindByAssetID(input.AssetID)
	if err != nil {
		return nil, err
	}

	if input.Type == models.TransactionTypeSell {
		var current *string
		if len(ledger) > 0 {
			summary := costbasis.Summarize(ledger)
			current = &summary.CurrentQuantity
		}
		if verr := costbasis.CanSell(current, input.Quantity); verr != nil {
			return nil, verr
		}
	}

	tx := &models.Transaction{
		AssetID:      input.AssetID,
		Type:         input.Type,
		Quantity:     input.Quantity,
		PricePerUnit: input.PricePerUnit,
		Currency:     input.Currency,
		ExchangeRate: input.ExchangeRate,
		Date:         input.Date,
		Notes:        input.Notes,
	}
	if err := db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	r.refreshCachedQuantity(input.AssetID, append(ledger, *tx))
	return tx, nil
}

// refreshCachedQuantity recomputes and writes the asset's derived quantity
// cache. The cache is an optimization, not a source of truth, so a failed
// refresh is logged rather than failing the ledger write that triggered it.
func (r *transactionRepository) refreshCachedQuantity(assetID string, ledger []models.Transaction) {
	summary := costbasis.Summarize(ledger)
	if err := r.assets.UpdateCachedQuantity(assetID, summary.CurrentQuantity); err != nil {
		logger.Get().Warnw("failed to refresh cached quantity",
			"asset_id", assetID,
			"error", err,
		)
	}
}

// Update applies a partial update to a ledger entry.
func (r *transactionRepository) Update(id string, input UpdateTransactionInput) (*models.Transaction, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	tx, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Quantity != nil {
		updates["quantity"] = *input.Quantity
	}
	if input.PricePerUnit != nil {
		updates["price_per_unit"] = *input.PricePerUnit
	}
	if input.Currency != nil {
		updates["currency"] = *input.Currency
	}
	if input.ExchangeRate != nil {
		updates["exchange_rate"] = *input.ExchangeRate
	}
	if input.Date != nil {
		updates["date"] = *input.Date
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return tx, nil
	}

	if err := db.Model(tx).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if ledger, lerr := r.FindByAssetID(tx.AssetID); lerr == nil {
		r.refreshCachedQuantity(tx.AssetID, ledger)
	}
	return tx, nil
}

// Delete removes a ledger entry and refreshes the asset's quantity cache.
func (r *transactionRepository) Delete(id string) error {
	db, nerr := r.db()
	if nerr != nil {
		return nerr
	}

	tx, err := r.FindByID(id)
	if err != nil {
		return err
	}

	if err := db.Delete(&models.Transaction{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if ledger, lerr := r.FindByAssetID(tx.AssetID); lerr == nil {
		r.refreshCachedQuantity(tx.AssetID, ledger)
	}
	return nil
}

// GetQuantitySummary sums the asset's ledger through the cost-basis engine.
func (r *transactionRepository) GetQuantitySummary(assetID string) (costbasis.Summary, error) {
	ledger, err := r.FindByAssetID(assetID)
	if err != nil {
		return costbasis.Summary{}, err
	}
	return costbasis.Summarize(ledger), nil
}
