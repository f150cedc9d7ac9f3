package repositories

import (
	"errors"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/logger"
	"financecontroll/internal/models"
	"financecontroll/internal/storage"

	"gorm.io/gorm"
)

// valuationRepository handles valuation persistence.
type valuationRepository struct {
	h      storage.Handle
	assets AssetRepositorer
}

// NewValuationRepository creates a new ValuationRepositorer. The asset
// repository is used to refresh the cached last-valuation date.
func NewValuationRepository(h storage.Handle, assets AssetRepositorer) ValuationRepositorer {
	return &valuationRepository{h: h, assets: assets}
}

func (r *valuationRepository) db() (*gorm.DB, *apperrors.AppError) {
	db := r.h.DB()
	if db == nil {
		return nil, apperrors.ErrStorageNotReady
	}
	return db, nil
}

// FindAll returns every valuation, most recent valuation date first.
func (r *valuationRepository) FindAll() ([]models.Valuation, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var valuations []models.Valuation
	if err := db.Order("valuation_date DESC").Find(&valuations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return valuations, nil
}

// FindByID returns the valuation with the given id.
func (r *valuationRepository) FindByID(id string) (*models.Valuation, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var valuation models.Valuation
	if err := db.First(&valuation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrValuationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &valuation, nil
}

// FindByAssetID returns the asset's valuations, most recent date first.
func (r *valuationRepository) FindByAssetID(assetID string) ([]models.Valuation, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var valuations []models.Valuation
	if err := db.Where("asset_id = ?", assetID).
		Order("valuation_date DESC").
		Find(&valuations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return valuations, nil
}

// GetLatest returns the single most-recent-by-date valuation, or nil when
// the asset has none.
func (r *valuationRepository) GetLatest(assetID string) (*models.Valuation, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var valuation models.Valuation
	err := db.Where("asset_id = ?", assetID).
		Order("valuation_date DESC").
		Limit(1).
		Take(&valuation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &valuation, nil
}

// Create inserts a new valuation and refreshes the asset's cached
// last-valuation date.
func (r *valuationRepository) Create(input CreateValuationInput) (*models.Valuation, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	if _, err := r.assets.FindByID(input.AssetID); err != nil {
		return nil, err
	}

	valuation := &models.Valuation{
		AssetID:       input.AssetID,
		ValuePerUnit:  input.ValuePerUnit,
		Currency:      input.Currency,
		ExchangeRate:  input.ExchangeRate,
		ValuationDate: input.ValuationDate,
		Source:        input.Source,
		Notes:         input.Notes,
	}
	if err := db.Create(valuation).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	r.refreshCachedValuationDate(input.AssetID)
	return valuation, nil
}

// refreshCachedValuationDate rewrites the asset's derived last-valuation date
// from whatever is now latest. The cache is an optimization; a failed refresh
// is logged rather than failing the valuation write.
func (r *valuationRepository) refreshCachedValuationDate(assetID string) {
	latest, err := r.GetLatest(assetID)
	if err != nil || latest == nil {
		return
	}
	if uerr := r.assets.UpdateCachedValuationDate(assetID, latest.ValuationDate); uerr != nil {
		logger.Get().Warnw("failed to refresh cached valuation date",
			"asset_id", assetID,
			"error", uerr,
		)
	}
}

// Update applies a partial update to a valuation.
func (r *valuationRepository) Update(id string, input UpdateValuationInput) (*models.Valuation, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	valuation, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.ValuePerUnit != nil {
		updates["value_per_unit"] = *input.ValuePerUnit
	}
	if input.Currency != nil {
		updates["currency"] = *input.Currency
	}
	if input.ExchangeRate != nil {
		updates["exchange_rate"] = *input.ExchangeRate
	}
	if input.ValuationDate != nil {
		updates["valuation_date"] = *input.ValuationDate
	}
	if input.Source != nil {
		updates["source"] = *input.Source
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return valuation, nil
	}

	if err := db.Model(valuation).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	r.refreshCachedValuationDate(valuation.AssetID)
	return valuation, nil
}

// Delete removes a valuation.
func (r *valuationRepository) Delete(id string) error {
	db, nerr := r.db()
	if nerr != nil {
		return nerr
	}

	if err := db.Delete(&models.Valuation{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
