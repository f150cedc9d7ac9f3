package repositories

import (
	"errors"
	"fmt"
	"time"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/metadata"
	"financecontroll/internal/models"
	"financecontroll/internal/storage"

	"gorm.io/gorm"
)

// assetRepository handles asset persistence and gates every metadata write
// through the metadata validator.
type assetRepository struct {
	h storage.Handle
}

// NewAssetRepository creates a new AssetRepositorer over the given storage
// handle.
func NewAssetRepository(h storage.Handle) AssetRepositorer {
	return &assetRepository{h: h}
}

func (r *assetRepository) db() (*gorm.DB, *apperrors.AppError) {
	db := r.h.DB()
	if db == nil {
		return nil, apperrors.ErrStorageNotReady
	}
	return db, nil
}

// FindAll returns every asset, newest first.
func (r *assetRepository) FindAll() ([]models.Asset, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var assets []models.Asset
	if err := db.Order("created_at DESC").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// FindByID returns the asset with the given id.
func (r *assetRepository) FindByID(id string) (*models.Asset, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var asset models.Asset
	if err := db.First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// FindByPortfolioID returns the portfolio's assets, newest first.
func (r *assetRepository) FindByPortfolioID(portfolioID string) ([]models.Asset, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var assets []models.Asset
	if err := db.Where("portfolio_id = ?", portfolioID).
		Order("created_at DESC").
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// validateMetadata runs payload through the metadata validator for the given
// type and surfaces the validator's message verbatim.
func validateMetadata(assetType models.AssetType, payload *string) *apperrors.AppError {
	if _, err := metadata.Validate(assetType, payload); err != nil {
		return apperrors.WithMessage(apperrors.ErrValidation,
			fmt.Sprintf("Invalid metadata: %s", err.Message))
	}
	return nil
}

// Create inserts a new asset. Supplied metadata must pass validation for the
// asset's type; invalid metadata aborts the write entirely.
func (r *assetRepository) Create(input CreateAssetInput) (*models.Asset, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset name is required")
	}
	if !input.Type.ValidType() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("Unknown asset type: %s", input.Type))
	}

	asset := &models.Asset{
		PortfolioID: input.PortfolioID,
		Type:        input.Type,
		Name:        input.Name,
		Ticker:      input.Ticker,
		Notes:       input.Notes,
	}
	if input.Metadata != nil {
		if verr := validateMetadata(input.Type, input.Metadata); verr != nil {
			return nil, verr
		}
		asset.Metadata = *input.Metadata
	}

	if err := db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// Update applies a partial update and stamps a fresh UpdatedAt. Metadata is
// validated against the new type when both change, otherwise against the
// existing one.
func (r *assetRepository) Update(id string, input UpdateAssetInput) (*models.Asset, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	asset, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Metadata != nil {
		assetType := asset.Type
		if input.Type != nil {
			assetType = *input.Type
		}
		if verr := validateMetadata(assetType, input.Metadata); verr != nil {
			return nil, verr
		}
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Ticker != nil {
		updates["ticker"] = *input.Ticker
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.Metadata != nil {
		updates["metadata"] = *input.Metadata
	}

	if err := db.Model(asset).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// Delete removes the asset. The schema's foreign keys cascade the delete to
// its transactions and valuations.
func (r *assetRepository) Delete(id string) error {
	db, nerr := r.db()
	if nerr != nil {
		return nerr
	}

	if err := db.Delete(&models.Asset{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateCachedQuantity refreshes the derived current-quantity cache. It
// writes only that column; generic updates never touch it.
func (r *assetRepository) UpdateCachedQuantity(assetID string, quantity string) error {
	db, nerr := r.db()
	if nerr != nil {
		return nerr
	}

	res := db.Model(&models.Asset{}).
		Where("id = ?", assetID).
		UpdateColumn("current_quantity", quantity)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// UpdateCachedValuationDate refreshes the derived last-valuation-date cache.
func (r *assetRepository) UpdateCachedValuationDate(assetID string, date time.Time) error {
	db, nerr := r.db()
	if nerr != nil {
		return nerr
	}

	res := db.Model(&models.Asset{}).
		Where("id = ?", assetID).
		UpdateColumn("last_valuation_date", date)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}
