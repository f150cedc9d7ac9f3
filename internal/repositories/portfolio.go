package repositories

import (
	"errors"
	"time"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/models"
	"financecontroll/internal/storage"

	"gorm.io/gorm"
)

// portfolioRepository handles portfolio persistence.
type portfolioRepository struct {
	h storage.Handle
}

// NewPortfolioRepository creates a new PortfolioRepositorer over the given
// storage handle.
func NewPortfolioRepository(h storage.Handle) PortfolioRepositorer {
	return &portfolioRepository{h: h}
}

// db returns the active query handle, or a not-ready error while no backend
// is connected (e.g. during a mode switch).
func (r *portfolioRepository) db() (*gorm.DB, *apperrors.AppError) {
	db := r.h.DB()
	if db == nil {
		return nil, apperrors.ErrStorageNotReady
	}
	return db, nil
}

// FindAll returns non-archived portfolios, newest first.
func (r *portfolioRepository) FindAll() ([]models.Portfolio, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var portfolios []models.Portfolio
	if err := db.Where("is_archived = ?", false).
		Order("created_at DESC").
		Find(&portfolios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return portfolios, nil
}

// FindAllIncludingArchived returns every portfolio, newest first.
func (r *portfolioRepository) FindAllIncludingArchived() ([]models.Portfolio, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var portfolios []models.Portfolio
	if err := db.Order("created_at DESC").Find(&portfolios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return portfolios, nil
}

// FindByID returns the portfolio with the given id, archived or not.
func (r *portfolioRepository) FindByID(id string) (*models.Portfolio, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var portfolio models.Portfolio
	if err := db.First(&portfolio, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &portfolio, nil
}

// Create inserts a new portfolio.
func (r *portfolioRepository) Create(input CreatePortfolioInput) (*models.Portfolio, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Portfolio name is required")
	}

	currency := input.BaseCurrency
	if currency == "" {
		currency = "NOK"
	}

	portfolio := &models.Portfolio{
		UserID:       input.UserID,
		Name:         input.Name,
		Description:  input.Description,
		BaseCurrency: currency,
	}
	if err := db.Create(portfolio).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return portfolio, nil
}

// Update applies a partial update and stamps a fresh UpdatedAt.
func (r *portfolioRepository) Update(id string, input UpdatePortfolioInput) (*models.Portfolio, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	portfolio, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.BaseCurrency != nil {
		updates["base_currency"] = *input.BaseCurrency
	}
	if input.IsArchived != nil {
		updates["is_archived"] = *input.IsArchived
	}

	if err := db.Model(portfolio).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return portfolio, nil
}

// Delete removes the portfolio. The schema's foreign keys cascade the delete
// to assets, transactions and valuations.
func (r *portfolioRepository) Delete(id string) error {
	db, nerr := r.db()
	if nerr != nil {
		return nerr
	}

	if err := db.Delete(&models.Portfolio{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Archive soft-deletes: the portfolio disappears from default listings but
// stays addressable, and its assets stay intact.
func (r *portfolioRepository) Archive(id string) (*models.Portfolio, error) {
	archived := true
	return r.Update(id, UpdatePortfolioInput{IsArchived: &archived})
}

// Unarchive brings an archived portfolio back into default listings.
func (r *portfolioRepository) Unarchive(id string) (*models.Portfolio, error) {
	archived := false
	return r.Update(id, UpdatePortfolioInput{IsArchived: &archived})
}
