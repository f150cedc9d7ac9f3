package repositories

import (
	"errors"
	"time"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/models"
	"financecontroll/internal/storage"

	"gorm.io/gorm"
)

// exchangeRateRepository handles exchange-rate persistence with
// upsert-by-key semantics.
type exchangeRateRepository struct {
	h storage.Handle
}

// NewExchangeRateRepository creates a new ExchangeRateRepositorer over the
// given storage handle.
func NewExchangeRateRepository(h storage.Handle) ExchangeRateRepositorer {
	return &exchangeRateRepository{h: h}
}

func (r *exchangeRateRepository) db() (*gorm.DB, *apperrors.AppError) {
	db := r.h.DB()
	if db == nil {
		return nil, apperrors.ErrStorageNotReady
	}
	return db, nil
}

// FindAll returns every stored rate.
func (r *exchangeRateRepository) FindAll() ([]models.ExchangeRate, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var rates []models.ExchangeRate
	if err := db.Find(&rates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rates, nil
}

// FindByID returns the rate with the given id.
func (r *exchangeRateRepository) FindByID(id string) (*models.ExchangeRate, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var rate models.ExchangeRate
	if err := db.First(&rate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExchangeRateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rate, nil
}

// FindByDateAndCurrencies returns the rate for the unique (from, to, date)
// key, or nil when none is stored.
func (r *exchangeRateRepository) FindByDateAndCurrencies(from, to string, date time.Time) (*models.ExchangeRate, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	var rate models.ExchangeRate
	err := db.Where("from_currency = ? AND to_currency = ? AND date = ?", from, to, date).
		Take(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rate, nil
}

// Upsert writes the rate for its (from, to, date) key: update in place when
// the key exists, create otherwise. Idempotent rate ingestion.
func (r *exchangeRateRepository) Upsert(input UpsertExchangeRateInput) (*models.ExchangeRate, error) {
	db, nerr := r.db()
	if nerr != nil {
		return nil, nerr
	}

	existing, err := r.FindByDateAndCurrencies(input.FromCurrency, input.ToCurrency, input.Date)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := db.Model(existing).UpdateColumn("rate", input.Rate).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return existing, nil
	}

	rate := &models.ExchangeRate{
		FromCurrency: input.FromCurrency,
		ToCurrency:   input.ToCurrency,
		Rate:         input.Rate,
		Date:         input.Date,
	}
	if err := db.Create(rate).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rate, nil
}

// Delete removes a stored rate.
func (r *exchangeRateRepository) Delete(id string) error {
	db, nerr := r.db()
	if nerr != nil {
		return nerr
	}

	if err := db.Delete(&models.ExchangeRate{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
