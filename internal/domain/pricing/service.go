// internal/domain/pricing/service.go
package pricing

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service owns the exchange rate registry: CRUD over the rate and currency
// tables plus a cached snapshot for the pricing core. Any write invalidates
// the snapshot, so the next cart operation prices against fresh data.
type Service struct {
	db  *gorm.DB
	log *logrus.Logger

	mu       sync.RWMutex
	snapshot *RateTable
}

// NewService creates a new pricing service
func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{
		db:  db,
		log: log,
	}
}

// CreateRateRequest represents a create exchange rate request
type CreateRateRequest struct {
	CurrencyCode string `json:"currency_code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Rate         string `json:"rate" binding:"required"`
	IsDefault    bool   `json:"is_default"`
}

// UpdateRateRequest represents an update exchange rate request
type UpdateRateRequest struct {
	Rate      *string `json:"rate"`
	IsDefault *bool   `json:"is_default"`
	IsActive  *bool   `json:"is_active"`
}

// Snapshot returns the current registry snapshot, loading it from the
// database on first use or after a write
func (s *Service) Snapshot() (*RateTable, error) {
	s.mu.RLock()
	if s.snapshot != nil {
		t := s.snapshot
		s.mu.RUnlock()
		return t, nil
	}
	s.mu.RUnlock()

	return s.Refresh()
}

// Refresh reloads the registry snapshot from the database
func (s *Service) Refresh() (*RateTable, error) {
	var rates []ExchangeRate
	if err := s.db.Find(&rates).Error; err != nil {
		return nil, fmt.Errorf("failed to load exchange rates: %w", err)
	}

	t := NewRateTable(rates)

	s.mu.Lock()
	s.snapshot = t
	s.mu.Unlock()

	return t, nil
}

// invalidate drops the cached snapshot after a registry write
func (s *Service) invalidate() {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
}

// ListRates returns all exchange rates, active and inactive
func (s *Service) ListRates() ([]ExchangeRate, error) {
	var rates []ExchangeRate
	if err := s.db.Order("currency_code, name").Find(&rates).Error; err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, nil
}

// CreateRate creates a new exchange rate. Marking it as default clears the
// default flag on every other rate of the same currency, keeping at most one
// default per currency.
func (s *Service) CreateRate(req *CreateRateRequest) (*ExchangeRate, error) {
	value, err := decimal.NewFromString(req.Rate)
	if err != nil || value.Sign() <= 0 {
		return nil, fmt.Errorf("rate must be a positive decimal")
	}

	rate := &ExchangeRate{
		CurrencyCode: req.CurrencyCode,
		Name:         req.Name,
		Rate:         value,
		IsDefault:    req.IsDefault,
		IsActive:     true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&ExchangeRate{}).
				Where("currency_code = ?", req.CurrencyCode).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(rate).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create exchange rate: %w", err)
	}

	s.invalidate()
	s.log.WithFields(logrus.Fields{
		"rate_id":       rate.ID,
		"currency_code": rate.CurrencyCode,
		"rate":          rate.Rate.String(),
	}).Info("Exchange rate created")

	return rate, nil
}

// UpdateRate updates the value, default flag or active flag of a rate
func (s *Service) UpdateRate(id uint, req *UpdateRateRequest) (*ExchangeRate, error) {
	var rate ExchangeRate
	if err := s.db.First(&rate, id).Error; err != nil {
		return nil, fmt.Errorf("exchange rate not found")
	}

	if req.Rate != nil {
		value, err := decimal.NewFromString(*req.Rate)
		if err != nil || value.Sign() <= 0 {
			return nil, fmt.Errorf("rate must be a positive decimal")
		}
		rate.Rate = value
	}
	if req.IsActive != nil {
		rate.IsActive = *req.IsActive
	}
	if req.IsDefault != nil {
		rate.IsDefault = *req.IsDefault
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault != nil && *req.IsDefault {
			if err := tx.Model(&ExchangeRate{}).
				Where("currency_code = ? AND id <> ?", rate.CurrencyCode, rate.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&rate).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update exchange rate: %w", err)
	}

	s.invalidate()
	return &rate, nil
}

// DeactivateRate marks a rate inactive. Line items bound to it keep their
// last known value until the next reprice resolves a replacement.
func (s *Service) DeactivateRate(id uint) error {
	result := s.db.Model(&ExchangeRate{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate exchange rate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("exchange rate not found")
	}

	s.invalidate()
	return nil
}

// ActiveCurrencies returns the currencies enabled for display
func (s *Service) ActiveCurrencies() ([]Currency, error) {
	var currencies []Currency
	if err := s.db.Where("is_active = ?", true).Order("code").Find(&currencies).Error; err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}
