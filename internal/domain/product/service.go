// internal/domain/product/service.go
package product

import (
	"fmt"

	"gorm.io/gorm"
)

// Service handles product catalog reads for the sale screen
type Service struct {
	db *gorm.DB
}

// NewService creates a new product service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListParams represents catalog listing parameters
type ListParams struct {
	Search string
	Limit  int
	Offset int
}

// List returns active products with their units
func (s *Service) List(params ListParams) ([]Product, int64, error) {
	query := s.db.Model(&Product{}).Where("is_active = ?", true)

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var products []Product
	err := query.Preload("Units", "is_active = ?", true).
		Order("name").
		Limit(limit).
		Offset(params.Offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

// Get returns one active product with its units
func (s *Service) Get(id uint) (*Product, error) {
	var p Product
	err := s.db.Preload("Units", "is_active = ?", true).
		Where("id = ? AND is_active = ?", id, true).
		First(&p).Error
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return &p, nil
}

// GetUnit returns one active unit of a product by unit name
func (s *Service) GetUnit(productID uint, unitName string) (*ProductUnit, error) {
	var u ProductUnit
	err := s.db.Where("product_id = ? AND name = ? AND is_active = ?", productID, unitName, true).
		First(&u).Error
	if err != nil {
		return nil, fmt.Errorf("unit not found")
	}
	return &u, nil
}
