// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog product. PriceUSD is the anchor-currency
// price of its base unit; ExchangeRateID, when set, pins the product to a
// specific registry rate instead of the currency default.
type Product struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	SKU            string          `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name           string          `gorm:"not null;size:255" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	PriceUSD       decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"price_usd"`
	ExchangeRateID *uint           `gorm:"index" json:"exchange_rate_id,omitempty"`
	Stock          decimal.Decimal `gorm:"type:numeric(14,4);default:0" json:"stock"`
	IsSerialized   bool            `gorm:"default:false" json:"is_serialized"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Units []ProductUnit `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"units,omitempty"`
}

// ProductUnit represents a sellable presentation of a product, e.g. "box of
// 12" or "gram". Its own price and rate binding take priority over the
// product's; a conversion factor below 1 marks a fractional unit sold by
// weight or measure.
type ProductUnit struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	ProductID        uint            `gorm:"not null;index" json:"product_id"`
	Name             string          `gorm:"not null;size:100" json:"name"`
	PriceUSD         decimal.Decimal `gorm:"type:numeric(14,4)" json:"price_usd"`
	ConversionFactor decimal.Decimal `gorm:"type:numeric(14,6);default:1" json:"conversion_factor"`
	ExchangeRateID   *uint           `gorm:"index" json:"exchange_rate_id,omitempty"`
	IsActive         bool            `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string     { return "products" }
func (ProductUnit) TableName() string { return "product_units" }

// IsInStock reports whether the product has stock left
func (p *Product) IsInStock() bool {
	return p.Stock.Sign() > 0
}

// IsFractional reports whether the unit sells in fractional quantities
func (u *ProductUnit) IsFractional() bool {
	return u.ConversionFactor.Sign() > 0 && u.ConversionFactor.LessThan(decimal.NewFromInt(1))
}
