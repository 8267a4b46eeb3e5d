// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/pricing"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/user"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Migration handles database schema migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// RunAutoMigrations runs gorm auto migrations for all entities
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database migrations...")

	err := m.db.AutoMigrate(
		&pricing.Currency{},
		&pricing.ExchangeRate{},
		&product.Product{},
		&product.ProductUnit{},
		&user.Cashier{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// SeedInitialData seeds currencies, exchange rates, sample products and a
// default admin cashier for development environments
func (m *Migration) SeedInitialData() error {
	if err := m.seedCurrencies(); err != nil {
		return err
	}
	if err := m.seedExchangeRates(); err != nil {
		return err
	}
	if err := m.seedProducts(); err != nil {
		return err
	}
	if err := m.seedAdminCashier(); err != nil {
		return err
	}
	return nil
}

func (m *Migration) seedCurrencies() error {
	var count int64
	m.db.Model(&pricing.Currency{}).Count(&count)
	if count > 0 {
		return nil
	}

	currencies := []pricing.Currency{
		{Code: "USD", Symbol: "$", Name: "US Dollar", IsActive: true},
		{Code: "VES", Symbol: "Bs", Name: "Bolívar", IsActive: true},
		{Code: "EUR", Symbol: "€", Name: "Euro", IsActive: true},
	}

	for _, c := range currencies {
		if err := m.db.Create(&c).Error; err != nil {
			return fmt.Errorf("failed to seed currency %s: %w", c.Code, err)
		}
	}

	log.Println("✅ Currencies seeded")
	return nil
}

func (m *Migration) seedExchangeRates() error {
	var count int64
	m.db.Model(&pricing.ExchangeRate{}).Count(&count)
	if count > 0 {
		return nil
	}

	rates := []pricing.ExchangeRate{
		{CurrencyCode: "VES", Name: "BCV", Rate: decimal.RequireFromString("40.00"), IsDefault: true, IsActive: true},
		{CurrencyCode: "VES", Name: "Parallel", Rate: decimal.RequireFromString("42.50"), IsDefault: false, IsActive: true},
		{CurrencyCode: "EUR", Name: "ECB", Rate: decimal.RequireFromString("0.92"), IsDefault: true, IsActive: true},
	}

	for _, r := range rates {
		if err := m.db.Create(&r).Error; err != nil {
			return fmt.Errorf("failed to seed exchange rate %s: %w", r.Name, err)
		}
	}

	log.Println("✅ Exchange rates seeded")
	return nil
}

func (m *Migration) seedProducts() error {
	var count int64
	m.db.Model(&product.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	products := []product.Product{
		{
			SKU:      "COF-001",
			Name:     "Ground Coffee",
			PriceUSD: decimal.RequireFromString("10.00"),
			Stock:    decimal.RequireFromString("120"),
			IsActive: true,
			Units: []product.ProductUnit{
				{Name: "Unidad", PriceUSD: decimal.RequireFromString("10.00"), ConversionFactor: decimal.NewFromInt(1), IsActive: true},
				{Name: "Gramo", PriceUSD: decimal.RequireFromString("0.02"), ConversionFactor: decimal.RequireFromString("0.001"), IsActive: true},
			},
		},
		{
			SKU:      "RIC-001",
			Name:     "Rice 1kg",
			PriceUSD: decimal.RequireFromString("2.50"),
			Stock:    decimal.RequireFromString("300"),
			IsActive: true,
			Units: []product.ProductUnit{
				{Name: "Unidad", PriceUSD: decimal.RequireFromString("2.50"), ConversionFactor: decimal.NewFromInt(1), IsActive: true},
				{Name: "Bulto", PriceUSD: decimal.RequireFromString("55.00"), ConversionFactor: decimal.NewFromInt(24), IsActive: true},
			},
		},
		{
			SKU:          "PHN-001",
			Name:         "Smartphone X",
			PriceUSD:     decimal.RequireFromString("250.00"),
			Stock:        decimal.RequireFromString("15"),
			IsSerialized: true,
			IsActive:     true,
			Units: []product.ProductUnit{
				{Name: "Unidad", PriceUSD: decimal.RequireFromString("250.00"), ConversionFactor: decimal.NewFromInt(1), IsActive: true},
			},
		},
	}

	for _, p := range products {
		if err := m.db.Create(&p).Error; err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.SKU, err)
		}
	}

	log.Println("✅ Sample products seeded")
	return nil
}

func (m *Migration) seedAdminCashier() error {
	var count int64
	m.db.Model(&user.Cashier{}).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("1234", 12)
	if err != nil {
		return fmt.Errorf("failed to hash admin PIN: %w", err)
	}

	admin := user.Cashier{
		Username: "admin",
		Name:     "Administrator",
		PINHash:  hash,
		IsAdmin:  true,
		IsActive: true,
	}
	if err := m.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin cashier: %w", err)
	}

	log.Println("✅ Admin cashier seeded (username: admin, PIN: 1234)")
	return nil
}
