// internal/domain/pricing/entity.go
package pricing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExchangeRate represents one entry of the exchange rate registry. Several
// rates may exist for the same currency (e.g. official rate and street rate);
// at most one active rate per currency is flagged as its default.
type ExchangeRate struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CurrencyCode string          `gorm:"not null;size:8;index" json:"currency_code"`
	Name         string          `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Rate         decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"rate"`
	IsDefault    bool            `gorm:"default:false" json:"is_default"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Currency represents a currency enabled for display on the sale screen
type Currency struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"uniqueIndex;not null;size:8" json:"code"`
	Symbol    string         `gorm:"size:8" json:"symbol"`
	Name      string         `gorm:"not null;size:100" json:"name"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (ExchangeRate) TableName() string { return "exchange_rates" }
func (Currency) TableName() string     { return "currencies" }

// RateTable is an immutable snapshot of the active entries of the exchange
// rate registry. Carts are always priced against a whole snapshot, never
// against individual rows, so a registry refresh can never be observed
// half-applied.
type RateTable struct {
	byID     map[uint]*ExchangeRate
	byName   map[string]*ExchangeRate
	defaults map[string]*ExchangeRate
	codes    []string
}

// NewRateTable builds a snapshot from a full registry read. Inactive entries
// are dropped here, which makes every lookup below mean "found and active".
func NewRateTable(rates []ExchangeRate) *RateTable {
	t := &RateTable{
		byID:     make(map[uint]*ExchangeRate),
		byName:   make(map[string]*ExchangeRate),
		defaults: make(map[string]*ExchangeRate),
	}

	seen := make(map[string]bool)
	for i := range rates {
		r := &rates[i]
		if !r.IsActive {
			continue
		}
		t.byID[r.ID] = r
		t.byName[r.Name] = r
		if r.IsDefault {
			t.defaults[r.CurrencyCode] = r
		}
		if !seen[r.CurrencyCode] {
			seen[r.CurrencyCode] = true
			t.codes = append(t.codes, r.CurrencyCode)
		}
	}
	sort.Strings(t.codes)

	return t
}

// ByID returns the active rate with the given id
func (t *RateTable) ByID(id uint) (*ExchangeRate, bool) {
	r, ok := t.byID[id]
	return r, ok
}

// ByName returns the active rate with the given name
func (t *RateTable) ByName(name string) (*ExchangeRate, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// DefaultFor returns the default active rate for a currency code
func (t *RateTable) DefaultFor(currencyCode string) (*ExchangeRate, bool) {
	r, ok := t.defaults[currencyCode]
	return r, ok
}

// CurrencyCodes returns the codes with at least one active rate, sorted
func (t *RateTable) CurrencyCodes() []string {
	return t.codes
}

// Len returns the number of active rates in the snapshot
func (t *RateTable) Len() int {
	return len(t.byID)
}
