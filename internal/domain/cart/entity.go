// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/pricing"
)

// LineKey is the identity of a cart line. Two scans of the same product and
// unit merge into one line; serialized units carry the serial in UnitKey so
// each scanned serial stays its own line.
type LineKey struct {
	ProductID uint   `json:"product_id"`
	UnitKey   string `json:"unit_key"`
}

// String renders the key in its canonical form, used as the line item id
func (k LineKey) String() string {
	return fmt.Sprintf("%d:%s", k.ProductID, k.UnitKey)
}

// LineItem is one row of the cart: a product sold in a specific unit at a
// specific quantity and resolved exchange rate. SubtotalUSD and SubtotalLocal
// are derived fields; every mutation goes through recompute so they never
// drift from quantity x price x rate.
type LineItem struct {
	ID        string  `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	UnitName  string  `json:"unit_name"`

	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPriceUSD     decimal.Decimal `json:"unit_price_usd"`
	SubtotalUSD      decimal.Decimal `json:"subtotal_usd"`
	SubtotalLocal    decimal.Decimal `json:"subtotal_local"`

	ExchangeRate     decimal.Decimal    `json:"exchange_rate"`
	ExchangeRateID   *uint              `json:"exchange_rate_id,omitempty"`
	ExchangeRateName string             `json:"exchange_rate_name,omitempty"`
	CurrencyCode     string             `json:"currency_code"`
	RateSource       pricing.RateSource `json:"rate_source"`
	IsSpecialRate    bool               `json:"is_special_rate"`
	StaleRate        bool               `json:"stale_rate"`

	// Passthrough metadata carried for other layers, never touched by the
	// pricing logic
	SerialNumber  string          `json:"serial_number,omitempty"`
	StockSnapshot decimal.Decimal `json:"stock_snapshot"`
	DiscountUSD   decimal.Decimal `json:"discount_usd"`
	SalespersonID *uint           `json:"salesperson_id,omitempty"`
	Note          string          `json:"note,omitempty"`
	AddedAt       time.Time       `json:"added_at"`
}

// recompute re-derives the subtotals from quantity, unit price and rate
func (li *LineItem) recompute() {
	li.SubtotalUSD = li.UnitPriceUSD.Mul(li.Quantity)
	li.SubtotalLocal = li.SubtotalUSD.Mul(li.ExchangeRate)
}

// Totals represents the aggregated cart totals. USD is the anchor-currency
// total, Local the convenience total at each line's bound rate, and
// ByCurrency the whole cart re-expressed in every currency the registry
// currently knows.
type Totals struct {
	USD        decimal.Decimal            `json:"usd"`
	Local      decimal.Decimal            `json:"local"`
	ByCurrency map[string]decimal.Decimal `json:"by_currency"`
}

// ProductInfo is the slice of the catalog product the cart needs for pricing
type ProductInfo struct {
	ID             uint
	Name           string
	SKU            string
	PriceUSD       decimal.Decimal
	ExchangeRateID *uint
	Stock          decimal.Decimal
}

// UnitInfo is the sellable presentation being added: its own price and rate
// binding take priority over the product's. SerialNumber is set when the unit
// is tracked per serial.
type UnitInfo struct {
	Name             string
	PriceUSD         decimal.Decimal
	ConversionFactor decimal.Decimal
	ExchangeRateID   *uint
	ExchangeRateName string
	SerialNumber     string
}

// key derives the line identity for a product/unit pair
func (u UnitInfo) key(productID uint) LineKey {
	unitKey := u.Name
	if u.SerialNumber != "" {
		unitKey = u.Name + "#" + u.SerialNumber
	}
	return LineKey{ProductID: productID, UnitKey: unitKey}
}

// LineItemPatch is a partial update of line item metadata. Pricing fields are
// deliberately absent: quantity changes go through UpdateQuantity and rate
// changes through Reprice, so the subtotal invariant cannot be bypassed here.
type LineItemPatch struct {
	DiscountUSD   *decimal.Decimal `json:"discount_usd,omitempty"`
	SalespersonID *uint            `json:"salesperson_id,omitempty"`
	Note          *string          `json:"note,omitempty"`
}
