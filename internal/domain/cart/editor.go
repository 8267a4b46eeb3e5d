// internal/domain/cart/editor.go
package cart

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/pricing"
)

// EditorMode selects which field of the quantity editor the user is typing in
type EditorMode string

const (
	ModeQuantity EditorMode = "quantity"
	ModeAmount   EditorMode = "amount"
)

// QuantityEditor keeps the two entry modes of a single line item
// mathematically synchronized: editing the quantity derives the monetary
// amount in the selected display currency, editing the amount derives the
// quantity, and switching the display currency re-expresses the amount
// through the USD pivot without changing the quantity. Fractional-unit
// products (sold by weight) open in amount mode; whole units open in
// quantity mode.
//
// All input is tolerated: malformed or negative numbers normalize to zero,
// and zero unit prices or rates divide to zero instead of erroring, so the
// editor can never surface NaN or infinity.
type QuantityEditor struct {
	item       LineItem
	table      *pricing.RateTable
	anchorCode string

	mode     EditorMode
	currency string
	quantity decimal.Decimal
	amount   decimal.Decimal
}

// NewQuantityEditor creates an editor over a snapshot of one line item,
// starting from its current quantity expressed in the item's bound currency
func NewQuantityEditor(item LineItem, table *pricing.RateTable, anchorCode string) *QuantityEditor {
	e := &QuantityEditor{
		item:       item,
		table:      table,
		anchorCode: anchorCode,
		mode:       ModeQuantity,
		currency:   item.CurrencyCode,
	}
	if item.ConversionFactor.LessThan(decimal.NewFromInt(1)) {
		e.mode = ModeAmount
	}
	if e.currency == "" {
		e.currency = anchorCode
	}

	e.quantity = item.Quantity
	e.amount = e.quantity.Mul(item.UnitPriceUSD).Mul(e.rateOf(e.currency))
	return e
}

// Mode returns the current entry mode
func (e *QuantityEditor) Mode() EditorMode { return e.mode }

// Currency returns the current display currency
func (e *QuantityEditor) Currency() string { return e.currency }

// Quantity returns the current quantity
func (e *QuantityEditor) Quantity() decimal.Decimal { return e.quantity }

// Amount returns the current amount in the display currency
func (e *QuantityEditor) Amount() decimal.Decimal { return e.amount }

// SetQuantity enters quantity mode and derives the amount in the display
// currency
func (e *QuantityEditor) SetQuantity(input string) {
	e.mode = ModeQuantity
	e.quantity = parseAmount(input)
	e.amount = e.quantity.Mul(e.item.UnitPriceUSD).Mul(e.rateOf(e.currency))
}

// SetAmount enters amount mode and derives the quantity through the USD
// pivot. A zero unit price resolves the quantity to zero.
func (e *QuantityEditor) SetAmount(input string) {
	e.mode = ModeAmount
	e.amount = parseAmount(input)

	amountUSD := safeDiv(e.amount, e.rateOf(e.currency))
	e.quantity = safeDiv(amountUSD, e.item.UnitPriceUSD)
}

// SwitchCurrency re-expresses the entered amount in a new display currency.
// The quantity is untouched, so converting back restores the original amount
// within rounding.
func (e *QuantityEditor) SwitchCurrency(code string) {
	if code == "" || code == e.currency {
		return
	}

	amountUSD := safeDiv(e.amount, e.rateOf(e.currency))
	e.currency = code
	e.amount = amountUSD.Mul(e.rateOf(code))
}

// rateOf returns the conversion rate from USD toward a display currency. The
// anchor currency is always 1; the item's own bound currency uses the bound
// rate so the editor agrees with the line's subtotal.
func (e *QuantityEditor) rateOf(code string) decimal.Decimal {
	if code == e.anchorCode {
		return decimal.NewFromInt(1)
	}
	if code == e.item.CurrencyCode && !e.item.ExchangeRate.IsZero() {
		return e.item.ExchangeRate
	}
	if rate, ok := e.table.DefaultFor(code); ok {
		return rate.Rate
	}
	return decimal.NewFromInt(1)
}

// parseAmount converts user input into a non-negative decimal; anything
// malformed or negative becomes zero
func parseAmount(input string) decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil || value.Sign() < 0 {
		return decimal.Zero
	}
	return value
}

// safeDiv divides, resolving division by zero to zero
func safeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}
