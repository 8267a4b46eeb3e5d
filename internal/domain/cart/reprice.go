// internal/domain/cart/reprice.go
package cart

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/pricing"
)

// Reprice re-resolves every line item against a fresh registry snapshot.
// Resolution order per item: the bound rate id, then the bound rate name,
// then - only for items not on a special rate - the current default for the
// item's currency. An item matching none of those keeps its last known rate
// and is flagged stale; rate changes never touch the anchor-currency
// subtotal. Returns the number of items whose rate value changed.
func (c *Cart) Reprice(table *pricing.RateTable) int {
	changed := 0
	for _, item := range c.items {
		rate, ok := lookupCurrent(table, item)
		if !ok {
			item.StaleRate = true
			continue
		}
		item.StaleRate = false

		if item.ExchangeRate.Equal(rate.Rate) {
			continue
		}

		item.ExchangeRate = rate.Rate
		id := rate.ID
		item.ExchangeRateID = &id
		item.ExchangeRateName = rate.Name
		item.SubtotalLocal = item.SubtotalUSD.Mul(item.ExchangeRate)
		changed++
	}
	return changed
}

// lookupCurrent finds the registry entry a line item should track in the new
// snapshot
func lookupCurrent(table *pricing.RateTable, item *LineItem) (*pricing.ExchangeRate, bool) {
	if item.ExchangeRateID != nil {
		if rate, ok := table.ByID(*item.ExchangeRateID); ok {
			return rate, true
		}
	}
	if item.ExchangeRateName != "" {
		if rate, ok := table.ByName(item.ExchangeRateName); ok {
			return rate, true
		}
	}
	// A special-rate line never silently switches to the currency default;
	// it goes stale instead and the host surfaces the flag.
	if !item.IsSpecialRate {
		if rate, ok := table.DefaultFor(item.CurrencyCode); ok {
			return rate, true
		}
	}
	return nil, false
}

// Totals aggregates the cart: the exact anchor-currency total, the local
// total at each line's bound rate, and the cart re-expressed in every
// currency with at least one active rate. An empty cart or empty registry
// yields zero totals.
func (c *Cart) Totals(table *pricing.RateTable) Totals {
	totals := Totals{
		USD:        decimal.Zero,
		Local:      decimal.Zero,
		ByCurrency: make(map[string]decimal.Decimal),
	}

	for _, item := range c.items {
		totals.USD = totals.USD.Add(item.SubtotalUSD)
		totals.Local = totals.Local.Add(item.SubtotalLocal)
	}

	for _, code := range table.CurrencyCodes() {
		sum := decimal.Zero
		for _, item := range c.items {
			sum = sum.Add(item.SubtotalUSD.Mul(rateToUse(table, item, code)))
		}
		totals.ByCurrency[code] = sum
	}

	return totals
}

// rateToUse picks the conversion rate for one line item toward a display
// currency: the item's own bound rate when the currencies match, otherwise
// the currency's current default. Only the anchor currency legitimately has
// no default; it prices itself at 1, and a misconfigured currency gets the
// same neutral rate rather than dropping out of the map.
func rateToUse(table *pricing.RateTable, item *LineItem, code string) decimal.Decimal {
	if item.CurrencyCode == code {
		return item.ExchangeRate
	}
	if rate, ok := table.DefaultFor(code); ok {
		return rate.Rate
	}
	return decimal.NewFromInt(1)
}
