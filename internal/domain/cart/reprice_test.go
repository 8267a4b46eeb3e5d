// internal/domain/cart/reprice_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/domain/pricing"
)

func TestRepriceAdoptsNewDefaultRateValue(t *testing.T) {
	c := New()
	item := c.Add(coffeeProduct(), eachUnit(), testTable(), testResolver(), "VES")
	require.True(t, item.SubtotalLocal.Equal(dec("200")))

	// Same BCV entry, published at a new value
	updated := pricing.NewRateTable([]pricing.ExchangeRate{
		{ID: 1, CurrencyCode: "VES", Name: "BCV", Rate: dec("42.00"), IsDefault: true, IsActive: true},
	})

	changed := c.Reprice(updated)

	assert.Equal(t, 1, changed)
	got, _ := c.Get(item.ID)
	assert.True(t, got.ExchangeRate.Equal(dec("42.00")))
	assert.True(t, got.SubtotalLocal.Equal(dec("210")))
	assert.True(t, got.SubtotalUSD.Equal(dec("5.00")), "anchor subtotal must never move on reprice")
	assert.False(t, got.StaleRate)
}

func TestRepriceFollowsRateByNameWhenIDChanges(t *testing.T) {
	c := New()
	unit := eachUnit()
	unit.ExchangeRateID = uintPtr(2)
	item := c.Add(coffeeProduct(), unit, testTable(), testResolver(), "VES")

	// The registry was rebuilt: Parallel survives under a new id
	rebuilt := pricing.NewRateTable([]pricing.ExchangeRate{
		{ID: 1, CurrencyCode: "VES", Name: "BCV", Rate: dec("40.00"), IsDefault: true, IsActive: true},
		{ID: 7, CurrencyCode: "VES", Name: "Parallel", Rate: dec("43.00"), IsActive: true},
	})

	changed := c.Reprice(rebuilt)

	assert.Equal(t, 1, changed)
	got, _ := c.Get(item.ID)
	assert.True(t, got.ExchangeRate.Equal(dec("43.00")))
	require.NotNil(t, got.ExchangeRateID)
	assert.Equal(t, uint(7), *got.ExchangeRateID)
	assert.Equal(t, "Parallel", got.ExchangeRateName)
}

func TestRepriceSpecialRateGoesStaleInsteadOfDefaulting(t *testing.T) {
	c := New()
	unit := eachUnit()
	unit.ExchangeRateID = uintPtr(2)
	item := c.Add(coffeeProduct(), unit, testTable(), testResolver(), "VES")
	require.True(t, item.IsSpecialRate)

	// Parallel was deactivated; only the default survives
	withoutParallel := pricing.NewRateTable([]pricing.ExchangeRate{
		{ID: 1, CurrencyCode: "VES", Name: "BCV", Rate: dec("40.00"), IsDefault: true, IsActive: true},
	})

	changed := c.Reprice(withoutParallel)

	assert.Equal(t, 0, changed)
	got, _ := c.Get(item.ID)
	assert.True(t, got.StaleRate)
	assert.True(t, got.ExchangeRate.Equal(dec("42.50")), "a stale special rate keeps its last known value")
	assert.Equal(t, "Parallel", got.ExchangeRateName)
}

func TestRepriceDefaultLineFallsToCurrentDefault(t *testing.T) {
	c := New()
	item := c.Add(coffeeProduct(), eachUnit(), testTable(), testResolver(), "VES")

	// BCV is gone entirely; the line is on a default rate, so it may follow
	// whatever default the currency has now.
	replaced := pricing.NewRateTable([]pricing.ExchangeRate{
		{ID: 9, CurrencyCode: "VES", Name: "BCV v2", Rate: dec("45.00"), IsDefault: true, IsActive: true},
	})

	changed := c.Reprice(replaced)

	assert.Equal(t, 1, changed)
	got, _ := c.Get(item.ID)
	assert.True(t, got.ExchangeRate.Equal(dec("45.00")))
	assert.Equal(t, "BCV v2", got.ExchangeRateName)
	assert.False(t, got.StaleRate)
}

func TestRepriceClearsStaleFlagWhenRateReturns(t *testing.T) {
	c := New()
	unit := eachUnit()
	unit.ExchangeRateID = uintPtr(2)
	item := c.Add(coffeeProduct(), unit, testTable(), testResolver(), "VES")

	c.Reprice(pricing.NewRateTable(nil))
	got, _ := c.Get(item.ID)
	require.True(t, got.StaleRate)

	c.Reprice(testTable())
	got, _ = c.Get(item.ID)
	assert.False(t, got.StaleRate)
}

func TestRepriceUnchangedRegistryReportsZero(t *testing.T) {
	c := New()
	c.Add(coffeeProduct(), eachUnit(), testTable(), testResolver(), "VES")

	assert.Equal(t, 0, c.Reprice(testTable()))
}

func TestTotalsAggregatesAcrossCurrencies(t *testing.T) {
	c := New()
	table := testTable()
	resolver := testResolver()

	// 5 USD at the 40.00 default plus 100 USD pinned to the 42.50 rate
	c.Add(coffeeProduct(), eachUnit(), table, resolver, "VES")
	pinned := eachUnit()
	pinned.ExchangeRateID = uintPtr(2)
	c.Add(ProductInfo{ID: 30, Name: "Rice Sack", SKU: "RIC-002", PriceUSD: dec("100.00")}, pinned, table, resolver, "VES")

	totals := c.Totals(table)

	assert.True(t, totals.USD.Equal(dec("105.00")))
	// 5*40 + 100*42.5
	assert.True(t, totals.Local.Equal(dec("4450")))

	require.Contains(t, totals.ByCurrency, "VES")
	require.Contains(t, totals.ByCurrency, "EUR")
	// Bound currency uses each line's own rate, other currencies their default
	assert.True(t, totals.ByCurrency["VES"].Equal(dec("4450")))
	assert.True(t, totals.ByCurrency["EUR"].Equal(dec("96.6")))
}

func TestTotalsEmptyCart(t *testing.T) {
	c := New()

	totals := c.Totals(testTable())

	assert.True(t, totals.USD.IsZero())
	assert.True(t, totals.Local.IsZero())
	assert.True(t, totals.ByCurrency["VES"].IsZero())
	assert.True(t, totals.ByCurrency["EUR"].IsZero())
}

func TestTotalsEmptyRegistry(t *testing.T) {
	c := New()
	c.Add(coffeeProduct(), eachUnit(), testTable(), testResolver(), "VES")

	totals := c.Totals(pricing.NewRateTable(nil))

	assert.True(t, totals.USD.Equal(dec("5.00")))
	assert.Empty(t, totals.ByCurrency)
}
