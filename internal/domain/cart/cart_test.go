// internal/domain/cart/cart_test.go
package cart

import (
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func uintPtr(v uint) *uint { return &v }

func testTable() *pricing.RateTable {
	return pricing.NewRateTable([]pricing.ExchangeRate{
		{ID: 1, CurrencyCode: "VES", Name: "BCV", Rate: dec("40.00"), IsDefault: true, IsActive: true},
		{ID: 2, CurrencyCode: "VES", Name: "Parallel", Rate: dec("42.50"), IsActive: true},
		{ID: 3, CurrencyCode: "EUR", Name: "ECB", Rate: dec("0.92"), IsDefault: true, IsActive: true},
	})
}

func testResolver() *pricing.Resolver {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return pricing.NewResolver(dec("1"), log)
}

func coffeeProduct() ProductInfo {
	return ProductInfo{
		ID:       10,
		Name:     "Coffee 500g",
		SKU:      "COF-001",
		PriceUSD: dec("5.00"),
		Stock:    dec("120"),
	}
}

func eachUnit() UnitInfo {
	return UnitInfo{Name: "Unidad", ConversionFactor: dec("1")}
}

func TestAddCreatesLineWithDefaultRate(t *testing.T) {
	c := New()

	item := c.Add(coffeeProduct(), eachUnit(), testTable(), testResolver(), "VES")

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "10:Unidad", item.ID)
	assert.True(t, item.Quantity.Equal(dec("1")))
	assert.True(t, item.SubtotalUSD.Equal(dec("5.00")))
	assert.True(t, item.SubtotalLocal.Equal(dec("200")))
	assert.Equal(t, pricing.RateSourceDefault, item.RateSource)
	assert.Equal(t, "BCV", item.ExchangeRateName)
	assert.False(t, item.IsSpecialRate)
}

func TestAddMergesSameProductAndUnit(t *testing.T) {
	c := New()
	table := testTable()
	resolver := testResolver()

	first := c.Add(coffeeProduct(), eachUnit(), table, resolver, "VES")
	second := c.Add(coffeeProduct(), eachUnit(), table, resolver, "VES")

	assert.Equal(t, 1, c.Len())
	assert.Same(t, first, second)
	assert.True(t, second.Quantity.Equal(dec("2")))
	assert.True(t, second.SubtotalUSD.Equal(dec("10.00")))
	assert.True(t, second.SubtotalLocal.Equal(dec("400")))
}

func TestAddMergeKeepsExistingRateBinding(t *testing.T) {
	c := New()
	resolver := testResolver()

	unit := eachUnit()
	unit.ExchangeRateID = uintPtr(2)
	c.Add(coffeeProduct(), unit, testTable(), resolver, "VES")

	// Second scan of the same line must not re-resolve, even against a
	// registry where the bound rate no longer exists.
	emptied := pricing.NewRateTable(nil)
	item := c.Add(coffeeProduct(), unit, emptied, resolver, "VES")

	assert.Equal(t, "Parallel", item.ExchangeRateName)
	assert.True(t, item.ExchangeRate.Equal(dec("42.50")))
	assert.True(t, item.Quantity.Equal(dec("2")))
}

func TestAddSerializedUnitsStayDistinct(t *testing.T) {
	c := New()
	table := testTable()
	resolver := testResolver()

	phone := ProductInfo{ID: 20, Name: "Phone", SKU: "PHN-001", PriceUSD: dec("150.00")}
	unitA := UnitInfo{Name: "Unidad", ConversionFactor: dec("1"), SerialNumber: "SN-001"}
	unitB := UnitInfo{Name: "Unidad", ConversionFactor: dec("1"), SerialNumber: "SN-002"}

	first := c.Add(phone, unitA, table, resolver, "VES")
	second := c.Add(phone, unitB, table, resolver, "VES")

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "20:Unidad#SN-001", first.ID)
	assert.Equal(t, "20:Unidad#SN-002", second.ID)
}

func TestAddUnitPriceFallsBackToProductPrice(t *testing.T) {
	c := New()

	item := c.Add(coffeeProduct(), UnitInfo{Name: "Unidad"}, testTable(), testResolver(), "VES")

	assert.True(t, item.UnitPriceUSD.Equal(dec("5.00")))
	assert.True(t, item.ConversionFactor.Equal(dec("1")))
}

func TestAddUnitWithOwnPriceAndRate(t *testing.T) {
	c := New()

	bulk := UnitInfo{
		Name:             "Bulto",
		PriceUSD:         dec("100.00"),
		ConversionFactor: dec("24"),
		ExchangeRateID:   uintPtr(2),
	}
	item := c.Add(coffeeProduct(), bulk, testTable(), testResolver(), "VES")

	assert.True(t, item.UnitPriceUSD.Equal(dec("100.00")))
	assert.Equal(t, pricing.RateSourceUnit, item.RateSource)
	assert.True(t, item.IsSpecialRate)
	assert.True(t, item.SubtotalLocal.Equal(dec("4250")))
}

func TestUpdateQuantityRecomputesSubtotals(t *testing.T) {
	c := New()
	item := c.Add(coffeeProduct(), eachUnit(), testTable(), testResolver(), "VES")

	c.UpdateQuantity(item.ID, dec("3"))

	got, ok := c.Get(item.ID)
	require.True(t, ok)
	assert.True(t, got.Quantity.Equal(dec("3")))
	assert.True(t, got.SubtotalUSD.Equal(dec("15.00")))
	assert.True(t, got.SubtotalLocal.Equal(dec("600")))
}

func TestUpdateQuantityIsIdempotent(t *testing.T) {
	c := New()
	item := c.Add(coffeeProduct(), eachUnit(), testTable(), testResolver(), "VES")

	c.UpdateQuantity(item.ID, dec("4"))
	first, _ := c.Get(item.ID)
	c.UpdateQuantity(item.ID, dec("4"))
	second, _ := c.Get(item.ID)

	assert.Equal(t, first, second)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	c := New()
	item := c.Add(coffeeProduct(), eachUnit(), testTable(), testResolver(), "VES")

	c.UpdateQuantity(item.ID, decimal.Zero)

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(item.ID)
	assert.False(t, ok)
}

func TestUpdateQuantityUnknownIDIsNoop(t *testing.T) {
	c := New()
	c.Add(coffeeProduct(), eachUnit(), testTable(), testResolver(), "VES")

	c.UpdateQuantity("99:Unidad", dec("5"))

	assert.Equal(t, 1, c.Len())
	items := c.Items()
	assert.True(t, items[0].Quantity.Equal(dec("1")))
}

func TestRemovePreservesOrder(t *testing.T) {
	c := New()
	table := testTable()
	resolver := testResolver()

	a := c.Add(ProductInfo{ID: 1, Name: "A", PriceUSD: dec("1")}, eachUnit(), table, resolver, "VES")
	b := c.Add(ProductInfo{ID: 2, Name: "B", PriceUSD: dec("1")}, eachUnit(), table, resolver, "VES")
	cc := c.Add(ProductInfo{ID: 3, Name: "C", PriceUSD: dec("1")}, eachUnit(), table, resolver, "VES")

	c.Remove(b.ID)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, cc.ID, items[1].ID)

	// Removing again is a no-op
	c.Remove(b.ID)
	assert.Equal(t, 2, c.Len())
}

func TestUpdatePatchesMetadataOnly(t *testing.T) {
	c := New()
	item := c.Add(coffeeProduct(), eachUnit(), testTable(), testResolver(), "VES")

	discount := dec("0.50")
	note := "customer request"
	c.Update(item.ID, LineItemPatch{
		DiscountUSD:   &discount,
		SalespersonID: uintPtr(7),
		Note:          &note,
	})

	got, ok := c.Get(item.ID)
	require.True(t, ok)
	assert.True(t, got.DiscountUSD.Equal(dec("0.50")))
	require.NotNil(t, got.SalespersonID)
	assert.Equal(t, uint(7), *got.SalespersonID)
	assert.Equal(t, "customer request", got.Note)
	assert.True(t, got.SubtotalUSD.Equal(dec("5.00")))
}

func TestClearEmptiesCart(t *testing.T) {
	c := New()
	c.Add(coffeeProduct(), eachUnit(), testTable(), testResolver(), "VES")

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Items())
}

func TestNewFromItemsPreservesOrder(t *testing.T) {
	items := []LineItem{
		{ID: "1:Unidad", ProductID: 1, Quantity: dec("2"), UnitPriceUSD: dec("3"), SubtotalUSD: dec("6")},
		{ID: "2:Unidad", ProductID: 2, Quantity: dec("1"), UnitPriceUSD: dec("4"), SubtotalUSD: dec("4")},
	}

	c := NewFromItems(items)

	require.Equal(t, 2, c.Len())
	got := c.Items()
	assert.Equal(t, "1:Unidad", got[0].ID)
	assert.Equal(t, "2:Unidad", got[1].ID)

	item, ok := c.Get("2:Unidad")
	require.True(t, ok)
	assert.True(t, item.Quantity.Equal(dec("1")))
}
