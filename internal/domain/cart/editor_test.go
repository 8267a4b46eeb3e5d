// internal/domain/cart/editor_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func editorItem() LineItem {
	return LineItem{
		ID:               "10:Unidad",
		ProductID:        10,
		ConversionFactor: dec("1"),
		Quantity:         dec("1"),
		UnitPriceUSD:     dec("5.00"),
		ExchangeRate:     dec("40.00"),
		CurrencyCode:     "VES",
	}
}

func TestEditorOpensInQuantityModeForWholeUnits(t *testing.T) {
	e := NewQuantityEditor(editorItem(), testTable(), "USD")

	assert.Equal(t, ModeQuantity, e.Mode())
	assert.Equal(t, "VES", e.Currency())
	assert.True(t, e.Quantity().Equal(dec("1")))
	assert.True(t, e.Amount().Equal(dec("200")))
}

func TestEditorOpensInAmountModeForFractionalUnits(t *testing.T) {
	item := editorItem()
	item.ConversionFactor = dec("0.001") // sold by the gram

	e := NewQuantityEditor(item, testTable(), "USD")

	assert.Equal(t, ModeAmount, e.Mode())
}

func TestSetQuantityDerivesAmount(t *testing.T) {
	e := NewQuantityEditor(editorItem(), testTable(), "USD")

	e.SetQuantity("3")

	assert.Equal(t, ModeQuantity, e.Mode())
	assert.True(t, e.Quantity().Equal(dec("3")))
	assert.True(t, e.Amount().Equal(dec("600")))
}

func TestSetAmountDerivesQuantityThroughPivot(t *testing.T) {
	e := NewQuantityEditor(editorItem(), testTable(), "USD")

	e.SwitchCurrency("USD")
	e.SetAmount("25")

	assert.Equal(t, ModeAmount, e.Mode())
	assert.True(t, e.Quantity().Equal(dec("5")), "25 USD at 5 USD per unit is 5 units")
}

func TestSetAmountInBoundCurrency(t *testing.T) {
	e := NewQuantityEditor(editorItem(), testTable(), "USD")

	e.SetAmount("400")

	// 400 VES / 40 = 10 USD, / 5 USD per unit = 2 units
	assert.True(t, e.Quantity().Equal(dec("2")))
}

func TestSwitchCurrencyKeepsQuantity(t *testing.T) {
	e := NewQuantityEditor(editorItem(), testTable(), "USD")
	e.SetQuantity("2")

	e.SwitchCurrency("USD")
	assert.True(t, e.Amount().Equal(dec("10")))
	assert.True(t, e.Quantity().Equal(dec("2")))

	e.SwitchCurrency("VES")
	assert.True(t, e.Amount().Equal(dec("400")))
	assert.True(t, e.Quantity().Equal(dec("2")))
}

func TestQuantityAmountRoundTrip(t *testing.T) {
	e := NewQuantityEditor(editorItem(), testTable(), "USD")

	e.SetQuantity("7")
	derived := e.Amount()

	e.SetAmount(derived.String())

	assert.True(t, e.Quantity().Equal(dec("7")))
}

func TestSwitchCurrencySameCodeIsNoop(t *testing.T) {
	e := NewQuantityEditor(editorItem(), testTable(), "USD")
	before := e.Amount()

	e.SwitchCurrency("VES")
	e.SwitchCurrency("")

	assert.True(t, e.Amount().Equal(before))
}

func TestSwitchCurrencyUsesRegistryDefault(t *testing.T) {
	e := NewQuantityEditor(editorItem(), testTable(), "USD")
	e.SetQuantity("1")

	e.SwitchCurrency("EUR")

	assert.True(t, e.Amount().Equal(dec("4.6")), "5 USD at the 0.92 EUR default")
}

func TestMalformedInputNormalizesToZero(t *testing.T) {
	e := NewQuantityEditor(editorItem(), testTable(), "USD")

	e.SetQuantity("abc")
	assert.True(t, e.Quantity().IsZero())
	assert.True(t, e.Amount().IsZero())

	e.SetAmount("-50")
	assert.True(t, e.Amount().IsZero())
	assert.True(t, e.Quantity().IsZero())
}

func TestZeroUnitPriceAmountEntry(t *testing.T) {
	item := editorItem()
	item.UnitPriceUSD = dec("0")

	e := NewQuantityEditor(item, testTable(), "USD")
	e.SetAmount("100")

	assert.True(t, e.Quantity().IsZero())
}
