// internal/domain/pricing/entity_test.go
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testRates() []ExchangeRate {
	return []ExchangeRate{
		{ID: 1, CurrencyCode: "VES", Name: "BCV", Rate: dec("40.00"), IsDefault: true, IsActive: true},
		{ID: 2, CurrencyCode: "VES", Name: "Parallel", Rate: dec("42.50"), IsActive: true},
		{ID: 3, CurrencyCode: "EUR", Name: "ECB", Rate: dec("0.92"), IsDefault: true, IsActive: true},
		{ID: 4, CurrencyCode: "VES", Name: "Retired", Rate: dec("38.00"), IsActive: false},
	}
}

func TestNewRateTableDropsInactiveEntries(t *testing.T) {
	table := NewRateTable(testRates())

	assert.Equal(t, 3, table.Len())

	_, ok := table.ByID(4)
	assert.False(t, ok)

	_, ok = table.ByName("Retired")
	assert.False(t, ok)
}

func TestRateTableLookups(t *testing.T) {
	table := NewRateTable(testRates())

	rate, ok := table.ByID(2)
	require.True(t, ok)
	assert.Equal(t, "Parallel", rate.Name)
	assert.True(t, rate.Rate.Equal(dec("42.50")))

	rate, ok = table.ByName("BCV")
	require.True(t, ok)
	assert.Equal(t, uint(1), rate.ID)

	rate, ok = table.DefaultFor("VES")
	require.True(t, ok)
	assert.Equal(t, "BCV", rate.Name)

	_, ok = table.DefaultFor("USD")
	assert.False(t, ok)
}

func TestRateTableCurrencyCodesSorted(t *testing.T) {
	table := NewRateTable(testRates())

	assert.Equal(t, []string{"EUR", "VES"}, table.CurrencyCodes())
}

func TestEmptyRateTable(t *testing.T) {
	table := NewRateTable(nil)

	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.CurrencyCodes())

	_, ok := table.DefaultFor("VES")
	assert.False(t, ok)
}
