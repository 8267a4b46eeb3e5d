// internal/domain/pricing/resolver_test.go
package pricing

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *Resolver {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewResolver(dec("1"), log)
}

func uintPtr(v uint) *uint { return &v }

func TestResolvePreResolvedFastPath(t *testing.T) {
	table := NewRateTable(testRates())
	r := testResolver()

	res := r.Resolve(table, ResolveInput{
		UnitRateID:   uintPtr(2),
		UnitRateName: "Parallel",
		CurrencyCode: "VES",
	})

	assert.Equal(t, RateSourcePreResolved, res.Source)
	assert.True(t, res.Rate.Equal(dec("42.50")))
	assert.Equal(t, "Parallel", res.RateName)
	assert.True(t, res.IsSpecial)
}

func TestResolveUnitRateBeatsProductRate(t *testing.T) {
	table := NewRateTable(testRates())
	r := testResolver()

	res := r.Resolve(table, ResolveInput{
		UnitRateID:    uintPtr(2),
		ProductRateID: uintPtr(1),
		CurrencyCode:  "VES",
	})

	assert.Equal(t, RateSourceUnit, res.Source)
	require.NotNil(t, res.RateID)
	assert.Equal(t, uint(2), *res.RateID)
	assert.True(t, res.IsSpecial)
}

func TestResolveProductRate(t *testing.T) {
	table := NewRateTable(testRates())
	r := testResolver()

	res := r.Resolve(table, ResolveInput{
		ProductRateID: uintPtr(2),
		CurrencyCode:  "VES",
	})

	assert.Equal(t, RateSourceProduct, res.Source)
	assert.True(t, res.Rate.Equal(dec("42.50")))
}

func TestResolveCurrencyDefault(t *testing.T) {
	table := NewRateTable(testRates())
	r := testResolver()

	res := r.Resolve(table, ResolveInput{CurrencyCode: "VES"})

	assert.Equal(t, RateSourceDefault, res.Source)
	assert.True(t, res.Rate.Equal(dec("40.00")))
	assert.Equal(t, "BCV", res.RateName)
	assert.False(t, res.IsSpecial)
}

func TestResolveInactiveUnitRateFallsThrough(t *testing.T) {
	table := NewRateTable(testRates())
	r := testResolver()

	// Rate 4 is inactive, so the unit binding cannot match and resolution
	// continues down the hierarchy to the product binding.
	res := r.Resolve(table, ResolveInput{
		UnitRateID:    uintPtr(4),
		ProductRateID: uintPtr(1),
		CurrencyCode:  "VES",
	})

	assert.Equal(t, RateSourceProduct, res.Source)
	assert.True(t, res.Rate.Equal(dec("40.00")))
}

func TestResolveFallbackOnEmptyRegistry(t *testing.T) {
	table := NewRateTable(nil)
	r := NewResolver(dec("36.50"), newDiscardLogger())

	res := r.Resolve(table, ResolveInput{CurrencyCode: "VES"})

	assert.Equal(t, RateSourceFallback, res.Source)
	assert.True(t, res.Rate.Equal(dec("36.50")))
	assert.Nil(t, res.RateID)
	assert.False(t, res.IsSpecial)
}

func TestResolveFallbackOnUnknownCurrency(t *testing.T) {
	table := NewRateTable(testRates())
	r := testResolver()

	res := r.Resolve(table, ResolveInput{CurrencyCode: "COP"})

	assert.Equal(t, RateSourceFallback, res.Source)
	assert.Equal(t, "COP", res.CurrencyCode)
}

func newDiscardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
