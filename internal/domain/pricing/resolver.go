// internal/domain/pricing/resolver.go
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RateSource identifies which level of the rate hierarchy produced a
// resolution
type RateSource string

const (
	RateSourceUnit        RateSource = "unit"
	RateSourceProduct     RateSource = "product"
	RateSourceDefault     RateSource = "default"
	RateSourcePreResolved RateSource = "pre-resolved"
	RateSourceFallback    RateSource = "fallback"
)

// Resolution is the outcome of picking an exchange rate for a line item
type Resolution struct {
	Rate         decimal.Decimal `json:"rate"`
	RateID       *uint           `json:"rate_id,omitempty"`
	RateName     string          `json:"rate_name,omitempty"`
	CurrencyCode string          `json:"currency_code"`
	Source       RateSource      `json:"source"`
	IsSpecial    bool            `json:"is_special"`
}

// ResolveInput carries the rate bindings declared on the unit and product
// being added to a cart. The cart layer maps its catalog entities into this
// struct so the resolver stays independent of them.
type ResolveInput struct {
	// UnitRateID is the rate binding declared on the sellable unit, if any
	UnitRateID *uint
	// UnitRateName is set when the unit already carries the resolved rate
	// name, enabling the pre-resolved fast path
	UnitRateName string
	// ProductRateID is the rate binding declared on the product, if any
	ProductRateID *uint
	// CurrencyCode is the target currency whose default applies when neither
	// the unit nor the product pins a rate
	CurrencyCode string
}

// strategy is one level of the rate hierarchy. match returns the registry
// entry this level selects, or nil when the level does not apply.
type strategy struct {
	source RateSource
	match  func(t *RateTable, in ResolveInput) *ExchangeRate
}

// Resolver picks the effective exchange rate for a line item by walking the
// hierarchy unit > product > currency default, with a configured constant as
// the last resort. Each level is an explicit entry in the strategy list so
// the precedence order is data, not nesting.
type Resolver struct {
	fallbackRate decimal.Decimal
	strategies   []strategy
	log          *logrus.Logger
}

// NewResolver creates a resolver with the given last-resort rate
func NewResolver(fallbackRate decimal.Decimal, log *logrus.Logger) *Resolver {
	r := &Resolver{
		fallbackRate: fallbackRate,
		log:          log,
	}

	r.strategies = []strategy{
		{
			// Fast path: the unit arrived with its rate already resolved by a
			// previous lookup. Trust the id as long as it is still active.
			source: RateSourcePreResolved,
			match: func(t *RateTable, in ResolveInput) *ExchangeRate {
				if in.UnitRateID == nil || in.UnitRateName == "" {
					return nil
				}
				if rate, ok := t.ByID(*in.UnitRateID); ok {
					return rate
				}
				return nil
			},
		},
		{
			source: RateSourceUnit,
			match: func(t *RateTable, in ResolveInput) *ExchangeRate {
				if in.UnitRateID == nil {
					return nil
				}
				if rate, ok := t.ByID(*in.UnitRateID); ok {
					return rate
				}
				return nil
			},
		},
		{
			source: RateSourceProduct,
			match: func(t *RateTable, in ResolveInput) *ExchangeRate {
				if in.ProductRateID == nil {
					return nil
				}
				if rate, ok := t.ByID(*in.ProductRateID); ok {
					return rate
				}
				return nil
			},
		},
		{
			source: RateSourceDefault,
			match: func(t *RateTable, in ResolveInput) *ExchangeRate {
				if rate, ok := t.DefaultFor(in.CurrencyCode); ok {
					return rate
				}
				return nil
			},
		},
	}

	return r
}

// Resolve walks the hierarchy and returns the first active match. When no
// level matches, the configured fallback rate is returned; that only happens
// on a misconfigured registry (no default rate for the target currency), so
// it is logged as a warning rather than treated as normal.
func (r *Resolver) Resolve(t *RateTable, in ResolveInput) Resolution {
	for _, s := range r.strategies {
		rate := s.match(t, in)
		if rate == nil {
			continue
		}
		id := rate.ID
		return Resolution{
			Rate:         rate.Rate,
			RateID:       &id,
			RateName:     rate.Name,
			CurrencyCode: rate.CurrencyCode,
			Source:       s.source,
			IsSpecial:    !rate.IsDefault,
		}
	}

	r.log.WithFields(logrus.Fields{
		"currency_code": in.CurrencyCode,
		"fallback_rate": r.fallbackRate.String(),
	}).Warn("No active exchange rate matched; using fallback rate")

	return Resolution{
		Rate:         r.fallbackRate,
		CurrencyCode: in.CurrencyCode,
		Source:       RateSourceFallback,
		IsSpecial:    false,
	}
}
