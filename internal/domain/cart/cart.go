// internal/domain/cart/cart.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/pricing"
)

// Cart is the in-memory aggregate for one checkout session. It owns an
// ordered list of line items and guarantees their monetary fields stay
// consistent with quantity, unit price and resolved rate after every
// operation. A cart has exactly one logical writer (its terminal session);
// callers embedding it in a concurrent host must serialize access.
type Cart struct {
	items []*LineItem
	index map[string]*LineItem
}

// New creates an empty cart
func New() *Cart {
	return &Cart{
		index: make(map[string]*LineItem),
	}
}

// NewFromItems rehydrates a cart from persisted line items, preserving order
func NewFromItems(items []LineItem) *Cart {
	c := New()
	for i := range items {
		li := items[i]
		c.items = append(c.items, &li)
		c.index[li.ID] = &li
	}
	return c
}

// Add appends a product/unit to the cart. If a line with the same identity
// already exists its quantity is incremented by one and the existing rate
// binding is kept untouched; resolution happens only when a new line is
// created.
func (c *Cart) Add(p ProductInfo, u UnitInfo, table *pricing.RateTable, resolver *pricing.Resolver, targetCurrency string) *LineItem {
	id := u.key(p.ID).String()

	if existing, ok := c.index[id]; ok {
		existing.Quantity = existing.Quantity.Add(decimal.NewFromInt(1))
		existing.recompute()
		return existing
	}

	unitPrice := u.PriceUSD
	if unitPrice.IsZero() {
		unitPrice = p.PriceUSD
	}
	factor := u.ConversionFactor
	if factor.IsZero() {
		factor = decimal.NewFromInt(1)
	}

	res := resolver.Resolve(table, pricing.ResolveInput{
		UnitRateID:    u.ExchangeRateID,
		UnitRateName:  u.ExchangeRateName,
		ProductRateID: p.ExchangeRateID,
		CurrencyCode:  targetCurrency,
	})

	item := &LineItem{
		ID:               id,
		ProductID:        p.ID,
		Name:             p.Name,
		SKU:              p.SKU,
		UnitName:         u.Name,
		ConversionFactor: factor,
		Quantity:         decimal.NewFromInt(1),
		UnitPriceUSD:     unitPrice,
		ExchangeRate:     res.Rate,
		ExchangeRateID:   res.RateID,
		ExchangeRateName: res.RateName,
		CurrencyCode:     res.CurrencyCode,
		RateSource:       res.Source,
		IsSpecialRate:    res.IsSpecial,
		SerialNumber:     u.SerialNumber,
		StockSnapshot:    p.Stock,
		DiscountUSD:      decimal.Zero,
		AddedAt:          time.Now().UTC(),
	}
	item.recompute()

	c.items = append(c.items, item)
	c.index[id] = item
	return item
}

// UpdateQuantity sets a line's quantity and re-derives its subtotals from the
// unchanged unit price and rate. A quantity of zero or less removes the line.
// An unknown id is a no-op: callers only hold ids they got from this cart, so
// a miss means the line is already gone.
func (c *Cart) UpdateQuantity(id string, quantity decimal.Decimal) {
	item, ok := c.index[id]
	if !ok {
		return
	}

	if quantity.Sign() <= 0 {
		c.Remove(id)
		return
	}

	item.Quantity = quantity
	item.recompute()
}

// Remove deletes a line unconditionally; absent ids are a no-op
func (c *Cart) Remove(id string) {
	if _, ok := c.index[id]; !ok {
		return
	}
	delete(c.index, id)
	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
}

// Update merges metadata fields into a line item. Unknown ids are a no-op.
func (c *Cart) Update(id string, patch LineItemPatch) {
	item, ok := c.index[id]
	if !ok {
		return
	}

	if patch.DiscountUSD != nil {
		item.DiscountUSD = *patch.DiscountUSD
	}
	if patch.SalespersonID != nil {
		item.SalespersonID = patch.SalespersonID
	}
	if patch.Note != nil {
		item.Note = *patch.Note
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
	c.index = make(map[string]*LineItem)
}

// Items returns a copy of the line items in insertion order
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	for i, item := range c.items {
		out[i] = *item
	}
	return out
}

// Get returns a copy of one line item by id
func (c *Cart) Get(id string) (LineItem, bool) {
	item, ok := c.index[id]
	if !ok {
		return LineItem{}, false
	}
	return *item, true
}

// Len returns the number of lines in the cart
func (c *Cart) Len() int {
	return len(c.items)
}
