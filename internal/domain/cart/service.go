// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/pricing"
	"github.com/your-org/pos-backend/internal/domain/product"
)

// Service wires the cart aggregate to the rest of the system: carts live in
// Redis keyed by terminal session, products come from the catalog, and every
// read reprices the cart against the latest registry snapshot so a rate
// refresh reaches open carts on their next touch.
type Service struct {
	redisClient *redis.Client
	config      *config.Config
	rates       *pricing.Service
	products    *product.Service
	resolver    *pricing.Resolver
	log         *logrus.Logger
}

// NewService creates a new cart service
func NewService(redisClient *redis.Client, cfg *config.Config, rates *pricing.Service, products *product.Service, log *logrus.Logger) *Service {
	fallback, err := decimal.NewFromString(cfg.Currency.FallbackRate)
	if err != nil || fallback.Sign() <= 0 {
		fallback = decimal.NewFromInt(1)
	}

	return &Service{
		redisClient: redisClient,
		config:      cfg,
		rates:       rates,
		products:    products,
		resolver:    pricing.NewResolver(fallback, log),
		log:         log,
	}
}

// sessionCart is the Redis persistence form of one terminal's cart
type sessionCart struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AddToCartRequest represents add to cart request. ExchangeRateID and
// ExchangeRateName are optional passthroughs for clients whose unit object
// already carries a resolved rate binding.
type AddToCartRequest struct {
	ProductID        uint   `json:"product_id" binding:"required"`
	UnitName         string `json:"unit_name"`
	SerialNumber     string `json:"serial_number"`
	ExchangeRateID   *uint  `json:"exchange_rate_id"`
	ExchangeRateName string `json:"exchange_rate_name"`
}

// UpdateQuantityRequest represents an update quantity request. The quantity
// arrives as a decimal string; malformed input normalizes to zero, which
// removes the line.
type UpdateQuantityRequest struct {
	Quantity string `json:"quantity" binding:"required"`
}

// UpdateLineItemRequest represents a metadata merge request
type UpdateLineItemRequest struct {
	DiscountUSD   *string `json:"discount_usd"`
	SalespersonID *uint   `json:"salesperson_id"`
	Note          *string `json:"note"`
}

// ConvertRequest drives the dual-mode quantity editor for one line item
type ConvertRequest struct {
	Mode     string `json:"mode" binding:"required,oneof=quantity amount"`
	Value    string `json:"value" binding:"required"`
	Currency string `json:"currency"`
	Apply    bool   `json:"apply"`
}

// ConvertResponse is the synchronized editor state after a conversion
type ConvertResponse struct {
	ItemID   string          `json:"item_id"`
	Mode     EditorMode      `json:"mode"`
	Currency string          `json:"currency"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// CartResponse represents a cart with its items and aggregated totals
type CartResponse struct {
	SessionID  string             `json:"session_id"`
	Items      []LineItem         `json:"items"`
	Totals     Totals             `json:"totals"`
	Currencies []pricing.Currency `json:"currencies"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// GetCart retrieves a terminal's cart, repriced against the latest registry
// snapshot
func (s *Service) GetCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	sc, c, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	table, err := s.rates.Snapshot()
	if err != nil {
		return nil, err
	}

	if changed := c.Reprice(table); changed > 0 {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"changed":    changed,
		}).Info("Cart repriced after registry change")
		if err := s.saveCart(ctx, sc, c); err != nil {
			return nil, err
		}
	}

	return s.buildResponse(sc, c, table)
}

// AddToCart adds a product unit to a terminal's cart
func (s *Service) AddToCart(ctx context.Context, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	p, err := s.products.Get(req.ProductID)
	if err != nil {
		return nil, err
	}

	if p.IsSerialized && req.SerialNumber == "" {
		return nil, fmt.Errorf("serial number required for product %s", p.SKU)
	}

	unit := UnitInfo{
		Name:             req.UnitName,
		ConversionFactor: decimal.NewFromInt(1),
		SerialNumber:     req.SerialNumber,
		ExchangeRateID:   req.ExchangeRateID,
		ExchangeRateName: req.ExchangeRateName,
	}
	if req.UnitName == "" {
		unit.Name = "unit"
	} else {
		pu, err := s.products.GetUnit(req.ProductID, req.UnitName)
		if err != nil {
			return nil, err
		}
		unit.PriceUSD = pu.PriceUSD
		if pu.ConversionFactor.Sign() > 0 {
			unit.ConversionFactor = pu.ConversionFactor
		}
		if unit.ExchangeRateID == nil {
			unit.ExchangeRateID = pu.ExchangeRateID
		}
	}

	info := ProductInfo{
		ID:             p.ID,
		Name:           p.Name,
		SKU:            p.SKU,
		PriceUSD:       p.PriceUSD,
		ExchangeRateID: p.ExchangeRateID,
		Stock:          p.Stock,
	}

	sc, c, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	table, err := s.rates.Snapshot()
	if err != nil {
		return nil, err
	}

	c.Add(info, unit, table, s.resolver, s.config.Currency.LocalCode)

	if err := s.saveCart(ctx, sc, c); err != nil {
		return nil, err
	}

	return s.buildResponse(sc, c, table)
}

// UpdateQuantity sets a line item quantity; zero or malformed input removes
// the line, unknown item ids are a no-op
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, itemID string, req *UpdateQuantityRequest) (*CartResponse, error) {
	sc, c, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.UpdateQuantity(itemID, parseAmount(req.Quantity))

	if err := s.saveCart(ctx, sc, c); err != nil {
		return nil, err
	}

	table, err := s.rates.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.buildResponse(sc, c, table)
}

// RemoveItem removes a line item; absent ids are a no-op
func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) (*CartResponse, error) {
	sc, c, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Remove(itemID)

	if err := s.saveCart(ctx, sc, c); err != nil {
		return nil, err
	}

	table, err := s.rates.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.buildResponse(sc, c, table)
}

// UpdateLineItem merges metadata into a line item
func (s *Service) UpdateLineItem(ctx context.Context, sessionID, itemID string, req *UpdateLineItemRequest) (*CartResponse, error) {
	sc, c, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	patch := LineItemPatch{
		SalespersonID: req.SalespersonID,
		Note:          req.Note,
	}
	if req.DiscountUSD != nil {
		discount := parseAmount(*req.DiscountUSD)
		patch.DiscountUSD = &discount
	}

	c.Update(itemID, patch)

	if err := s.saveCart(ctx, sc, c); err != nil {
		return nil, err
	}

	table, err := s.rates.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.buildResponse(sc, c, table)
}

// ClearCart empties a terminal's cart
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	return s.redisClient.Del(ctx, s.cartKey(sessionID)).Err()
}

// Reprice forces a reprice against a freshly loaded registry snapshot; the
// rates admin screen calls this after saving a new rate table
func (s *Service) Reprice(ctx context.Context, sessionID string) (*CartResponse, error) {
	table, err := s.rates.Refresh()
	if err != nil {
		return nil, err
	}

	sc, c, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if changed := c.Reprice(table); changed > 0 {
		if err := s.saveCart(ctx, sc, c); err != nil {
			return nil, err
		}
	}

	return s.buildResponse(sc, c, table)
}

// Convert runs the dual-mode quantity editor over one line item. With Apply
// set the derived quantity is written back to the cart.
func (s *Service) Convert(ctx context.Context, sessionID, itemID string, req *ConvertRequest) (*ConvertResponse, error) {
	sc, c, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item, ok := c.Get(itemID)
	if !ok {
		return nil, fmt.Errorf("item not found in cart")
	}

	table, err := s.rates.Snapshot()
	if err != nil {
		return nil, err
	}

	editor := NewQuantityEditor(item, table, s.config.Currency.AnchorCode)
	if req.Currency != "" {
		editor.SwitchCurrency(req.Currency)
	}

	switch EditorMode(req.Mode) {
	case ModeAmount:
		editor.SetAmount(req.Value)
	default:
		editor.SetQuantity(req.Value)
	}

	if req.Apply {
		c.UpdateQuantity(itemID, editor.Quantity())
		if err := s.saveCart(ctx, sc, c); err != nil {
			return nil, err
		}
	}

	return &ConvertResponse{
		ItemID:   itemID,
		Mode:     editor.Mode(),
		Currency: editor.Currency(),
		Quantity: editor.Quantity(),
		Amount:   editor.Amount(),
	}, nil
}

// Private helpers

func (s *Service) cartKey(sessionID string) string {
	return fmt.Sprintf("pos:cart:%s", sessionID)
}

func (s *Service) loadCart(ctx context.Context, sessionID string) (*sessionCart, *Cart, error) {
	if sessionID == "" {
		return nil, nil, fmt.Errorf("session ID required")
	}

	data, err := s.redisClient.Get(ctx, s.cartKey(sessionID)).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		sc := &sessionCart{
			SessionID: sessionID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return sc, New(), nil
	} else if err != nil {
		return nil, nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var sc sessionCart
	if err := json.Unmarshal([]byte(data), &sc); err != nil {
		return nil, nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	return &sc, NewFromItems(sc.Items), nil
}

func (s *Service) saveCart(ctx context.Context, sc *sessionCart, c *Cart) error {
	sc.Items = c.Items()
	sc.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	return s.redisClient.Set(ctx, s.cartKey(sc.SessionID), data, s.config.Cart.SessionTTL).Err()
}

func (s *Service) buildResponse(sc *sessionCart, c *Cart, table *pricing.RateTable) (*CartResponse, error) {
	currencies, err := s.rates.ActiveCurrencies()
	if err != nil {
		return nil, err
	}

	return &CartResponse{
		SessionID:  sc.SessionID,
		Items:      c.Items(),
		Totals:     c.Totals(table),
		Currencies: currencies,
		UpdatedAt:  sc.UpdatedAt,
	}, nil
}
