package checkout

import (
	"context"

	"github.com/erp/pos/internal/application/validation"
	"github.com/erp/pos/internal/domain/cart"
	"github.com/erp/pos/internal/domain/catalog"
	"github.com/erp/pos/internal/domain/pricing"
	"github.com/erp/pos/internal/domain/shared"
	"github.com/erp/pos/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is one cashier's in-progress order: the catalog on offer, the cart
// being built and the selected discount tier. It is not safe for concurrent
// use; the till drives it from a single goroutine.
type Session struct {
	ID      uuid.UUID
	catalog *catalog.Catalog
	tiers   *pricing.TierSet
	cart    *cart.Cart
	tier    pricing.DiscountTier
	logger  *zap.Logger

	eventPublisher shared.EventPublisher
}

// NewSession starts a session with an empty cart and the first tier selected.
// A nil tier set means the standard tiers.
func NewSession(c *catalog.Catalog, tiers *pricing.TierSet, logger *zap.Logger) *Session {
	if c == nil {
		c = catalog.Empty()
	}
	if tiers == nil {
		tiers = pricing.StandardTiers()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.New()
	return &Session{
		ID:      id,
		catalog: c,
		tiers:   tiers,
		cart:    cart.New(catalogCurrency(c)),
		tier:    tiers.Default(),
		logger:  logger.With(zap.String("session_id", id.String())),
	}
}

// SetEventPublisher sets where cart events go. Without one they are dropped.
func (s *Session) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvents hands the cart's pending events to the publisher. A failing
// publisher never undoes the cart change.
func (s *Session) publishEvents(ctx context.Context) {
	events := s.cart.GetDomainEvents()
	s.cart.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish cart events", zap.Int("events", len(events)), zap.Error(err))
	}
}

func catalogCurrency(c *catalog.Catalog) valueobject.Currency {
	if products := c.Products(); len(products) > 0 {
		return products[0].UnitPrice.Currency()
	}
	return valueobject.DefaultCurrency
}

// AddToCart appends a new line for the named product. Adding a product that
// is already in the cart adds a second line.
func (s *Session) AddToCart(ctx context.Context, input AddToCartInput) (*LineView, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	product, err := s.catalog.FindByName(input.ProductName)
	if err != nil {
		s.logger.Warn("Unknown product", zap.String("product", input.ProductName))
		return nil, err
	}

	if _, err := s.cart.AddItem(product, input.Quantity); err != nil {
		return nil, err
	}
	s.publishEvents(ctx)

	s.logger.Info("Cart line added",
		zap.String("product", product.Name),
		zap.Int64("quantity", input.Quantity),
		zap.Int("lines", s.cart.Len()))

	q := s.cart.Quote(s.tier)
	view := toQuoteView(q).Lines[len(q.Lines)-1]
	return &view, nil
}

// RemoveFromCart removes the line at the given 0-based displayed position
func (s *Session) RemoveFromCart(ctx context.Context, position int) error {
	removed, err := s.cart.RemoveAt(position)
	if err != nil {
		return err
	}
	s.publishEvents(ctx)

	s.logger.Info("Cart line removed",
		zap.Int("position", position),
		zap.String("product", removed.Product.Name),
		zap.Int("lines", s.cart.Len()))
	return nil
}

// SelectDiscount selects the named tier. The previous tier is replaced; tiers
// never stack.
func (s *Session) SelectDiscount(ctx context.Context, tierName string) error {
	tier, err := s.tiers.Find(tierName)
	if err != nil {
		return err
	}
	s.tier = tier
	s.logger.Debug("Discount selected", zap.String("tier", tier.Name))
	return nil
}

// Tier returns the selected tier
func (s *Session) Tier() pricing.DiscountTier {
	return s.tier
}

// Quote prices the cart under the selected tier
func (s *Session) Quote(ctx context.Context) QuoteView {
	view := toQuoteView(s.cart.Quote(s.tier))
	s.logger.Info("Total calculated",
		zap.String("tier", view.Tier),
		zap.Int("lines", len(view.Lines)),
		zap.String("total", view.Total))
	return view
}

// CartLines returns the cart list text, one entry per line, in display order
func (s *Session) CartLines() []string {
	q := s.cart.Quote(s.tier)
	lines := make([]string, len(q.Lines))
	for i, l := range q.Lines {
		lines[i] = FormatLine(l)
	}
	return lines
}

// ProductNames returns the catalog product names in catalog order
func (s *Session) ProductNames() []string {
	return s.catalog.Names()
}

// TierNames returns the tier names in order
func (s *Session) TierNames() []string {
	return s.tiers.Names()
}

// CartLen returns the number of cart lines
func (s *Session) CartLen() int {
	return s.cart.Len()
}

// Reset empties the cart and reselects the default tier
func (s *Session) Reset(ctx context.Context) {
	s.cart.Clear()
	s.publishEvents(ctx)
	s.tier = s.tiers.Default()
	s.logger.Info("Session reset")
}
