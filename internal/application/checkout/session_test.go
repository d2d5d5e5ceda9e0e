package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/erp/pos/internal/application/validation"
	"github.com/erp/pos/internal/domain/cart"
	"github.com/erp/pos/internal/domain/catalog"
	"github.com/erp/pos/internal/domain/pricing"
	"github.com/erp/pos/internal/domain/shared"
	"github.com/erp/pos/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	var products []*catalog.Product
	for _, p := range []struct {
		name         string
		price        string
		discountable bool
	}{
		{"Tea", "30", true},
		{"Cake", "25", false},
		{"Cookie", "4.5", true},
	} {
		product, err := catalog.NewProduct(p.name, valueobject.MustNewMoneyFromString(p.price, valueobject.CNY), p.discountable)
		require.NoError(t, err)
		products = append(products, product)
	}
	c, err := catalog.NewCatalog(products)
	require.NoError(t, err)
	return c
}

func newTestSession(t *testing.T) (*Session, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewSession(testCatalog(t), nil, zap.New(core)), logs
}

func add(t *testing.T, s *Session, name string, qty int64) {
	t.Helper()
	_, err := s.AddToCart(context.Background(), AddToCartInput{ProductName: name, Quantity: qty})
	require.NoError(t, err)
}

func TestNewSession(t *testing.T) {
	s, _ := newTestSession(t)

	assert.Equal(t, []string{"Tea", "Cake", "Cookie"}, s.ProductNames())
	assert.Equal(t, pricing.StandardTiers().Names(), s.TierNames())
	assert.Equal(t, "No discount", s.Tier().Name)
	assert.Equal(t, 0, s.CartLen())
	assert.Empty(t, s.CartLines())
}

func TestNewSession_EmptyCatalog(t *testing.T) {
	s := NewSession(nil, nil, nil)

	assert.Empty(t, s.ProductNames())
	_, err := s.AddToCart(context.Background(), AddToCartInput{ProductName: "Tea", Quantity: 1})
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	view := s.Quote(context.Background())
	assert.Equal(t, "0.00", view.Total)
	assert.Equal(t, "CNY", view.Currency)
}

func TestSession_AddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the new line", func(t *testing.T) {
		s, logs := newTestSession(t)

		line, err := s.AddToCart(ctx, AddToCartInput{ProductName: "Cookie", Quantity: 3})
		require.NoError(t, err)

		assert.Equal(t, 0, line.Position)
		assert.Equal(t, "13.50", line.Subtotal)
		assert.Equal(t, "Cookie  x3  13.50", line.Text)
		assert.Equal(t, 1, logs.FilterMessage("Cart line added").Len())
	})

	t.Run("validates input", func(t *testing.T) {
		s, _ := newTestSession(t)

		_, err := s.AddToCart(ctx, AddToCartInput{ProductName: "", Quantity: 0})
		require.ErrorIs(t, err, validation.ErrValidationFailed)
		assert.Contains(t, err.Error(), "product_name")
		assert.Contains(t, err.Error(), "quantity")
		assert.Equal(t, 0, s.CartLen())
	})

	t.Run("unknown product", func(t *testing.T) {
		s, logs := newTestSession(t)

		_, err := s.AddToCart(ctx, AddToCartInput{ProductName: "Coffee", Quantity: 1})
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
		assert.Equal(t, 1, logs.FilterMessage("Unknown product").Len())
	})

	t.Run("same product twice gives two lines", func(t *testing.T) {
		s, _ := newTestSession(t)
		add(t, s, "Tea", 1)
		add(t, s, "Tea", 2)

		assert.Equal(t, []string{"Tea  x1  30", "Tea  x2  60"}, s.CartLines())
	})
}

func TestSession_Quote(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)
	add(t, s, "Tea", 3)
	add(t, s, "Cake", 2)

	t.Run("no discount sums price times quantity", func(t *testing.T) {
		view := s.Quote(ctx)

		assert.Equal(t, "No discount", view.Tier)
		assert.Equal(t, "140.00", view.Subtotal)
		assert.Equal(t, "0.00", view.Discount)
		assert.Equal(t, "140.00", view.Total)
		assert.Equal(t, int64(5), view.ItemCount)
		assert.Equal(t, []string{"Tea  x3  90", "Cake  x2  50"}, s.CartLines())
	})

	t.Run("discount applies to discountable lines only", func(t *testing.T) {
		require.NoError(t, s.SelectDiscount(ctx, "30% off"))

		view := s.Quote(ctx)

		assert.Equal(t, "140.00", view.Subtotal)
		assert.Equal(t, "27.00", view.Discount)
		assert.Equal(t, "113.00", view.Total)
		require.Len(t, view.Lines, 2)
		assert.True(t, view.Lines[0].DiscountApplied)
		assert.Equal(t, "63.00", view.Lines[0].Discounted)
		assert.False(t, view.Lines[1].DiscountApplied)
		assert.Equal(t, "50.00", view.Lines[1].Discounted)
		assert.Equal(t, []string{"Tea  x3  90 (discounted: 63.00)", "Cake  x2  50"}, s.CartLines())
	})

	t.Run("free tier zeroes discountable lines", func(t *testing.T) {
		require.NoError(t, s.SelectDiscount(ctx, "Free"))

		view := s.Quote(ctx)

		assert.Equal(t, "50.00", view.Total)
		assert.Equal(t, "Tea  x3  90 (discounted: 0.00)", view.Lines[0].Text)
	})

	t.Run("selecting a tier replaces the previous one", func(t *testing.T) {
		require.NoError(t, s.SelectDiscount(ctx, "10% off"))
		assert.Equal(t, "131.00", s.Quote(ctx).Total)
	})

	t.Run("unknown tier keeps the current selection", func(t *testing.T) {
		err := s.SelectDiscount(ctx, "Half price")
		assert.ErrorIs(t, err, pricing.ErrTierNotFound)
		assert.Equal(t, "10% off", s.Tier().Name)
	})
}

func TestSession_Quote_RoundsOnlyForDisplay(t *testing.T) {
	ctx := context.Background()
	staff, err := pricing.NewDiscountTier("Staff", decimal.RequireFromString("0.33"))
	require.NoError(t, err)
	tiers, err := pricing.NewTierSet([]pricing.DiscountTier{pricing.NoDiscount(), staff})
	require.NoError(t, err)

	s := NewSession(testCatalog(t), tiers, nil)
	add(t, s, "Cookie", 1)
	add(t, s, "Cookie", 1)
	require.NoError(t, s.SelectDiscount(ctx, "Staff"))

	view := s.Quote(ctx)

	// 4.5 x 0.67 = 3.015 per line; the exact sum 6.03 is rounded once
	assert.Equal(t, "3.02", view.Lines[0].Discounted)
	assert.Equal(t, "6.03", view.Total)
	assert.Equal(t, []string{"No discount", "Staff"}, s.TierNames())
}

func TestSession_RemoveFromCart(t *testing.T) {
	ctx := context.Background()

	t.Run("removes exactly the displayed position", func(t *testing.T) {
		s, logs := newTestSession(t)
		add(t, s, "Tea", 1)
		add(t, s, "Cake", 1)
		add(t, s, "Cookie", 1)

		require.NoError(t, s.RemoveFromCart(ctx, 1))

		assert.Equal(t, []string{"Tea  x1  30", "Cookie  x1  4.50"}, s.CartLines())
		assert.Equal(t, 1, logs.FilterMessage("Cart line removed").Len())
	})

	t.Run("out of range leaves the cart untouched", func(t *testing.T) {
		s, _ := newTestSession(t)
		add(t, s, "Tea", 1)

		for _, pos := range []int{-1, 1, 5} {
			assert.ErrorIs(t, s.RemoveFromCart(ctx, pos), cart.ErrLineNotFound)
		}
		assert.Equal(t, 1, s.CartLen())
	})
}

func TestSession_Reset(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)
	add(t, s, "Tea", 1)
	require.NoError(t, s.SelectDiscount(ctx, "50% off"))

	s.Reset(ctx)

	assert.Equal(t, 0, s.CartLen())
	assert.Equal(t, "No discount", s.Tier().Name)
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{" 12 ", 12, false},
		{"", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"2.5", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuantity(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return m.err
}

func (m *MockEventPublisher) GetEventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.events))
	for i, e := range m.events {
		types[i] = e.EventType()
	}
	return types
}

func TestSession_PublishesCartEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("each change is published once", func(t *testing.T) {
		s, _ := newTestSession(t)
		publisher := &MockEventPublisher{}
		s.SetEventPublisher(publisher)

		add(t, s, "Tea", 2)
		add(t, s, "Cake", 1)
		require.NoError(t, s.RemoveFromCart(ctx, 0))
		_, err := s.AddToCart(ctx, AddToCartInput{ProductName: "Coffee", Quantity: 1})
		require.Error(t, err)
		s.Reset(ctx)

		assert.Equal(t, []string{
			cart.EventTypeCartItemAdded,
			cart.EventTypeCartItemAdded,
			cart.EventTypeCartItemRemoved,
			cart.EventTypeCartCleared,
		}, publisher.GetEventTypes())
	})

	t.Run("publisher failure keeps the change and is logged", func(t *testing.T) {
		s, logs := newTestSession(t)
		s.SetEventPublisher(&MockEventPublisher{err: errors.New("journal full")})

		add(t, s, "Tea", 1)

		assert.Equal(t, 1, s.CartLen())
		assert.Equal(t, 1, logs.FilterMessage("Failed to publish cart events").Len())
	})
}
