package cart

import (
	"fmt"
	"slices"

	"github.com/erp/pos/internal/domain/catalog"
	"github.com/erp/pos/internal/domain/shared"
	"github.com/erp/pos/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Cart errors
var (
	ErrInvalidQuantity  = shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	ErrLineNotFound     = shared.NewDomainError("LINE_NOT_FOUND", "Cart line not found")
	ErrCurrencyMismatch = shared.NewDomainError("CURRENCY_MISMATCH", "Product currency does not match cart currency")
	ErrInvalidProduct   = shared.NewDomainError("INVALID_PRODUCT", "Product cannot be empty")
)

// Cart is the ordered list of lines the user is building up.
// Adding the same product twice yields two lines; lines are addressed by
// their displayed position. Every change raises a domain event.
type Cart struct {
	shared.BaseAggregateRoot
	currency valueobject.Currency
	lines    []Line
}

// New creates an empty cart priced in the given currency
func New(currency valueobject.Currency) *Cart {
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		currency:          currency,
	}
}

// Currency returns the cart currency
func (c *Cart) Currency() valueobject.Currency {
	return c.currency
}

// AddItem appends a new line for product x quantity
func (c *Cart) AddItem(product *catalog.Product, quantity int64) (Line, error) {
	if product == nil {
		return Line{}, ErrInvalidProduct
	}
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	if product.UnitPrice.Currency() != c.currency {
		return Line{}, shared.NewDomainError(ErrCurrencyMismatch.Code,
			fmt.Sprintf("Product %s is priced in %s, cart uses %s", product.Name, product.UnitPrice.Currency(), c.currency))
	}

	line := Line{
		ID:       uuid.New(),
		Product:  product,
		Quantity: quantity,
	}
	c.lines = append(c.lines, line)
	c.AddDomainEvent(NewCartItemAddedEvent(c, line, len(c.lines)-1))
	return line, nil
}

// RemoveAt removes the line at the given 0-based position and returns it.
// The remaining lines keep their relative order.
func (c *Cart) RemoveAt(position int) (Line, error) {
	if position < 0 || position >= len(c.lines) {
		return Line{}, shared.NewDomainError(ErrLineNotFound.Code,
			fmt.Sprintf("No cart line at position %d (cart has %d lines)", position, len(c.lines)))
	}

	removed := c.lines[position]
	c.lines = slices.Delete(c.lines, position, position+1)
	c.AddDomainEvent(NewCartItemRemovedEvent(c, removed, position))
	return removed, nil
}

// Lines returns a copy of the lines in display order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear drops every line. Clearing an empty cart raises no event.
func (c *Cart) Clear() {
	if len(c.lines) == 0 {
		return
	}
	count := len(c.lines)
	c.lines = nil
	c.AddDomainEvent(NewCartClearedEvent(c, count))
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}
