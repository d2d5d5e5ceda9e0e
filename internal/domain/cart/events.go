package cart

import (
	"github.com/erp/pos/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeCart is the aggregate type for cart events
const AggregateTypeCart = "Cart"

// Cart event types
const (
	EventTypeCartItemAdded   = "CartItemAdded"
	EventTypeCartItemRemoved = "CartItemRemoved"
	EventTypeCartCleared     = "CartCleared"
)

// CartItemAddedEvent is raised when a line is appended
type CartItemAddedEvent struct {
	shared.BaseDomainEvent
	LineID      uuid.UUID `json:"line_id"`
	Position    int       `json:"position"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
}

// CartItemRemovedEvent is raised when a line is removed by position
type CartItemRemovedEvent struct {
	shared.BaseDomainEvent
	LineID      uuid.UUID `json:"line_id"`
	Position    int       `json:"position"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
}

// CartClearedEvent is raised when every line is dropped at once
type CartClearedEvent struct {
	shared.BaseDomainEvent
	LineCount int `json:"line_count"`
}

// NewCartItemAddedEvent creates a CartItemAddedEvent
func NewCartItemAddedEvent(c *Cart, line Line, position int) *CartItemAddedEvent {
	return &CartItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartItemAdded, AggregateTypeCart, c.ID),
		LineID:          line.ID,
		Position:        position,
		ProductName:     line.Product.Name,
		Quantity:        line.Quantity,
		UnitPrice:       line.Product.UnitPrice.StringFixed(2),
	}
}

// NewCartItemRemovedEvent creates a CartItemRemovedEvent
func NewCartItemRemovedEvent(c *Cart, line Line, position int) *CartItemRemovedEvent {
	return &CartItemRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartItemRemoved, AggregateTypeCart, c.ID),
		LineID:          line.ID,
		Position:        position,
		ProductName:     line.Product.Name,
		Quantity:        line.Quantity,
	}
}

// NewCartClearedEvent creates a CartClearedEvent
func NewCartClearedEvent(c *Cart, lineCount int) *CartClearedEvent {
	return &CartClearedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCleared, AggregateTypeCart, c.ID),
		LineCount:       lineCount,
	}
}
