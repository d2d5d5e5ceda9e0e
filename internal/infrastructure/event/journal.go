package event

import (
	"context"

	"github.com/erp/pos/internal/domain/cart"
	"github.com/erp/pos/internal/domain/shared"
	"go.uber.org/zap"
)

// JournalHandler writes cart activity to the log, one entry per event
type JournalHandler struct {
	logger *zap.Logger
}

var _ shared.EventHandler = (*JournalHandler)(nil)

// NewJournalHandler creates a journal writing to logger
func NewJournalHandler(logger *zap.Logger) *JournalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalHandler{logger: logger}
}

// EventTypes returns the cart event types
func (h *JournalHandler) EventTypes() []string {
	return []string{
		cart.EventTypeCartItemAdded,
		cart.EventTypeCartItemRemoved,
		cart.EventTypeCartCleared,
	}
}

// Handle logs the event
func (h *JournalHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("cart_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *cart.CartItemAddedEvent:
		fields = append(fields,
			zap.Int("position", e.Position),
			zap.String("product", e.ProductName),
			zap.Int64("quantity", e.Quantity),
			zap.String("unit_price", e.UnitPrice))
	case *cart.CartItemRemovedEvent:
		fields = append(fields,
			zap.Int("position", e.Position),
			zap.String("product", e.ProductName),
			zap.Int64("quantity", e.Quantity))
	case *cart.CartClearedEvent:
		fields = append(fields, zap.Int("lines", e.LineCount))
	}

	h.logger.Info("Cart journal", fields...)
	return nil
}
