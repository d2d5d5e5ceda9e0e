package cart

import (
	"github.com/erp/pos/internal/domain/catalog"
	"github.com/erp/pos/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Line is one (product, quantity) entry in the in-progress order
type Line struct {
	ID       uuid.UUID
	Product  *catalog.Product
	Quantity int64
}

// Subtotal returns unit price x quantity before any discount
func (l Line) Subtotal() valueobject.Money {
	return l.Product.UnitPrice.MultiplyByInt(l.Quantity)
}
