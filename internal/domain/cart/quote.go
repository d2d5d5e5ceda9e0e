package cart

import (
	"github.com/erp/pos/internal/domain/pricing"
	"github.com/erp/pos/internal/domain/shared/valueobject"
)

// QuotedLine is a cart line priced under a discount tier
type QuotedLine struct {
	Position        int
	Name            string
	Quantity        int64
	UnitPrice       valueobject.Money
	Discountable    bool
	Subtotal        valueobject.Money
	Discounted      valueobject.Money
	DiscountApplied bool
}

// Quote is the priced cart. Amounts are exact; round only for display.
type Quote struct {
	Tier     pricing.DiscountTier
	Lines    []QuotedLine
	Subtotal valueobject.Money // sum of undiscounted line subtotals
	Discount valueobject.Money // Subtotal - Total
	Total    valueobject.Money
}

// Quote prices every line under the given tier.
// Total = sum over lines of price x quantity, with discountable lines
// multiplied by (1 - rate).
func (c *Cart) Quote(tier pricing.DiscountTier) Quote {
	q := Quote{
		Tier:     tier,
		Lines:    make([]QuotedLine, 0, len(c.lines)),
		Subtotal: valueobject.Zero(c.currency),
		Total:    valueobject.Zero(c.currency),
	}

	for i, l := range c.lines {
		p := pricing.PriceLine(l.Product.UnitPrice, l.Quantity, l.Product.Discountable, tier)
		q.Lines = append(q.Lines, QuotedLine{
			Position:        i,
			Name:            l.Product.Name,
			Quantity:        l.Quantity,
			UnitPrice:       l.Product.UnitPrice,
			Discountable:    l.Product.Discountable,
			Subtotal:        p.Subtotal,
			Discounted:      p.Discounted,
			DiscountApplied: p.Applied,
		})
		// AddItem guarantees a single currency, so MustAdd cannot panic here
		q.Subtotal = q.Subtotal.MustAdd(p.Subtotal)
		q.Total = q.Total.MustAdd(p.Discounted)
	}

	q.Discount, _ = q.Subtotal.Subtract(q.Total)
	return q
}
