package pricing

import "github.com/erp/pos/internal/domain/shared/valueobject"

// LinePrice is the outcome of pricing one cart line
type LinePrice struct {
	Subtotal   valueobject.Money // unit price x quantity
	Discounted valueobject.Money // what the customer pays for the line
	Applied    bool              // whether the tier reduced this line
}

// Discount returns how much the tier took off this line
func (p LinePrice) Discount() valueobject.Money {
	d, _ := p.Subtotal.Subtract(p.Discounted)
	return d
}

// PriceLine applies the pricing rule to a single line: the subtotal is
// unitPrice x quantity, and only discountable lines are multiplied by the
// tier's factor.
func PriceLine(unitPrice valueobject.Money, quantity int64, discountable bool, tier DiscountTier) LinePrice {
	subtotal := unitPrice.MultiplyByInt(quantity)
	if !discountable || tier.IsNone() {
		return LinePrice{Subtotal: subtotal, Discounted: subtotal}
	}
	return LinePrice{
		Subtotal:   subtotal,
		Discounted: subtotal.Multiply(tier.Factor()),
		Applied:    true,
	}
}
