package checkout

import (
	"strconv"

	"github.com/erp/pos/internal/domain/cart"
	"github.com/erp/pos/internal/domain/shared/valueobject"
)

// FormatAmount renders money with two decimals, rounding half away from zero
func FormatAmount(m valueobject.Money) string {
	return m.StringFixed(2)
}

// FormatLine renders a cart line the way the cart list shows it:
//
//	Tea  x3  90
//	Tea  x3  90 (discounted: 63.00)
//
// The discounted amount is appended only when the selected tier reduced the line.
func FormatLine(l cart.QuotedLine) string {
	text := l.Name + "  x" + strconv.FormatInt(l.Quantity, 10) + "  " + l.Subtotal.Display()
	if l.DiscountApplied {
		text += " (discounted: " + FormatAmount(l.Discounted) + ")"
	}
	return text
}

func toQuoteView(q cart.Quote) QuoteView {
	view := QuoteView{
		Tier:     q.Tier.Name,
		Currency: string(q.Total.Currency()),
		Lines:    make([]LineView, len(q.Lines)),
		Subtotal: FormatAmount(q.Subtotal),
		Discount: FormatAmount(q.Discount),
		Total:    FormatAmount(q.Total),
	}
	for i, l := range q.Lines {
		view.ItemCount += l.Quantity
		view.Lines[i] = LineView{
			Position:        l.Position,
			Name:            l.Name,
			Quantity:        l.Quantity,
			UnitPrice:       FormatAmount(l.UnitPrice),
			Subtotal:        FormatAmount(l.Subtotal),
			Discounted:      FormatAmount(l.Discounted),
			Discountable:    l.Discountable,
			DiscountApplied: l.DiscountApplied,
			Text:            FormatLine(l),
		}
	}
	return view
}
