package checkout

import (
	"strconv"
	"strings"

	"github.com/erp/pos/internal/domain/cart"
	"github.com/erp/pos/internal/domain/shared"
)

// AddToCartInput is what the add button submits
type AddToCartInput struct {
	ProductName string `json:"product_name" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"gt=0"`
}

// LineView is one priced cart line ready for display
type LineView struct {
	Position        int
	Name            string
	Quantity        int64
	UnitPrice       string
	Subtotal        string
	Discounted      string
	Discountable    bool
	DiscountApplied bool
	Text            string // listbox text, see FormatLine
}

// QuoteView is the priced cart ready for display. Amounts carry two decimals.
type QuoteView struct {
	Tier      string
	Currency  string
	Lines     []LineView
	ItemCount int64
	Subtotal  string
	Discount  string
	Total     string
}

// ParseQuantity converts the quantity field text to a positive integer
func ParseQuantity(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, shared.NewDomainError(cart.ErrInvalidQuantity.Code, "Quantity is required")
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil || n <= 0 {
		return 0, shared.NewDomainError(cart.ErrInvalidQuantity.Code, "Quantity must be a positive whole number, got "+strconv.Quote(text))
	}
	return n, nil
}
