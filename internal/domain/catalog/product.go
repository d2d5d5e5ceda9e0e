package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/erp/pos/internal/domain/shared"
	"github.com/erp/pos/internal/domain/shared/valueobject"
)

// Product is a purchasable item in the catalog
type Product struct {
	Name         string
	UnitPrice    valueobject.Money
	Discountable bool // whether a discount tier may reduce this product's lines
}

// NewProduct creates a new product
func NewProduct(name string, unitPrice valueobject.Money, discountable bool) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if unitPrice.Currency() == "" {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must carry a currency")
	}

	return &Product{
		Name:         name,
		UnitPrice:    unitPrice,
		Discountable: discountable,
	}, nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
