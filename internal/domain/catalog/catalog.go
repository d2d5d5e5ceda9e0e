package catalog

import (
	"context"

	"github.com/erp/pos/internal/domain/shared"
)

// ErrProductNotFound is returned when a product name is not in the catalog
var ErrProductNotFound = shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found in catalog")

// Catalog is the static, ordered list of products loaded at startup.
// It is never mutated after construction.
type Catalog struct {
	products []*Product
	byName   map[string]*Product
}

// Source loads a catalog from some backing store
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// NewCatalog builds a catalog preserving the given order. Names must be unique.
func NewCatalog(products []*Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]*Product, 0, len(products)),
		byName:   make(map[string]*Product, len(products)),
	}
	for _, p := range products {
		if p == nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Catalog cannot contain a nil product")
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Duplicate product name: "+p.Name)
		}
		c.products = append(c.products, p)
		c.byName[p.Name] = p
	}
	return c, nil
}

// Empty returns a catalog with no products
func Empty() *Catalog {
	return &Catalog{byName: map[string]*Product{}}
}

// Products returns the products in catalog order
func (c *Catalog) Products() []*Product {
	out := make([]*Product, len(c.products))
	copy(out, c.products)
	return out
}

// Names returns the product names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.products))
	for i, p := range c.products {
		names[i] = p.Name
	}
	return names
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

// IsEmpty returns true if the catalog holds no products
func (c *Catalog) IsEmpty() bool {
	return len(c.products) == 0
}

// FindByName looks a product up by its exact name
func (c *Catalog) FindByName(name string) (*Product, error) {
	if p, ok := c.byName[name]; ok {
		return p, nil
	}
	return nil, shared.NewDomainError(ErrProductNotFound.Code, "Product not found in catalog: "+name)
}
