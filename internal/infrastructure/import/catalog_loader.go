package csvimport

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/erp/pos/internal/domain/catalog"
	"github.com/erp/pos/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Catalog file columns
const (
	ColumnName         = "name"
	ColumnPrice        = "price"
	ColumnDiscountable = "discountable"
)

// CatalogLoader reads the product catalog from a delimited text file with a
// header row. The discountable column is optional; when absent every product
// is discountable.
type CatalogLoader struct {
	Path      string
	Delimiter rune                 // zero means comma
	Currency  valueobject.Currency // zero means valueobject.DefaultCurrency
	MaxErrors int                  // row errors kept for the report; zero means 100
}

var _ catalog.Source = (*CatalogLoader)(nil)

// Load implements catalog.Source
func (l *CatalogLoader) Load(ctx context.Context) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", l.Path, err)
	}
	defer f.Close()

	c, err := l.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", l.Path, err)
	}
	return c, nil
}

// Parse builds a catalog from CSV content. A single bad row rejects the whole
// file; the returned error lists every row problem found.
func (l *CatalogLoader) Parse(r io.Reader) (*catalog.Catalog, error) {
	opts := []ParserOption{}
	if l.Delimiter != 0 {
		opts = append(opts, WithDelimiter(l.Delimiter))
	}

	parser, err := NewCSVParser(r, opts...)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := parser.ValidateHeaders([]string{ColumnName, ColumnPrice}); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing column(s) %s", ErrMissingHeader, strings.Join(missing, ", "))
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}

	currency := l.Currency
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	validator := NewFieldValidator(catalogRules(), l.MaxErrors)
	products := make([]*catalog.Product, 0, len(rows))
	for _, row := range rows {
		if !validator.ValidateRow(row) {
			continue
		}

		price, err := valueobject.NewMoneyFromString(row.Get(ColumnPrice), currency)
		if err != nil {
			validator.Errors().AddTypeError(row.LineNumber, ColumnPrice, string(TypeDecimal), row.Get(ColumnPrice))
			continue
		}
		product, err := catalog.NewProduct(row.Get(ColumnName), price, parseDiscountable(row))
		if err != nil {
			validator.Errors().Add(NewRowError(row.LineNumber, "", ErrCodeImportValidation, err.Error()))
			continue
		}
		products = append(products, product)
	}

	if err := validator.Errors().Err(); err != nil {
		return nil, err
	}
	return catalog.NewCatalog(products)
}

func catalogRules() []FieldRule {
	return []FieldRule{
		Field(ColumnName).Required().MaxLength(200).Unique().Build(),
		Field(ColumnPrice).Required().Decimal().MinValue(decimal.Zero).Build(),
	}
}

// parseDiscountable applies the till's flag rule: a missing column means
// discountable, otherwise only a case-insensitive "true" counts.
func parseDiscountable(row *Row) bool {
	if !row.Has(ColumnDiscountable) {
		return true
	}
	return strings.EqualFold(row.Get(ColumnDiscountable), "true")
}

// LoadCatalog loads the catalog from src. Any failure is logged as a warning
// and yields an empty catalog so the till can still start.
func LoadCatalog(ctx context.Context, src catalog.Source, logger *zap.Logger) *catalog.Catalog {
	c, err := src.Load(ctx)
	if err != nil {
		logger.Warn("Catalog unavailable, starting with an empty catalog", zap.Error(err))
		return catalog.Empty()
	}

	if c.IsEmpty() {
		logger.Warn("Catalog has no products")
		return c
	}

	logger.Info("Catalog loaded", zap.Int("products", c.Len()))
	return c
}
