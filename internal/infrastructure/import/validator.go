package csvimport

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// FieldType represents the expected type of a field
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeDecimal FieldType = "decimal"
)

// FieldRule defines validation rules for a column
type FieldRule struct {
	Column     string
	Type       FieldType
	Required   bool
	MaxLength  int // in runes
	MinValue   *decimal.Decimal
	Unique     bool
	CustomFunc func(value string) error
}

// FieldRuleBuilder helps build field rules fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field creates a new field rule builder
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{
		rule: FieldRule{
			Column: column,
			Type:   TypeString,
		},
	}
}

// Required marks the field as required
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// Decimal sets the field type to decimal
func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// MaxLength sets the maximum length
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// MinValue sets the minimum numeric value
func (b *FieldRuleBuilder) MinValue(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.MinValue = &v
	return b
}

// Unique marks the field as unique within the file
func (b *FieldRuleBuilder) Unique() *FieldRuleBuilder {
	b.rule.Unique = true
	return b
}

// Custom sets a custom validation function
func (b *FieldRuleBuilder) Custom(fn func(value string) error) *FieldRuleBuilder {
	b.rule.CustomFunc = fn
	return b
}

// Build returns the built field rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// FieldValidator validates rows according to rules, in rule order
type FieldValidator struct {
	rules       []FieldRule
	uniqueCheck map[string]map[string]int // column -> value -> first row number
	errors      *ErrorCollection
}

// NewFieldValidator creates a new field validator
func NewFieldValidator(rules []FieldRule, maxErrors int) *FieldValidator {
	return &FieldValidator{
		rules:       rules,
		uniqueCheck: make(map[string]map[string]int),
		errors:      NewErrorCollection(maxErrors),
	}
}

// ValidateRow validates all fields in a row and reports whether it passed
func (v *FieldValidator) ValidateRow(row *Row) bool {
	hasError := false

	for _, rule := range v.rules {
		value := row.Get(rule.Column)

		if rule.Required && value == "" {
			v.errors.AddRequiredError(row.LineNumber, rule.Column)
			hasError = true
			continue
		}

		// Skip further validation for empty optional fields
		if value == "" {
			continue
		}

		if rule.Type == TypeDecimal {
			d, err := decimal.NewFromString(value)
			if err != nil {
				v.errors.AddTypeError(row.LineNumber, rule.Column, string(rule.Type), value)
				hasError = true
				continue
			}
			if rule.MinValue != nil && d.LessThan(*rule.MinValue) {
				v.errors.AddRangeError(row.LineNumber, rule.Column,
					fmt.Sprintf("value must be at least %s", rule.MinValue.String()), value)
				hasError = true
			}
		}

		if rule.MaxLength > 0 && utf8.RuneCountInString(value) > rule.MaxLength {
			v.errors.AddLengthError(row.LineNumber, rule.Column, rule.MaxLength)
			hasError = true
		}

		if rule.Unique {
			if v.uniqueCheck[rule.Column] == nil {
				v.uniqueCheck[rule.Column] = make(map[string]int)
			}
			if firstRow, exists := v.uniqueCheck[rule.Column][value]; exists {
				v.errors.AddDuplicateError(row.LineNumber, rule.Column, value, firstRow)
				hasError = true
			} else {
				v.uniqueCheck[rule.Column][value] = row.LineNumber
			}
		}

		if rule.CustomFunc != nil {
			if err := rule.CustomFunc(value); err != nil {
				v.errors.Add(NewRowErrorWithValue(row.LineNumber, rule.Column, ErrCodeImportValidation, err.Error(), value))
				hasError = true
			}
		}
	}

	return !hasError
}

// Errors returns the error collection
func (v *FieldValidator) Errors() *ErrorCollection {
	return v.errors
}
