package pricing

import (
	"strings"

	"github.com/erp/pos/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrTierNotFound is returned when a discount tier name is unknown
var ErrTierNotFound = shared.NewDomainError("TIER_NOT_FOUND", "Discount tier not found")

// DiscountTier is a named fractional rate applied to discountable cart lines.
// A rate of 0.2 means the customer pays 80% of a discountable line.
type DiscountTier struct {
	Name string
	Rate decimal.Decimal
}

// NewDiscountTier validates and creates a discount tier
func NewDiscountTier(name string, rate decimal.Decimal) (DiscountTier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DiscountTier{}, shared.NewDomainError("INVALID_TIER", "Discount tier name cannot be empty")
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return DiscountTier{}, shared.NewDomainError("INVALID_TIER",
			"Discount rate for tier '"+name+"' must be between 0 and 1, got "+rate.String())
	}
	return DiscountTier{Name: name, Rate: rate}, nil
}

// Factor returns the multiplier applied to a discountable subtotal (1 - rate)
func (t DiscountTier) Factor() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(t.Rate)
}

// IsNone returns true if the tier does not reduce anything
func (t DiscountTier) IsNone() bool {
	return t.Rate.IsZero()
}

// NoDiscount is the tier selected before the user picks one
func NoDiscount() DiscountTier {
	return DiscountTier{Name: "No discount", Rate: decimal.Zero}
}

// StandardTiers returns the till's built-in tiers: no discount, 10% to 90%
// off in steps of ten, and free.
func StandardTiers() *TierSet {
	tiers := []DiscountTier{NoDiscount()}
	for pct := int64(10); pct <= 90; pct += 10 {
		tiers = append(tiers, DiscountTier{
			Name: decimal.NewFromInt(pct).String() + "% off",
			Rate: decimal.New(pct, -2),
		})
	}
	tiers = append(tiers, DiscountTier{Name: "Free", Rate: decimal.NewFromInt(1)})

	set, err := NewTierSet(tiers)
	if err != nil {
		panic(err) // built-in table is static
	}
	return set
}

// TierSet is an ordered, name-unique list of discount tiers
type TierSet struct {
	tiers []DiscountTier
}

// NewTierSet creates a tier set; it must hold at least one tier and names must be unique
func NewTierSet(tiers []DiscountTier) (*TierSet, error) {
	if len(tiers) == 0 {
		return nil, shared.NewDomainError("INVALID_TIER", "At least one discount tier is required")
	}
	seen := make(map[string]struct{}, len(tiers))
	out := make([]DiscountTier, 0, len(tiers))
	for _, t := range tiers {
		validated, err := NewDiscountTier(t.Name, t.Rate)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[validated.Name]; dup {
			return nil, shared.NewDomainError("INVALID_TIER", "Duplicate discount tier: "+validated.Name)
		}
		seen[validated.Name] = struct{}{}
		out = append(out, validated)
	}
	return &TierSet{tiers: out}, nil
}

// Tiers returns a copy of the tiers in order
func (s *TierSet) Tiers() []DiscountTier {
	out := make([]DiscountTier, len(s.tiers))
	copy(out, s.tiers)
	return out
}

// Names returns the tier names in order
func (s *TierSet) Names() []string {
	names := make([]string, len(s.tiers))
	for i, t := range s.tiers {
		names[i] = t.Name
	}
	return names
}

// Default returns the first tier, which is what a fresh session starts with
func (s *TierSet) Default() DiscountTier {
	return s.tiers[0]
}

// Find looks a tier up by its exact name
func (s *TierSet) Find(name string) (DiscountTier, error) {
	for _, t := range s.tiers {
		if t.Name == name {
			return t, nil
		}
	}
	return DiscountTier{}, shared.NewDomainError(ErrTierNotFound.Code, "Discount tier not found: "+name)
}

// Index returns the position of the named tier, or -1
func (s *TierSet) Index(name string) int {
	for i, t := range s.tiers {
		if t.Name == name {
			return i
		}
	}
	return -1
}
