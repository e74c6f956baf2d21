// Package budget contains the budget-plan reallocation engine use cases.
package budget

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryShare assigns a fractional share of the total budget to a
// predefined category name.
type CategoryShare struct {
	Name  string
	Share decimal.Decimal
}

// AllocationPolicy maps predefined category names to fractional shares of
// the total budget. Shares should sum to at most 1; any positive remainder
// is allocated to a synthetic unallocated category.
type AllocationPolicy struct {
	Shares []CategoryShare
}

// DefaultAllocationPolicy returns the standard four-way split used when a
// plan is created without an explicit policy.
func DefaultAllocationPolicy() AllocationPolicy {
	quarter := decimal.NewFromFloat(0.25)
	return AllocationPolicy{
		Shares: []CategoryShare{
			{Name: "Venue", Share: quarter},
			{Name: "Caterer", Share: quarter},
			{Name: "Photographer", Share: quarter},
			{Name: "Decor", Share: quarter},
		},
	}
}

// placeholderNames are reserved strings that API clients and documentation
// tools tend to submit verbatim; they are never treated as real categories.
var placeholderNames = map[string]struct{}{
	"string":      {},
	"example":     {},
	"placeholder": {},
	"test":        {},
}

// isPlaceholderName reports whether a category name is a reserved
// placeholder string (case-insensitive).
func isPlaceholderName(name string) bool {
	_, ok := placeholderNames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// remainderFloor is the threshold below which an allocation remainder is
// dropped instead of becoming the unallocated category.
var remainderFloor = decimal.NewFromFloat(0.001)

// sumTolerance is the accepted difference between the sum of estimates and
// the total budget.
var sumTolerance = decimal.NewFromFloat(0.01)
