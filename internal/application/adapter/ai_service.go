// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// AdviceCategory describes one budget category handed to the advisor.
type AdviceCategory struct {
	Name            string
	EstimatedAmount decimal.Decimal
	ActualCost      *decimal.Decimal
}

// BudgetAdviceRequest carries the plan context for generating saving tips.
type BudgetAdviceRequest struct {
	Location    string
	GuestCount  int
	TotalBudget decimal.Decimal
	Categories  []AdviceCategory
}

// BudgetTip is one AI-generated saving suggestion for a category.
type BudgetTip struct {
	CategoryName string
	Tip          string
}

// BudgetAdvisor defines the interface for AI-powered budget advice.
type BudgetAdvisor interface {
	// IsAvailable checks if the advisor is configured and ready to use.
	IsAvailable() bool

	// SuggestSavings analyzes a plan breakdown and returns saving tips.
	SuggestSavings(ctx context.Context, request *BudgetAdviceRequest) ([]*BudgetTip, error)
}
