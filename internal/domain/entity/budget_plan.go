// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnallocatedCategoryName is the synthetic category that holds any budget
// remainder left over by the initial allocation policy.
const UnallocatedCategoryName = "Other Expenses / Unallocated"

// CategoryBreakdown represents a single named spending category within a
// budget plan. EstimatedAmount is the planned spend, ActualCost the recorded
// real spend once a vendor is booked. IsUserSet marks categories whose
// estimate was explicitly provided by the caller; those are protected from
// proportional redistribution until changed again.
type CategoryBreakdown struct {
	CategoryName    string
	Percentage      decimal.Decimal
	EstimatedAmount decimal.Decimal
	ActualCost      *decimal.Decimal
	PaymentStatus   *string
	IsUserSet       bool
}

// SelectedVendorInfo represents a vendor the couple has chosen for one of
// the budget categories.
type SelectedVendorInfo struct {
	ID           uuid.UUID
	CategoryName string
	Title        string
	City         string
	Rating       float64
	ImageURLs    []string
}

// BudgetPlan represents one wedding budget plan, keyed by reference id
// (the wedding identifier). TotalSpent and Balance are derived values and
// must be recomputed after every mutation via Recalculate.
type BudgetPlan struct {
	ReferenceID        string
	TotalBudgetInput   decimal.Decimal
	CurrentTotalBudget decimal.Decimal
	GuestCount         int
	Location           string
	WeddingDates       string
	NoOfEvents         int
	BudgetBreakdown    []CategoryBreakdown
	TotalSpent         decimal.Decimal
	Balance            decimal.Decimal
	SelectedVendors    []SelectedVendorInfo
	Timestamp          time.Time
}

// NewBudgetPlan creates a new BudgetPlan with an empty breakdown.
func NewBudgetPlan(referenceID string, totalBudget decimal.Decimal, guestCount int, location, weddingDates string, noOfEvents int) *BudgetPlan {
	return &BudgetPlan{
		ReferenceID:        referenceID,
		TotalBudgetInput:   totalBudget,
		CurrentTotalBudget: totalBudget,
		GuestCount:         guestCount,
		Location:           location,
		WeddingDates:       weddingDates,
		NoOfEvents:         noOfEvents,
		BudgetBreakdown:    []CategoryBreakdown{},
		TotalSpent:         decimal.Zero,
		Balance:            totalBudget,
		SelectedVendors:    []SelectedVendorInfo{},
		Timestamp:          time.Now().UTC(),
	}
}

// FindCategory locates a category by case-insensitive name match and returns
// a pointer into the breakdown slice, or nil when no category matches.
func (p *BudgetPlan) FindCategory(name string) *CategoryBreakdown {
	for i := range p.BudgetBreakdown {
		if strings.EqualFold(p.BudgetBreakdown[i].CategoryName, name) {
			return &p.BudgetBreakdown[i]
		}
	}
	return nil
}

// Recalculate recomputes all derived fields: each category's percentage of
// the current total budget, the total actual spend, and the remaining
// balance. Percentages are 0 when the total budget is 0.
func (p *BudgetPlan) Recalculate() {
	hundred := decimal.NewFromInt(100)
	spent := decimal.Zero

	for i := range p.BudgetBreakdown {
		c := &p.BudgetBreakdown[i]
		if p.CurrentTotalBudget.IsPositive() {
			c.Percentage = c.EstimatedAmount.Div(p.CurrentTotalBudget).Mul(hundred).Round(2)
		} else {
			c.Percentage = decimal.Zero
		}
		if c.ActualCost != nil {
			spent = spent.Add(*c.ActualCost)
		}
	}

	p.TotalSpent = spent.Round(2)
	p.Balance = p.CurrentTotalBudget.Sub(p.TotalSpent).Round(2)
}

// EstimatedTotal returns the sum of all categories' estimated amounts.
func (p *BudgetPlan) EstimatedTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range p.BudgetBreakdown {
		total = total.Add(p.BudgetBreakdown[i].EstimatedAmount)
	}
	return total
}
