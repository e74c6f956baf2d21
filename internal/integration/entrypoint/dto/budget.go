// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/wedding-planner/backend/internal/domain/entity"
)

// CreateBudgetPlanRequest represents the request body for plan creation.
type CreateBudgetPlanRequest struct {
	ReferenceID  string  `json:"reference_id" binding:"required,max=64"`
	TotalBudget  float64 `json:"total_budget"`
	GuestCount   int     `json:"guest_count"`
	Location     string  `json:"location"`
	WeddingDates string  `json:"wedding_dates"`
	NoOfEvents   int     `json:"no_of_events"`
	NotifyEmail  string  `json:"notify_email" binding:"omitempty,email"`
}

// CategoryAdjustmentRequest represents one category change inside a batch.
type CategoryAdjustmentRequest struct {
	CategoryName  string   `json:"category_name" binding:"required"`
	NewEstimate   float64  `json:"new_estimate"`
	ActualCost    *float64 `json:"actual_cost,omitempty"`
	PaymentStatus *string  `json:"payment_status,omitempty"`
}

// AdjustBudgetPlanRequest represents the request body for a batch adjustment.
type AdjustBudgetPlanRequest struct {
	Deletions      []string                    `json:"deletions"`
	Adjustments    []CategoryAdjustmentRequest `json:"adjustments"`
	NewTotalBudget float64                     `json:"new_total_budget"`
}

// AddVendorRequest represents the request body for vendor-cost attachment.
type AddVendorRequest struct {
	CategoryName  string  `json:"category_name" binding:"required"`
	VendorName    string  `json:"vendor_name" binding:"required"`
	ActualCost    float64 `json:"actual_cost"`
	PaymentStatus string  `json:"payment_status"`
}

// CategoryBreakdownResponse represents one category in API responses.
type CategoryBreakdownResponse struct {
	CategoryName    string  `json:"category_name"`
	Percentage      string  `json:"percentage"`
	EstimatedAmount string  `json:"estimated_amount"`
	ActualCost      *string `json:"actual_cost,omitempty"`
	PaymentStatus   *string `json:"payment_status,omitempty"`
	IsUserSet       bool    `json:"is_user_set"`
}

// SelectedVendorResponse represents one selected vendor in API responses.
type SelectedVendorResponse struct {
	ID           string   `json:"id"`
	CategoryName string   `json:"category_name"`
	Title        string   `json:"title"`
	City         string   `json:"city,omitempty"`
	Rating       float64  `json:"rating,omitempty"`
	ImageURLs    []string `json:"image_urls,omitempty"`
}

// BudgetPlanResponse represents a budget plan in API responses.
type BudgetPlanResponse struct {
	ReferenceID        string                      `json:"reference_id"`
	TotalBudgetInput   string                      `json:"total_budget_input"`
	CurrentTotalBudget string                      `json:"current_total_budget"`
	GuestCount         int                         `json:"guest_count"`
	Location           string                      `json:"location"`
	WeddingDates       string                      `json:"wedding_dates"`
	NoOfEvents         int                         `json:"no_of_events"`
	BudgetBreakdown    []CategoryBreakdownResponse `json:"budget_breakdown"`
	TotalSpent         string                      `json:"total_spent"`
	Balance            string                      `json:"balance"`
	SelectedVendors    []SelectedVendorResponse    `json:"selected_vendors"`
	Timestamp          time.Time                   `json:"timestamp"`
}

// BudgetTipResponse represents one saving tip in API responses.
type BudgetTipResponse struct {
	CategoryName string `json:"category_name"`
	Tip          string `json:"tip"`
}

// BudgetTipsResponse represents the response for the tips endpoint.
type BudgetTipsResponse struct {
	ReferenceID string              `json:"reference_id"`
	Tips        []BudgetTipResponse `json:"tips"`
}

// ToBudgetPlanResponse converts a plan entity to a BudgetPlanResponse.
func ToBudgetPlanResponse(plan *entity.BudgetPlan) BudgetPlanResponse {
	response := BudgetPlanResponse{
		ReferenceID:        plan.ReferenceID,
		TotalBudgetInput:   plan.TotalBudgetInput.StringFixed(2),
		CurrentTotalBudget: plan.CurrentTotalBudget.StringFixed(2),
		GuestCount:         plan.GuestCount,
		Location:           plan.Location,
		WeddingDates:       plan.WeddingDates,
		NoOfEvents:         plan.NoOfEvents,
		BudgetBreakdown:    make([]CategoryBreakdownResponse, 0, len(plan.BudgetBreakdown)),
		TotalSpent:         plan.TotalSpent.StringFixed(2),
		Balance:            plan.Balance.StringFixed(2),
		SelectedVendors:    make([]SelectedVendorResponse, 0, len(plan.SelectedVendors)),
		Timestamp:          plan.Timestamp,
	}

	for _, cat := range plan.BudgetBreakdown {
		item := CategoryBreakdownResponse{
			CategoryName:    cat.CategoryName,
			Percentage:      cat.Percentage.StringFixed(2),
			EstimatedAmount: cat.EstimatedAmount.StringFixed(2),
			PaymentStatus:   cat.PaymentStatus,
			IsUserSet:       cat.IsUserSet,
		}
		if cat.ActualCost != nil {
			cost := cat.ActualCost.StringFixed(2)
			item.ActualCost = &cost
		}
		response.BudgetBreakdown = append(response.BudgetBreakdown, item)
	}

	for _, vendor := range plan.SelectedVendors {
		response.SelectedVendors = append(response.SelectedVendors, SelectedVendorResponse{
			ID:           vendor.ID.String(),
			CategoryName: vendor.CategoryName,
			Title:        vendor.Title,
			City:         vendor.City,
			Rating:       vendor.Rating,
			ImageURLs:    vendor.ImageURLs,
		})
	}

	return response
}
