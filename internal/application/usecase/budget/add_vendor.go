// Package budget contains the budget-plan reallocation engine use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wedding-planner/backend/internal/application/adapter"
	"github.com/wedding-planner/backend/internal/domain/entity"
	domainerror "github.com/wedding-planner/backend/internal/domain/error"
)

// AddVendorInput represents the input for attaching a vendor's cost to a
// budget category.
type AddVendorInput struct {
	ReferenceID   string
	CategoryName  string
	VendorName    string
	ActualCost    decimal.Decimal
	PaymentStatus string
}

// AddVendorOutput represents the output of a vendor-cost attachment.
type AddVendorOutput struct {
	Plan *entity.BudgetPlan
}

// AddVendorUseCase attaches a chosen vendor's actual cost to a category.
// The category's estimate and user-set flag are never touched. The vendor
// entry is keyed by a deterministic id derived from vendor and category
// name, so re-applying the same request is idempotent.
type AddVendorUseCase struct {
	planRepo adapter.BudgetPlanRepository
}

// NewAddVendorUseCase creates a new AddVendorUseCase instance.
func NewAddVendorUseCase(planRepo adapter.BudgetPlanRepository) *AddVendorUseCase {
	return &AddVendorUseCase{
		planRepo: planRepo,
	}
}

// Execute performs the vendor-cost attachment.
func (uc *AddVendorUseCase) Execute(ctx context.Context, input AddVendorInput) (*AddVendorOutput, error) {
	if strings.TrimSpace(input.VendorName) == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeEmptyVendorName,
			"vendor name must not be empty",
			domainerror.ErrEmptyVendorName,
		)
	}
	if input.ActualCost.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeNegativeActualCost,
			"actual cost must not be negative",
			domainerror.ErrNegativeActualCost,
		)
	}

	plan, err := uc.planRepo.FindByReferenceID(ctx, input.ReferenceID)
	if err != nil {
		if errors.Is(err, domainerror.ErrPlanNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodePlanNotFound,
				"budget plan not found",
				domainerror.ErrPlanNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load budget plan: %w", err)
	}

	cat := plan.FindCategory(input.CategoryName)
	if cat == nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeCategoryNotFound,
			"budget category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	cost := input.ActualCost.Round(2)
	cat.ActualCost = &cost
	if input.PaymentStatus != "" {
		status := input.PaymentStatus
		cat.PaymentStatus = &status
	}

	vendorID := entity.VendorID(input.VendorName, cat.CategoryName)
	vendor := entity.SelectedVendorInfo{
		ID:           vendorID,
		CategoryName: cat.CategoryName,
		Title:        strings.TrimSpace(input.VendorName),
	}

	replaced := false
	for i := range plan.SelectedVendors {
		if plan.SelectedVendors[i].ID == vendorID {
			// Keep city, rating and images already recorded for this vendor.
			vendor.City = plan.SelectedVendors[i].City
			vendor.Rating = plan.SelectedVendors[i].Rating
			vendor.ImageURLs = plan.SelectedVendors[i].ImageURLs
			plan.SelectedVendors[i] = vendor
			replaced = true
			break
		}
	}
	if !replaced {
		plan.SelectedVendors = append(plan.SelectedVendors, vendor)
	}

	plan.Recalculate()
	plan.Timestamp = time.Now().UTC()

	if err := uc.planRepo.Upsert(ctx, plan); err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodePlanPersistence,
			"failed to persist budget plan",
			fmt.Errorf("%w: %v", domainerror.ErrPlanPersistence, err),
		)
	}

	return &AddVendorOutput{Plan: plan}, nil
}
