package budget

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainerror "github.com/wedding-planner/backend/internal/domain/error"
)

func TestAddVendor_AttachesCostWithoutTouchingEstimate(t *testing.T) {
	repo := newPlanRepoStub(testPlan("ref-1", 200, cat("Venue", 120, false), cat("Decor", 80, false)))
	uc := NewAddVendorUseCase(repo)

	out, err := uc.Execute(context.Background(), AddVendorInput{
		ReferenceID:   "ref-1",
		CategoryName:  "venue", // case-insensitive match
		VendorName:    "Royal Gardens",
		ActualCost:    decimal.NewFromInt(110),
		PaymentStatus: "booked",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	venue := findCat(t, out.Plan, "Venue")
	assertAmount(t, venue.EstimatedAmount, 120)
	if venue.IsUserSet {
		t.Error("vendor-cost attachment must not mark the category user-set")
	}
	if venue.ActualCost == nil || !venue.ActualCost.Equal(decimal.NewFromInt(110)) {
		t.Errorf("expected actual cost 110, got %v", venue.ActualCost)
	}
	if venue.PaymentStatus == nil || *venue.PaymentStatus != "booked" {
		t.Errorf("expected payment status booked, got %v", venue.PaymentStatus)
	}
	assertAmount(t, out.Plan.TotalSpent, 110)
	assertAmount(t, out.Plan.Balance, 90)

	if len(out.Plan.SelectedVendors) != 1 {
		t.Fatalf("expected 1 selected vendor, got %d", len(out.Plan.SelectedVendors))
	}
	if out.Plan.SelectedVendors[0].Title != "Royal Gardens" {
		t.Errorf("expected vendor title Royal Gardens, got %q", out.Plan.SelectedVendors[0].Title)
	}
}

func TestAddVendor_IsIdempotent(t *testing.T) {
	repo := newPlanRepoStub(testPlan("ref-1", 200, cat("Venue", 120, false)))
	uc := NewAddVendorUseCase(repo)

	input := AddVendorInput{
		ReferenceID:  "ref-1",
		CategoryName: "Venue",
		VendorName:   "Royal Gardens",
		ActualCost:   decimal.NewFromInt(110),
	}

	first, err := uc.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("first call: unexpected error: %v", err)
	}
	second, err := uc.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("second call: unexpected error: %v", err)
	}

	if len(second.Plan.SelectedVendors) != 1 {
		t.Fatalf("expected 1 vendor after repeated attach, got %d", len(second.Plan.SelectedVendors))
	}
	if first.Plan.SelectedVendors[0].ID != second.Plan.SelectedVendors[0].ID {
		t.Error("expected a stable vendor identity across repeated calls")
	}
	assertAmount(t, second.Plan.TotalSpent, 110)
}

func TestAddVendor_CategoryNotFound(t *testing.T) {
	uc := NewAddVendorUseCase(newPlanRepoStub(testPlan("ref-1", 200, cat("Venue", 200, false))))

	_, err := uc.Execute(context.Background(), AddVendorInput{
		ReferenceID:  "ref-1",
		CategoryName: "Fireworks",
		VendorName:   "Sky High",
		ActualCost:   decimal.NewFromInt(10),
	})

	var budgetErr *domainerror.BudgetError
	if !errors.As(err, &budgetErr) {
		t.Fatalf("expected BudgetError, got %v", err)
	}
	if budgetErr.Code != domainerror.ErrCodeCategoryNotFound {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeCategoryNotFound, budgetErr.Code)
	}
}

func TestAddVendor_Validation(t *testing.T) {
	tests := []struct {
		name     string
		input    AddVendorInput
		wantCode domainerror.BudgetErrorCode
	}{
		{
			name:     "empty vendor name",
			input:    AddVendorInput{ReferenceID: "ref-1", CategoryName: "Venue", VendorName: "  ", ActualCost: decimal.NewFromInt(10)},
			wantCode: domainerror.ErrCodeEmptyVendorName,
		},
		{
			name:     "negative actual cost",
			input:    AddVendorInput{ReferenceID: "ref-1", CategoryName: "Venue", VendorName: "Royal Gardens", ActualCost: decimal.NewFromInt(-10)},
			wantCode: domainerror.ErrCodeNegativeActualCost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newPlanRepoStub(testPlan("ref-1", 200, cat("Venue", 200, false)))
			uc := NewAddVendorUseCase(repo)

			_, err := uc.Execute(context.Background(), tt.input)

			var budgetErr *domainerror.BudgetError
			if !errors.As(err, &budgetErr) {
				t.Fatalf("expected BudgetError, got %v", err)
			}
			if budgetErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, budgetErr.Code)
			}
			if repo.upsertCalls != 0 {
				t.Error("rejected attachment must not write to the plan store")
			}
		})
	}
}

func TestAddVendor_PlanNotFound(t *testing.T) {
	uc := NewAddVendorUseCase(newPlanRepoStub())

	_, err := uc.Execute(context.Background(), AddVendorInput{
		ReferenceID:  "missing",
		CategoryName: "Venue",
		VendorName:   "Royal Gardens",
		ActualCost:   decimal.NewFromInt(10),
	})

	if !errors.Is(err, domainerror.ErrPlanNotFound) {
		t.Errorf("expected ErrPlanNotFound, got %v", err)
	}
}
