package budget

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wedding-planner/backend/internal/domain/entity"
	domainerror "github.com/wedding-planner/backend/internal/domain/error"
)

func newEngine(repo *planRepoStub) *AdjustPlanUseCase {
	return NewAdjustPlanUseCase(repo, DefaultVendorCollections(), false)
}

func findCat(t *testing.T, plan *entity.BudgetPlan, name string) *entity.CategoryBreakdown {
	t.Helper()
	c := plan.FindCategory(name)
	if c == nil {
		t.Fatalf("expected category %q in breakdown", name)
	}
	return c
}

func assertAmount(t *testing.T, got decimal.Decimal, want float64) {
	t.Helper()
	if !got.Equal(decimal.NewFromFloat(want)) {
		t.Errorf("expected amount %v, got %s", want, got)
	}
}

func TestAdjustPlan_StickyProtection(t *testing.T) {
	repo := newPlanRepoStub(testPlan("ref-1", 200, cat("Venue", 100, false), cat("Caterer", 100, false)))
	engine := newEngine(repo)

	// First request: set Venue to 150, keep the total.
	out, err := engine.Execute(context.Background(), AdjustPlanInput{
		ReferenceID: "ref-1",
		Adjustments: []CategoryAdjustment{
			{CategoryName: "Venue", NewEstimate: decimal.NewFromInt(150)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	venue := findCat(t, out.Plan, "Venue")
	assertAmount(t, venue.EstimatedAmount, 150)
	if !venue.IsUserSet {
		t.Error("expected Venue to be marked user-set")
	}
	assertAmount(t, findCat(t, out.Plan, "Caterer").EstimatedAmount, 50)

	// Second request: delete a category that does not exist. Venue's
	// user-set protection must survive across requests.
	out, err = engine.Execute(context.Background(), AdjustPlanInput{
		ReferenceID: "ref-1",
		Deletions:   []string{"Fireworks"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, findCat(t, out.Plan, "Venue").EstimatedAmount, 150)
	assertAmount(t, findCat(t, out.Plan, "Caterer").EstimatedAmount, 50)
}

func TestAdjustPlan_ProportionalRedistributionOnTotalChange(t *testing.T) {
	repo := newPlanRepoStub(testPlan("ref-1", 100, cat("Venue", 60, false), cat("Decor", 40, false)))
	engine := newEngine(repo)

	out, err := engine.Execute(context.Background(), AdjustPlanInput{
		ReferenceID:    "ref-1",
		NewTotalBudget: decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertAmount(t, out.Plan.CurrentTotalBudget, 50)
	assertAmount(t, findCat(t, out.Plan, "Venue").EstimatedAmount, 30)
	assertAmount(t, findCat(t, out.Plan, "Decor").EstimatedAmount, 20)
}

func TestAdjustPlan_FullDeletionResetsSpend(t *testing.T) {
	repo := newPlanRepoStub(testPlan("ref-1", 500,
		catWithCost("Venue", 300, 280, false),
		catWithCost("Caterer", 200, 150, false),
	))
	engine := newEngine(repo)

	out, err := engine.Execute(context.Background(), AdjustPlanInput{
		ReferenceID: "ref-1",
		Deletions:   []string{"Venue", "Caterer"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Plan.BudgetBreakdown) != 0 {
		t.Errorf("expected empty breakdown, got %d categories", len(out.Plan.BudgetBreakdown))
	}
	if !out.Plan.TotalSpent.IsZero() {
		t.Errorf("expected total spent 0, got %s", out.Plan.TotalSpent)
	}
	assertAmount(t, out.Plan.Balance, 500)
}

func TestAdjustPlan_CostOnlyUpdateIsIdempotent(t *testing.T) {
	repo := newPlanRepoStub(testPlan("ref-1", 100, cat("Venue", 60, false), cat("Decor", 40, false)))
	engine := newEngine(repo)

	input := AdjustPlanInput{
		ReferenceID: "ref-1",
		Adjustments: []CategoryAdjustment{
			{CategoryName: "Venue", ActualCost: decPtr(55), PaymentStatus: strPtr("advance paid")},
		},
	}

	for i := 0; i < 2; i++ {
		if _, err := engine.Execute(context.Background(), input); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i+1, err)
		}
	}

	venue := findCat(t, repo.stored("ref-1"), "Venue")
	assertAmount(t, venue.EstimatedAmount, 60)
	if venue.IsUserSet {
		t.Error("cost-only update must not mark the category user-set")
	}
	if venue.ActualCost == nil || !venue.ActualCost.Equal(decimal.NewFromInt(55)) {
		t.Errorf("expected actual cost 55, got %v", venue.ActualCost)
	}
	if venue.PaymentStatus == nil || *venue.PaymentStatus != "advance paid" {
		t.Errorf("expected payment status preserved, got %v", venue.PaymentStatus)
	}
	assertAmount(t, repo.stored("ref-1").TotalSpent, 55)
	assertAmount(t, repo.stored("ref-1").Balance, 45)
}

func TestAdjustPlan_NoOpAdjustmentSkipped(t *testing.T) {
	repo := newPlanRepoStub(testPlan("ref-1", 100, cat("Venue", 100, false)))
	engine := newEngine(repo)

	out, err := engine.Execute(context.Background(), AdjustPlanInput{
		ReferenceID: "ref-1",
		Adjustments: []CategoryAdjustment{
			{CategoryName: "Fireworks"}, // zero estimate, no cost fields
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Plan.FindCategory("Fireworks") != nil {
		t.Error("no-op adjustment must not create a category")
	}
}

func TestAdjustPlan_PlaceholderNamesIgnored(t *testing.T) {
	repo := newPlanRepoStub(testPlan("ref-1", 100, cat("Venue", 100, false)))
	engine := newEngine(repo)

	out, err := engine.Execute(context.Background(), AdjustPlanInput{
		ReferenceID: "ref-1",
		Deletions:   []string{"STRING", "placeholder"},
		Adjustments: []CategoryAdjustment{
			{CategoryName: "Test", NewEstimate: decimal.NewFromInt(40)},
			{CategoryName: "example", NewEstimate: decimal.NewFromInt(-5)}, // exempt from validation too
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Plan.BudgetBreakdown) != 1 {
		t.Fatalf("expected 1 category, got %d", len(out.Plan.BudgetBreakdown))
	}
	assertAmount(t, findCat(t, out.Plan, "Venue").EstimatedAmount, 100)
}

func TestAdjustPlan_NegativeValuesRejectWholeBatch(t *testing.T) {
	tests := []struct {
		name       string
		adjustment CategoryAdjustment
		wantCode   domainerror.BudgetErrorCode
	}{
		{
			name:       "negative estimate",
			adjustment: CategoryAdjustment{CategoryName: "Venue", NewEstimate: decimal.NewFromInt(-10)},
			wantCode:   domainerror.ErrCodeNegativeEstimate,
		},
		{
			name:       "negative actual cost",
			adjustment: CategoryAdjustment{CategoryName: "Venue", ActualCost: decPtr(-1)},
			wantCode:   domainerror.ErrCodeNegativeActualCost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newPlanRepoStub(testPlan("ref-1", 100, cat("Venue", 60, false), cat("Decor", 40, false)))
			engine := newEngine(repo)

			_, err := engine.Execute(context.Background(), AdjustPlanInput{
				ReferenceID: "ref-1",
				Adjustments: []CategoryAdjustment{
					{CategoryName: "Decor", NewEstimate: decimal.NewFromInt(10)},
					tt.adjustment,
				},
			})

			var budgetErr *domainerror.BudgetError
			if !errors.As(err, &budgetErr) {
				t.Fatalf("expected BudgetError, got %v", err)
			}
			if budgetErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, budgetErr.Code)
			}
			if repo.upsertCalls != 0 {
				t.Error("rejected batch must not write to the plan store")
			}
			assertAmount(t, findCat(t, repo.stored("ref-1"), "Decor").EstimatedAmount, 40)
		})
	}
}

func TestAdjustPlan_DeletionPurgesMappedVendors(t *testing.T) {
	plan := testPlan("ref-1", 300, cat("Venue", 100, false), cat("Caterer", 100, false), cat("Decor", 100, false))
	plan.SelectedVendors = []entity.SelectedVendorInfo{
		{ID: entity.VendorID("Royal Gardens", "Venue"), CategoryName: "venues", Title: "Royal Gardens"},
		{ID: entity.VendorID("Spice Route", "Caterer"), CategoryName: "caterers", Title: "Spice Route"},
	}
	repo := newPlanRepoStub(plan)
	engine := newEngine(repo)

	out, err := engine.Execute(context.Background(), AdjustPlanInput{
		ReferenceID: "ref-1",
		Deletions:   []string{"Venue"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Plan.SelectedVendors) != 1 {
		t.Fatalf("expected 1 vendor after purge, got %d", len(out.Plan.SelectedVendors))
	}
	if out.Plan.SelectedVendors[0].Title != "Spice Route" {
		t.Errorf("expected unrelated vendor kept, got %q", out.Plan.SelectedVendors[0].Title)
	}
}

func TestAdjustPlan_DeletionWinsOverAdjustment(t *testing.T) {
	repo := newPlanRepoStub(testPlan("ref-1", 200, cat("Venue", 100, false), cat("Caterer", 100, false)))
	engine := newEngine(repo)

	out, err := engine.Execute(context.Background(), AdjustPlanInput{
		ReferenceID: "ref-1",
		Deletions:   []string{"Venue"},
		Adjustments: []CategoryAdjustment{
			{CategoryName: "Venue", NewEstimate: decimal.NewFromInt(175)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Plan.FindCategory("Venue") != nil {
		t.Error("deleted category must not be re-created by an adjustment in the same batch")
	}
}

func TestAdjustPlan_DeletedEstimateFlowsIntoPool(t *testing.T) {
	// Deleting Decor (30) frees its estimate into the redistribution pool on
	// top of the budget not claimed by the protected Venue.
	repo := newPlanRepoStub(testPlan("ref-1", 100,
		cat("Venue", 50, true),
		cat("Decor", 30, false),
		cat("Music", 20, false),
	))
	engine := newEngine(repo)

	out, err := engine.Execute(context.Background(), AdjustPlanInput{
		ReferenceID: "ref-1",
		Deletions:   []string{"Decor"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Pool = (100 - 50) + 30 = 80, Music is the only redistributable category.
	assertAmount(t, findCat(t, out.Plan, "Venue").EstimatedAmount, 50)
	assertAmount(t, findCat(t, out.Plan, "Music").EstimatedAmount, 80)
}

func TestAdjustPlan_ZeroEstimatesSplitPoolEqually(t *testing.T) {
	repo := newPlanRepoStub(testPlan("ref-1", 90,
		cat("Venue", 90, true),
		cat("Favors", 0, false),
		cat("Invites", 0, false),
	))
	engine := newEngine(repo)

	out, err := engine.Execute(context.Background(), AdjustPlanInput{
		ReferenceID:    "ref-1",
		NewTotalBudget: decimal.NewFromInt(150),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Pool = 150 - 90 = 60 split equally over the two zero-estimate categories.
	assertAmount(t, findCat(t, out.Plan, "Favors").EstimatedAmount, 30)
	assertAmount(t, findCat(t, out.Plan, "Invites").EstimatedAmount, 30)
}

func TestAdjustPlan_NonPositivePoolForcesZero(t *testing.T) {
	repo := newPlanRepoStub(testPlan("ref-1", 200,
		cat("Venue", 250, true),
		cat("Decor", 50, false),
	))
	engine := newEngine(repo)

	out, err := engine.Execute(context.Background(), AdjustPlanInput{ReferenceID: "ref-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, findCat(t, out.Plan, "Decor").EstimatedAmount, 0)
	assertAmount(t, findCat(t, out.Plan, "Venue").EstimatedAmount, 250)
}

func TestAdjustPlan_AllProtectedMismatch(t *testing.T) {
	t.Run("retained when auto-adjust is disabled", func(t *testing.T) {
		repo := newPlanRepoStub(testPlan("ref-1", 200, cat("Venue", 150, true), cat("Caterer", 100, true)))
		engine := NewAdjustPlanUseCase(repo, DefaultVendorCollections(), false)

		out, err := engine.Execute(context.Background(), AdjustPlanInput{ReferenceID: "ref-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertAmount(t, findCat(t, out.Plan, "Venue").EstimatedAmount, 150)
		assertAmount(t, findCat(t, out.Plan, "Caterer").EstimatedAmount, 100)
	})

	t.Run("scaled when auto-adjust is enabled", func(t *testing.T) {
		repo := newPlanRepoStub(testPlan("ref-1", 200, cat("Venue", 150, true), cat("Caterer", 100, true)))
		engine := NewAdjustPlanUseCase(repo, DefaultVendorCollections(), true)

		out, err := engine.Execute(context.Background(), AdjustPlanInput{ReferenceID: "ref-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Scaled by 200/250.
		assertAmount(t, findCat(t, out.Plan, "Venue").EstimatedAmount, 120)
		assertAmount(t, findCat(t, out.Plan, "Caterer").EstimatedAmount, 80)
	})
}

func TestAdjustPlan_NewCategoriesAppendInRequestOrder(t *testing.T) {
	repo := newPlanRepoStub(testPlan("ref-1", 300, cat("Venue", 200, false), cat("Caterer", 100, false)))
	engine := newEngine(repo)

	out, err := engine.Execute(context.Background(), AdjustPlanInput{
		ReferenceID: "ref-1",
		Adjustments: []CategoryAdjustment{
			{CategoryName: "Mehendi", NewEstimate: decimal.NewFromInt(40)},
			{CategoryName: "Music", NewEstimate: decimal.NewFromInt(60)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{"Venue", "Caterer", "Mehendi", "Music"}
	if len(out.Plan.BudgetBreakdown) != len(wantOrder) {
		t.Fatalf("expected %d categories, got %d", len(wantOrder), len(out.Plan.BudgetBreakdown))
	}
	for i, name := range wantOrder {
		if out.Plan.BudgetBreakdown[i].CategoryName != name {
			t.Errorf("position %d: expected %q, got %q", i, name, out.Plan.BudgetBreakdown[i].CategoryName)
		}
	}
	for _, name := range []string{"Mehendi", "Music"} {
		if !findCat(t, out.Plan, name).IsUserSet {
			t.Errorf("expected new category %q to be user-set", name)
		}
	}
}

func TestAdjustPlan_PercentagesRecalculated(t *testing.T) {
	repo := newPlanRepoStub(testPlan("ref-1", 100, cat("Venue", 60, false), cat("Decor", 40, false)))
	engine := newEngine(repo)

	out, err := engine.Execute(context.Background(), AdjustPlanInput{
		ReferenceID:    "ref-1",
		NewTotalBudget: decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Ratios preserved against the new total, so percentages stay 60/40.
	assertAmount(t, findCat(t, out.Plan, "Venue").Percentage, 60)
	assertAmount(t, findCat(t, out.Plan, "Decor").Percentage, 40)
	assertAmount(t, out.Plan.EstimatedTotal(), 200)
}

func TestAdjustPlan_PlanNotFound(t *testing.T) {
	engine := newEngine(newPlanRepoStub())

	_, err := engine.Execute(context.Background(), AdjustPlanInput{ReferenceID: "missing"})

	var budgetErr *domainerror.BudgetError
	if !errors.As(err, &budgetErr) {
		t.Fatalf("expected BudgetError, got %v", err)
	}
	if budgetErr.Code != domainerror.ErrCodePlanNotFound {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodePlanNotFound, budgetErr.Code)
	}
	if !errors.Is(err, domainerror.ErrPlanNotFound) {
		t.Error("expected error to wrap ErrPlanNotFound")
	}
}
