// Package budget contains the budget-plan reallocation engine use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wedding-planner/backend/internal/application/adapter"
	"github.com/wedding-planner/backend/internal/domain/entity"
	domainerror "github.com/wedding-planner/backend/internal/domain/error"
)

// CategoryAdjustment requests a change to a single category. A zero
// NewEstimate combined with a non-nil ActualCost or PaymentStatus is a
// cost-only update: it never alters the estimate and never marks the
// category as user-set. A zero NewEstimate with both optional fields nil is
// a no-op and is skipped.
type CategoryAdjustment struct {
	CategoryName  string
	NewEstimate   decimal.Decimal
	ActualCost    *decimal.Decimal
	PaymentStatus *string
}

// AdjustPlanInput represents one batch of requested changes: deletions,
// adjustments and an optional total-budget change, processed together.
type AdjustPlanInput struct {
	ReferenceID    string
	Deletions      []string
	Adjustments    []CategoryAdjustment
	NewTotalBudget decimal.Decimal // > 0 replaces the current total, otherwise kept
}

// AdjustPlanOutput represents the output of a batch adjustment.
type AdjustPlanOutput struct {
	Plan *entity.BudgetPlan
}

// AdjustPlanUseCase is the batch adjustment engine. It processes deletions,
// adjustments and total-budget changes in one transaction against the stored
// plan, redistributing budget over non-protected categories while user-set
// estimates stay untouched.
type AdjustPlanUseCase struct {
	planRepo          adapter.BudgetPlanRepository
	vendorCollections VendorCollectionMap
	autoAdjust        bool
}

// NewAdjustPlanUseCase creates a new AdjustPlanUseCase instance. When
// autoAdjust is enabled, fully protected breakdowns that no longer sum to
// the total budget are scaled to force exact equality; otherwise the
// mismatch is retained.
func NewAdjustPlanUseCase(planRepo adapter.BudgetPlanRepository, vendorCollections VendorCollectionMap, autoAdjust bool) *AdjustPlanUseCase {
	return &AdjustPlanUseCase{
		planRepo:          planRepo,
		vendorCollections: vendorCollections,
		autoAdjust:        autoAdjust,
	}
}

// Execute runs the batch adjustment and persists the resulting plan.
func (uc *AdjustPlanUseCase) Execute(ctx context.Context, input AdjustPlanInput) (*AdjustPlanOutput, error) {
	// Reject negative amounts up front so the batch is all-or-nothing.
	if err := validateAdjustments(input.Adjustments); err != nil {
		return nil, err
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

	// Step 1: effective total budget.
	effectiveTotal := plan.CurrentTotalBudget
	if input.NewTotalBudget.IsPositive() {
		effectiveTotal = input.NewTotalBudget.Round(2)
	}

	// Step 2: working map keyed by normalized category name, preserving the
	// original breakdown order separately.
	working := make(map[string]*entity.CategoryBreakdown, len(plan.BudgetBreakdown))
	originalOrder := make([]string, 0, len(plan.BudgetBreakdown))
	for i := range plan.BudgetBreakdown {
		cat := plan.BudgetBreakdown[i]
		key := categoryKey(cat.CategoryName)
		working[key] = &cat
		originalOrder = append(originalOrder, key)
	}

	// Step 3: deletion pass.
	deletedEstimated := decimal.Zero
	deletedActual := decimal.Zero
	deletionSet := make(map[string]struct{})
	for _, name := range input.Deletions {
		if isPlaceholderName(name) {
			continue
		}
		key := categoryKey(name)
		deletionSet[key] = struct{}{}

		cat, ok := working[key]
		if !ok {
			slog.Warn("Ignoring deletion of unknown category",
				"reference_id", input.ReferenceID,
				"category", name,
			)
			continue
		}

		deletedEstimated = deletedEstimated.Add(cat.EstimatedAmount)
		if cat.ActualCost != nil {
			deletedActual = deletedActual.Add(*cat.ActualCost)
		}
		delete(working, key)

		if collection, mapped := uc.vendorCollections.CollectionFor(cat.CategoryName); mapped {
			plan.SelectedVendors = purgeVendors(plan.SelectedVendors, collection)
		}
	}

	// Step 4: adjustment pass. Deletion wins over adjustment within a batch.
	newOrder := make([]string, 0)
	for _, adj := range input.Adjustments {
		if isPlaceholderName(adj.CategoryName) {
			continue
		}
		costOnly := adj.NewEstimate.IsZero() && (adj.ActualCost != nil || adj.PaymentStatus != nil)
		if adj.NewEstimate.IsZero() && adj.ActualCost == nil && adj.PaymentStatus == nil {
			continue
		}
		key := categoryKey(adj.CategoryName)
		if _, deleted := deletionSet[key]; deleted {
			continue
		}

		if cat, ok := working[key]; ok {
			if !costOnly {
				cat.EstimatedAmount = adj.NewEstimate.Round(2)
				cat.IsUserSet = true
			}
			applyCostFields(cat, adj)
			continue
		}

		cat := &entity.CategoryBreakdown{
			CategoryName: strings.TrimSpace(adj.CategoryName),
		}
		if costOnly {
			cat.EstimatedAmount = decimal.Zero
			cat.IsUserSet = false
		} else {
			cat.EstimatedAmount = adj.NewEstimate.Round(2)
			cat.IsUserSet = true
		}
		applyCostFields(cat, adj)
		working[key] = cat
		newOrder = append(newOrder, key)
	}

	// Step 5: redistribution.
	plan.CurrentTotalBudget = effectiveTotal
	if len(working) == 0 {
		// Every category deleted and none re-added: deleted actual costs are
		// forgiven, the balance resets to the full budget.
		plan.BudgetBreakdown = []entity.CategoryBreakdown{}
		if deletedActual.IsPositive() {
			slog.Info("All categories deleted, recorded costs forgiven",
				"reference_id", input.ReferenceID,
				"forgiven_actual_cost", deletedActual,
			)
		}
	} else {
		breakdown := make([]entity.CategoryBreakdown, 0, len(working))
		for _, key := range originalOrder {
			if cat, ok := working[key]; ok {
				breakdown = append(breakdown, *cat)
			}
		}
		for _, key := range newOrder {
			breakdown = append(breakdown, *working[key])
		}

		uc.redistribute(input.ReferenceID, breakdown, effectiveTotal, deletedEstimated)
		plan.BudgetBreakdown = breakdown
	}

	// Step 6: recalculation of derived fields.
	plan.Recalculate()
	plan.Timestamp = time.Now().UTC()

	// Step 7: persist the full plan and return it.
	if err := uc.planRepo.Upsert(ctx, plan); err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodePlanPersistence,
			"failed to persist budget plan",
			fmt.Errorf("%w: %v", domainerror.ErrPlanPersistence, err),
		)
	}

	return &AdjustPlanOutput{Plan: plan}, nil
}

// redistribute rebalances non-protected categories so the breakdown absorbs
// budget freed by deletions and total-budget changes. Protected categories
// (user-set now or in any earlier request) keep their exact estimates.
func (uc *AdjustPlanUseCase) redistribute(referenceID string, breakdown []entity.CategoryBreakdown, effectiveTotal, deletedEstimated decimal.Decimal) {
	sumProtected := decimal.Zero
	redistributable := make([]*entity.CategoryBreakdown, 0, len(breakdown))
	for i := range breakdown {
		if breakdown[i].IsUserSet {
			sumProtected = sumProtected.Add(breakdown[i].EstimatedAmount)
		} else {
			redistributable = append(redistributable, &breakdown[i])
		}
	}

	if len(redistributable) == 0 {
		diff := effectiveTotal.Sub(sumProtected)
		if diff.Abs().LessThanOrEqual(sumTolerance) {
			return
		}
		if uc.autoAdjust && sumProtected.IsPositive() {
			factor := effectiveTotal.Div(sumProtected)
			for i := range breakdown {
				breakdown[i].EstimatedAmount = breakdown[i].EstimatedAmount.Mul(factor).Round(2)
			}
			return
		}
		// Accepted, bounded inconsistency: user-set values win over the total.
		slog.Warn("Budget mismatch retained: all categories are user-set",
			"reference_id", referenceID,
			"sum_of_estimates", sumProtected,
			"total_budget", effectiveTotal,
		)
		return
	}

	budgetForRedistributable := effectiveTotal.Sub(sumProtected)
	pool := budgetForRedistributable.Add(deletedEstimated)

	if !pool.IsPositive() {
		for _, cat := range redistributable {
			cat.EstimatedAmount = decimal.Zero
		}
		return
	}

	oldSum := decimal.Zero
	for _, cat := range redistributable {
		oldSum = oldSum.Add(cat.EstimatedAmount)
	}

	if oldSum.IsPositive() {
		for _, cat := range redistributable {
			cat.EstimatedAmount = pool.Mul(cat.EstimatedAmount).Div(oldSum).Round(2)
		}
		return
	}

	equalShare := pool.Div(decimal.NewFromInt(int64(len(redistributable)))).Round(2)
	for _, cat := range redistributable {
		cat.EstimatedAmount = equalShare
	}
}

// validateAdjustments rejects the whole batch when any adjustment carries a
// negative estimate or actual cost. Placeholder names are exempt since the
// adjustment pass skips them entirely.
func validateAdjustments(adjustments []CategoryAdjustment) error {
	for _, adj := range adjustments {
		if isPlaceholderName(adj.CategoryName) {
			continue
		}
		if adj.NewEstimate.IsNegative() {
			return domainerror.NewBudgetError(
				domainerror.ErrCodeNegativeEstimate,
				"estimated amount must not be negative",
				domainerror.ErrNegativeEstimate,
			)
		}
		if adj.ActualCost != nil && adj.ActualCost.IsNegative() {
			return domainerror.NewBudgetError(
				domainerror.ErrCodeNegativeActualCost,
				"actual cost must not be negative",
				domainerror.ErrNegativeActualCost,
			)
		}
	}
	return nil
}

// applyCostFields copies the optional cost fields of an adjustment onto a
// category.
func applyCostFields(cat *entity.CategoryBreakdown, adj CategoryAdjustment) {
	if adj.ActualCost != nil {
		cost := adj.ActualCost.Round(2)
		cat.ActualCost = &cost
	}
	if adj.PaymentStatus != nil {
		status := *adj.PaymentStatus
		cat.PaymentStatus = &status
	}
}

// purgeVendors removes selected vendors belonging to a vendor collection.
func purgeVendors(vendors []entity.SelectedVendorInfo, collection string) []entity.SelectedVendorInfo {
	kept := vendors[:0]
	for _, v := range vendors {
		if !strings.EqualFold(v.CategoryName, collection) {
			kept = append(kept, v)
		}
	}
	return kept
}

// categoryKey normalizes a category name for working-map lookups.
func categoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
