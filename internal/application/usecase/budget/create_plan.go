// Package budget contains the budget-plan reallocation engine use cases.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wedding-planner/backend/internal/application/adapter"
	"github.com/wedding-planner/backend/internal/domain/entity"
	domainerror "github.com/wedding-planner/backend/internal/domain/error"
)

// CreatePlanInput represents the input for budget plan creation.
type CreatePlanInput struct {
	ReferenceID  string
	TotalBudget  decimal.Decimal // non-positive values are treated as 0
	GuestCount   int
	Location     string
	WeddingDates string
	NoOfEvents   int
	NotifyEmail  string // optional; plan summary is mailed when set
}

// CreatePlanOutput represents the output of budget plan creation.
type CreatePlanOutput struct {
	Plan *entity.BudgetPlan
}

// PlanNotifier sends a summary notification for a freshly created plan.
type PlanNotifier interface {
	SendPlanSummary(ctx context.Context, to string, plan *entity.BudgetPlan) error
}

// CreatePlanUseCase handles initial budget allocation: the total budget is
// split over the policy's predefined categories, with any rounding remainder
// collected into a synthetic unallocated category.
type CreatePlanUseCase struct {
	planRepo adapter.BudgetPlanRepository
	policy   AllocationPolicy
	notifier PlanNotifier // optional
}

// NewCreatePlanUseCase creates a new CreatePlanUseCase instance.
func NewCreatePlanUseCase(planRepo adapter.BudgetPlanRepository, policy AllocationPolicy, notifier PlanNotifier) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		policy:   policy,
		notifier: notifier,
	}
}

// Execute performs the initial allocation and persists the new plan.
func (uc *CreatePlanUseCase) Execute(ctx context.Context, input CreatePlanInput) (*CreatePlanOutput, error) {
	if input.ReferenceID == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingPlanFields,
			"reference id is required",
			nil,
		)
	}

	// Null, zero and negative budgets all collapse to an empty plan.
	budget := input.TotalBudget.Round(2)
	if budget.IsNegative() {
		budget = decimal.Zero
	}

	plan := entity.NewBudgetPlan(
		input.ReferenceID,
		budget,
		input.GuestCount,
		input.Location,
		input.WeddingDates,
		input.NoOfEvents,
	)

	if budget.IsPositive() {
		plan.BudgetBreakdown = uc.allocate(budget)
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

	if uc.notifier != nil && input.NotifyEmail != "" {
		// Fire-and-forget: a failed summary email never fails plan creation.
		go func(to string, p entity.BudgetPlan) {
			sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := uc.notifier.SendPlanSummary(sendCtx, to, &p); err != nil {
				slog.Warn("Failed to send plan summary email",
					"reference_id", p.ReferenceID,
					"error", err,
				)
			}
		}(input.NotifyEmail, *plan)
	}

	return &CreatePlanOutput{Plan: plan}, nil
}

// allocate splits a positive budget over the policy categories and collects
// the remainder, if meaningful, into the unallocated category. Shares round
// down so the remainder is never negative and the estimates never exceed
// the budget.
func (uc *CreatePlanUseCase) allocate(budget decimal.Decimal) []entity.CategoryBreakdown {
	breakdown := make([]entity.CategoryBreakdown, 0, len(uc.policy.Shares)+1)
	allocated := decimal.Zero

	for _, share := range uc.policy.Shares {
		amount := budget.Mul(share.Share).RoundDown(2)
		allocated = allocated.Add(amount)
		breakdown = append(breakdown, entity.CategoryBreakdown{
			CategoryName:    share.Name,
			EstimatedAmount: amount,
			IsUserSet:       false,
		})
	}

	remainder := budget.Sub(allocated).Round(2)
	if remainder.GreaterThan(remainderFloor) {
		breakdown = append(breakdown, entity.CategoryBreakdown{
			CategoryName:    entity.UnallocatedCategoryName,
			EstimatedAmount: remainder,
			IsUserSet:       false,
		})
	}

	return breakdown
}
