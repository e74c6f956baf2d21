// Package suggestion contains the AI-powered budget advice use case.
package suggestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/wedding-planner/backend/internal/application/adapter"
	domainerror "github.com/wedding-planner/backend/internal/domain/error"
)

// GenerateTipsInput represents the input for generating saving tips.
type GenerateTipsInput struct {
	ReferenceID string
}

// GenerateTipsOutput represents the output of tip generation.
type GenerateTipsOutput struct {
	Tips []*adapter.BudgetTip
}

// GenerateTipsUseCase asks the budget advisor for saving suggestions based
// on a plan's current breakdown.
type GenerateTipsUseCase struct {
	planRepo adapter.BudgetPlanRepository
	advisor  adapter.BudgetAdvisor
}

// NewGenerateTipsUseCase creates a new GenerateTipsUseCase instance.
func NewGenerateTipsUseCase(planRepo adapter.BudgetPlanRepository, advisor adapter.BudgetAdvisor) *GenerateTipsUseCase {
	return &GenerateTipsUseCase{
		planRepo: planRepo,
		advisor:  advisor,
	}
}

// Execute generates saving tips for the plan identified by reference id.
func (uc *GenerateTipsUseCase) Execute(ctx context.Context, input GenerateTipsInput) (*GenerateTipsOutput, error) {
	if uc.advisor == nil || !uc.advisor.IsAvailable() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeAdvisorUnavailable,
			"budget advisor is not configured",
			domainerror.ErrAdvisorUnavailable,
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

	request := &adapter.BudgetAdviceRequest{
		Location:    plan.Location,
		GuestCount:  plan.GuestCount,
		TotalBudget: plan.CurrentTotalBudget,
		Categories:  make([]adapter.AdviceCategory, 0, len(plan.BudgetBreakdown)),
	}
	for _, cat := range plan.BudgetBreakdown {
		request.Categories = append(request.Categories, adapter.AdviceCategory{
			Name:            cat.CategoryName,
			EstimatedAmount: cat.EstimatedAmount,
			ActualCost:      cat.ActualCost,
		})
	}

	tips, err := uc.advisor.SuggestSavings(ctx, request)
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeAdvisorFailed,
			"failed to generate budget tips",
			fmt.Errorf("%w: %v", domainerror.ErrAdvisorUnavailable, err),
		)
	}

	return &GenerateTipsOutput{Tips: tips}, nil
}
