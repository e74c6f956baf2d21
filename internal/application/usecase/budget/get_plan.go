// Package budget contains the budget-plan reallocation engine use cases.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/wedding-planner/backend/internal/application/adapter"
	"github.com/wedding-planner/backend/internal/domain/entity"
	domainerror "github.com/wedding-planner/backend/internal/domain/error"
)

// GetPlanInput represents the input for retrieving a budget plan.
type GetPlanInput struct {
	ReferenceID string
}

// GetPlanOutput represents the output of a budget plan retrieval.
type GetPlanOutput struct {
	Plan *entity.BudgetPlan
}

// GetPlanUseCase handles budget plan retrieval.
type GetPlanUseCase struct {
	planRepo adapter.BudgetPlanRepository
}

// NewGetPlanUseCase creates a new GetPlanUseCase instance.
func NewGetPlanUseCase(planRepo adapter.BudgetPlanRepository) *GetPlanUseCase {
	return &GetPlanUseCase{
		planRepo: planRepo,
	}
}

// Execute retrieves the budget plan for a reference id.
func (uc *GetPlanUseCase) Execute(ctx context.Context, input GetPlanInput) (*GetPlanOutput, error) {
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

	return &GetPlanOutput{Plan: plan}, nil
}
