// Package budget contains the budget-plan reallocation engine use cases.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/wedding-planner/backend/internal/application/adapter"
	domainerror "github.com/wedding-planner/backend/internal/domain/error"
)

// DeletePlanInput represents the input for removing a budget plan.
type DeletePlanInput struct {
	ReferenceID string
}

// DeletePlanOutput represents the output of a budget plan removal.
type DeletePlanOutput struct {
	Message string
}

// DeletePlanUseCase handles budget plan removal.
type DeletePlanUseCase struct {
	planRepo adapter.BudgetPlanRepository
}

// NewDeletePlanUseCase creates a new DeletePlanUseCase instance.
func NewDeletePlanUseCase(planRepo adapter.BudgetPlanRepository) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		planRepo: planRepo,
	}
}

// Execute removes the budget plan for a reference id.
func (uc *DeletePlanUseCase) Execute(ctx context.Context, input DeletePlanInput) (*DeletePlanOutput, error) {
	// Verify the plan exists so callers get a proper not-found error.
	if _, err := uc.planRepo.FindByReferenceID(ctx, input.ReferenceID); err != nil {
		if errors.Is(err, domainerror.ErrPlanNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodePlanNotFound,
				"budget plan not found",
				domainerror.ErrPlanNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load budget plan: %w", err)
	}

	if err := uc.planRepo.Delete(ctx, input.ReferenceID); err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodePlanPersistence,
			"failed to delete budget plan",
			fmt.Errorf("%w: %v", domainerror.ErrPlanPersistence, err),
		)
	}

	return &DeletePlanOutput{Message: "Budget plan deleted"}, nil
}
