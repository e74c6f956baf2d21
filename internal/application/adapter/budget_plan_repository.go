// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/wedding-planner/backend/internal/domain/entity"
)

// BudgetPlanRepository defines the interface for budget plan persistence
// operations. It is the engine's only external dependency: one read and one
// write per request, no optimistic locking (last writer wins).
type BudgetPlanRepository interface {
	// FindByReferenceID retrieves a budget plan by its reference id.
	// Returns domainerror.ErrPlanNotFound when no plan exists.
	FindByReferenceID(ctx context.Context, referenceID string) (*entity.BudgetPlan, error)

	// Upsert creates or fully replaces the budget plan for its reference id.
	Upsert(ctx context.Context, plan *entity.BudgetPlan) error

	// Delete removes the budget plan and its selected vendors.
	Delete(ctx context.Context, referenceID string) error
}
