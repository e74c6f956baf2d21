package budget

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wedding-planner/backend/internal/domain/entity"
	domainerror "github.com/wedding-planner/backend/internal/domain/error"
)

// planRepoStub is an in-memory BudgetPlanRepository. It hands out deep
// copies so use-case mutations never leak into "stored" state before Upsert.
type planRepoStub struct {
	plans       map[string]*entity.BudgetPlan
	findErr     error
	upsertErr   error
	upsertCalls int
}

func newPlanRepoStub(plans ...*entity.BudgetPlan) *planRepoStub {
	stub := &planRepoStub{plans: make(map[string]*entity.BudgetPlan)}
	for _, p := range plans {
		stub.plans[p.ReferenceID] = clonePlan(p)
	}
	return stub
}

func (s *planRepoStub) FindByReferenceID(_ context.Context, referenceID string) (*entity.BudgetPlan, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	plan, ok := s.plans[referenceID]
	if !ok {
		return nil, domainerror.ErrPlanNotFound
	}
	return clonePlan(plan), nil
}

func (s *planRepoStub) Upsert(_ context.Context, plan *entity.BudgetPlan) error {
	s.upsertCalls++
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.plans[plan.ReferenceID] = clonePlan(plan)
	return nil
}

func (s *planRepoStub) Delete(_ context.Context, referenceID string) error {
	delete(s.plans, referenceID)
	return nil
}

func (s *planRepoStub) stored(referenceID string) *entity.BudgetPlan {
	return s.plans[referenceID]
}

func clonePlan(p *entity.BudgetPlan) *entity.BudgetPlan {
	out := *p
	out.BudgetBreakdown = make([]entity.CategoryBreakdown, len(p.BudgetBreakdown))
	for i, c := range p.BudgetBreakdown {
		cc := c
		if c.ActualCost != nil {
			v := *c.ActualCost
			cc.ActualCost = &v
		}
		if c.PaymentStatus != nil {
			v := *c.PaymentStatus
			cc.PaymentStatus = &v
		}
		out.BudgetBreakdown[i] = cc
	}
	out.SelectedVendors = make([]entity.SelectedVendorInfo, len(p.SelectedVendors))
	for i, v := range p.SelectedVendors {
		vv := v
		vv.ImageURLs = append([]string(nil), v.ImageURLs...)
		out.SelectedVendors[i] = vv
	}
	return &out
}

// testPlan builds a plan with the given total and categories for adjustment
// tests. Derived fields are recalculated so fixtures start consistent.
func testPlan(referenceID string, total float64, categories ...entity.CategoryBreakdown) *entity.BudgetPlan {
	plan := entity.NewBudgetPlan(referenceID, decimal.NewFromFloat(total), 150, "Jaipur", "2026-11-20", 3)
	plan.BudgetBreakdown = categories
	plan.Recalculate()
	return plan
}

func cat(name string, estimated float64, userSet bool) entity.CategoryBreakdown {
	return entity.CategoryBreakdown{
		CategoryName:    name,
		EstimatedAmount: decimal.NewFromFloat(estimated),
		IsUserSet:       userSet,
	}
}

func catWithCost(name string, estimated, actual float64, userSet bool) entity.CategoryBreakdown {
	c := cat(name, estimated, userSet)
	cost := decimal.NewFromFloat(actual)
	c.ActualCost = &cost
	return c
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func strPtr(s string) *string {
	return &s
}
