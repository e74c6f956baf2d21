package suggestion

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wedding-planner/backend/internal/application/adapter"
	"github.com/wedding-planner/backend/internal/domain/entity"
	domainerror "github.com/wedding-planner/backend/internal/domain/error"
)

type planRepoStub struct {
	plan *entity.BudgetPlan
}

func (s *planRepoStub) FindByReferenceID(ctx context.Context, referenceID string) (*entity.BudgetPlan, error) {
	if s.plan == nil || s.plan.ReferenceID != referenceID {
		return nil, domainerror.ErrPlanNotFound
	}
	return s.plan, nil
}

func (s *planRepoStub) Upsert(ctx context.Context, plan *entity.BudgetPlan) error { return nil }

func (s *planRepoStub) Delete(ctx context.Context, referenceID string) error { return nil }

type advisorStub struct {
	available bool
	tips      []*adapter.BudgetTip
	err       error

	lastRequest *adapter.BudgetAdviceRequest
}

func (s *advisorStub) IsAvailable() bool { return s.available }

func (s *advisorStub) SuggestSavings(ctx context.Context, request *adapter.BudgetAdviceRequest) ([]*adapter.BudgetTip, error) {
	s.lastRequest = request
	return s.tips, s.err
}

func tipsPlan() *entity.BudgetPlan {
	plan := entity.NewBudgetPlan("ref-1", decimal.NewFromInt(100000), 150, "Jaipur", "2026-11-20", 3)
	cost := decimal.NewFromInt(30000)
	plan.BudgetBreakdown = []entity.CategoryBreakdown{
		{CategoryName: "Venue", EstimatedAmount: decimal.NewFromInt(40000), ActualCost: &cost},
		{CategoryName: "Caterer", EstimatedAmount: decimal.NewFromInt(60000)},
	}
	plan.Recalculate()
	return plan
}

func TestGenerateTips_PassesPlanContextToAdvisor(t *testing.T) {
	advisor := &advisorStub{
		available: true,
		tips: []*adapter.BudgetTip{
			{CategoryName: "Venue", Tip: "Book an off-season date for lower venue rates."},
		},
	}
	uc := NewGenerateTipsUseCase(&planRepoStub{plan: tipsPlan()}, advisor)

	out, err := uc.Execute(context.Background(), GenerateTipsInput{ReferenceID: "ref-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Tips) != 1 || out.Tips[0].CategoryName != "Venue" {
		t.Fatalf("unexpected tips: %+v", out.Tips)
	}

	req := advisor.lastRequest
	if req == nil {
		t.Fatal("advisor was not called")
	}
	if req.Location != "Jaipur" || req.GuestCount != 150 {
		t.Errorf("plan context not forwarded: %+v", req)
	}
	if len(req.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(req.Categories))
	}
	if req.Categories[0].ActualCost == nil || !req.Categories[0].ActualCost.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("expected venue actual cost 30000, got %v", req.Categories[0].ActualCost)
	}
}

func TestGenerateTips_AdvisorNotConfigured(t *testing.T) {
	uc := NewGenerateTipsUseCase(&planRepoStub{plan: tipsPlan()}, &advisorStub{available: false})

	_, err := uc.Execute(context.Background(), GenerateTipsInput{ReferenceID: "ref-1"})

	var budgetErr *domainerror.BudgetError
	if !errors.As(err, &budgetErr) {
		t.Fatalf("expected BudgetError, got %v", err)
	}
	if budgetErr.Code != domainerror.ErrCodeAdvisorUnavailable {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeAdvisorUnavailable, budgetErr.Code)
	}
}

func TestGenerateTips_PlanNotFound(t *testing.T) {
	uc := NewGenerateTipsUseCase(&planRepoStub{}, &advisorStub{available: true})

	_, err := uc.Execute(context.Background(), GenerateTipsInput{ReferenceID: "missing"})

	if !errors.Is(err, domainerror.ErrPlanNotFound) {
		t.Errorf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestGenerateTips_AdvisorFailure(t *testing.T) {
	advisor := &advisorStub{available: true, err: errors.New("model overloaded")}
	uc := NewGenerateTipsUseCase(&planRepoStub{plan: tipsPlan()}, advisor)

	_, err := uc.Execute(context.Background(), GenerateTipsInput{ReferenceID: "ref-1"})

	var budgetErr *domainerror.BudgetError
	if !errors.As(err, &budgetErr) {
		t.Fatalf("expected BudgetError, got %v", err)
	}
	if budgetErr.Code != domainerror.ErrCodeAdvisorFailed {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeAdvisorFailed, budgetErr.Code)
	}
}
