// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wedding-planner/backend/internal/application/adapter"
	"github.com/wedding-planner/backend/internal/domain/entity"
	domainerror "github.com/wedding-planner/backend/internal/domain/error"
	"github.com/wedding-planner/backend/internal/integration/persistence/model"
)

// budgetPlanRepository implements the adapter.BudgetPlanRepository interface.
type budgetPlanRepository struct {
	db *gorm.DB
}

// NewBudgetPlanRepository creates a new budget plan repository instance.
func NewBudgetPlanRepository(db *gorm.DB) adapter.BudgetPlanRepository {
	return &budgetPlanRepository{
		db: db,
	}
}

// FindByReferenceID retrieves a budget plan and its vendor rows by reference id.
func (r *budgetPlanRepository) FindByReferenceID(ctx context.Context, referenceID string) (*entity.BudgetPlan, error) {
	var planModel model.BudgetPlanModel
	result := r.db.WithContext(ctx).Where("reference_id = ?", referenceID).First(&planModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPlanNotFound
		}
		return nil, result.Error
	}

	var vendors []model.SelectedVendorModel
	result = r.db.WithContext(ctx).
		Where("plan_reference_id = ?", referenceID).
		Order("created_at ASC").
		Find(&vendors)
	if result.Error != nil {
		return nil, result.Error
	}

	return planModel.ToEntity(vendors), nil
}

// Upsert writes the plan row and replaces its vendor rows in one transaction.
func (r *budgetPlanRepository) Upsert(ctx context.Context, plan *entity.BudgetPlan) error {
	planModel, vendors := model.PlanFromEntity(plan)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(planModel).Error; err != nil {
			return err
		}

		if err := tx.Where("plan_reference_id = ?", plan.ReferenceID).
			Delete(&model.SelectedVendorModel{}).Error; err != nil {
			return err
		}

		if len(vendors) > 0 {
			if err := tx.Create(&vendors).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a budget plan and its vendor rows.
func (r *budgetPlanRepository) Delete(ctx context.Context, referenceID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_reference_id = ?", referenceID).
			Delete(&model.SelectedVendorModel{}).Error; err != nil {
			return err
		}

		return tx.Where("reference_id = ?", referenceID).
			Delete(&model.BudgetPlanModel{}).Error
	})
}
