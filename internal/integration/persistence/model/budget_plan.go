// Package model defines database models for persistence layer.
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/wedding-planner/backend/internal/domain/entity"
)

// CategoryBreakdownJSON represents one category inside the jsonb breakdown column.
type CategoryBreakdownJSON struct {
	CategoryName    string           `json:"category_name"`
	Percentage      decimal.Decimal  `json:"percentage"`
	EstimatedAmount decimal.Decimal  `json:"estimated_amount"`
	ActualCost      *decimal.Decimal `json:"actual_cost,omitempty"`
	PaymentStatus   *string          `json:"payment_status,omitempty"`
	IsUserSet       bool             `json:"is_user_set"`
}

// BreakdownJSON is the full jsonb breakdown column.
type BreakdownJSON []CategoryBreakdownJSON

// Value implements the driver.Valuer interface.
func (b BreakdownJSON) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements the sql.Scanner interface.
func (b *BreakdownJSON) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return errors.New("unsupported type for breakdown column")
	}
}

// BudgetPlanModel represents the budget_plans table in the database.
type BudgetPlanModel struct {
	ReferenceID        string          `gorm:"type:varchar(64);primaryKey"`
	TotalBudgetInput   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentTotalBudget decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	GuestCount         int             `gorm:"not null;default:0"`
	Location           string          `gorm:"type:varchar(255)"`
	WeddingDates       string          `gorm:"type:varchar(255)"`
	NoOfEvents         int             `gorm:"not null;default:1"`
	Breakdown          BreakdownJSON   `gorm:"type:jsonb"`
	TotalSpent         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Balance            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Timestamp          time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetPlanModel.
func (BudgetPlanModel) TableName() string {
	return "budget_plans"
}

// SelectedVendorModel represents the selected_vendors table. Vendor rows are
// child records of a plan, replaced wholesale on every plan upsert.
type SelectedVendorModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PlanReferenceID string         `gorm:"type:varchar(64);not null;index"`
	CategoryName    string         `gorm:"type:varchar(100);not null"`
	Title           string         `gorm:"type:varchar(255);not null"`
	City            string         `gorm:"type:varchar(100)"`
	Rating          float64        `gorm:"type:decimal(3,1)"`
	ImageURLs       pq.StringArray `gorm:"type:text[]"`
	CreatedAt       time.Time      `gorm:"not null"`
}

// TableName returns the table name for the SelectedVendorModel.
func (SelectedVendorModel) TableName() string {
	return "selected_vendors"
}

// ToEntity converts a BudgetPlanModel plus its vendor rows to a domain BudgetPlan.
func (m *BudgetPlanModel) ToEntity(vendors []SelectedVendorModel) *entity.BudgetPlan {
	plan := &entity.BudgetPlan{
		ReferenceID:        m.ReferenceID,
		TotalBudgetInput:   m.TotalBudgetInput,
		CurrentTotalBudget: m.CurrentTotalBudget,
		GuestCount:         m.GuestCount,
		Location:           m.Location,
		WeddingDates:       m.WeddingDates,
		NoOfEvents:         m.NoOfEvents,
		BudgetBreakdown:    make([]entity.CategoryBreakdown, 0, len(m.Breakdown)),
		TotalSpent:         m.TotalSpent,
		Balance:            m.Balance,
		SelectedVendors:    make([]entity.SelectedVendorInfo, 0, len(vendors)),
		Timestamp:          m.Timestamp,
	}

	for _, cat := range m.Breakdown {
		plan.BudgetBreakdown = append(plan.BudgetBreakdown, entity.CategoryBreakdown{
			CategoryName:    cat.CategoryName,
			Percentage:      cat.Percentage,
			EstimatedAmount: cat.EstimatedAmount,
			ActualCost:      cat.ActualCost,
			PaymentStatus:   cat.PaymentStatus,
			IsUserSet:       cat.IsUserSet,
		})
	}

	for _, v := range vendors {
		plan.SelectedVendors = append(plan.SelectedVendors, entity.SelectedVendorInfo{
			ID:           v.ID,
			CategoryName: v.CategoryName,
			Title:        v.Title,
			City:         v.City,
			Rating:       v.Rating,
			ImageURLs:    v.ImageURLs,
		})
	}

	return plan
}

// PlanFromEntity creates a BudgetPlanModel and its vendor rows from a domain BudgetPlan.
func PlanFromEntity(plan *entity.BudgetPlan) (*BudgetPlanModel, []SelectedVendorModel) {
	m := &BudgetPlanModel{
		ReferenceID:        plan.ReferenceID,
		TotalBudgetInput:   plan.TotalBudgetInput,
		CurrentTotalBudget: plan.CurrentTotalBudget,
		GuestCount:         plan.GuestCount,
		Location:           plan.Location,
		WeddingDates:       plan.WeddingDates,
		NoOfEvents:         plan.NoOfEvents,
		Breakdown:          make(BreakdownJSON, 0, len(plan.BudgetBreakdown)),
		TotalSpent:         plan.TotalSpent,
		Balance:            plan.Balance,
		Timestamp:          plan.Timestamp,
	}

	for _, cat := range plan.BudgetBreakdown {
		m.Breakdown = append(m.Breakdown, CategoryBreakdownJSON{
			CategoryName:    cat.CategoryName,
			Percentage:      cat.Percentage,
			EstimatedAmount: cat.EstimatedAmount,
			ActualCost:      cat.ActualCost,
			PaymentStatus:   cat.PaymentStatus,
			IsUserSet:       cat.IsUserSet,
		})
	}

	vendors := make([]SelectedVendorModel, 0, len(plan.SelectedVendors))
	for _, v := range plan.SelectedVendors {
		vendors = append(vendors, SelectedVendorModel{
			ID:              v.ID,
			PlanReferenceID: plan.ReferenceID,
			CategoryName:    v.CategoryName,
			Title:           v.Title,
			City:            v.City,
			Rating:          v.Rating,
			ImageURLs:       pq.StringArray(v.ImageURLs),
			CreatedAt:       time.Now().UTC(),
		})
	}

	return m, vendors
}
