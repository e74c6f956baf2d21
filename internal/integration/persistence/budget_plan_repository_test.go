package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wedding-planner/backend/internal/domain/entity"
	domainerror "github.com/wedding-planner/backend/internal/domain/error"
	"github.com/wedding-planner/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&model.BudgetPlanModel{}, &model.SelectedVendorModel{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func storedPlan() *entity.BudgetPlan {
	plan := entity.NewBudgetPlan("wed-42", decimal.NewFromInt(100000), 150, "Jaipur", "2026-11-20", 3)
	cost := decimal.NewFromFloat(22000.50)
	status := "booked"
	plan.BudgetBreakdown = []entity.CategoryBreakdown{
		{CategoryName: "Venue", EstimatedAmount: decimal.NewFromInt(25000), ActualCost: &cost, PaymentStatus: &status, IsUserSet: true},
		{CategoryName: "Caterer", EstimatedAmount: decimal.NewFromInt(75000)},
	}
	plan.SelectedVendors = []entity.SelectedVendorInfo{
		{
			ID:           entity.VendorID("Royal Gardens", "Venue"),
			CategoryName: "Venue",
			Title:        "Royal Gardens",
			City:         "Jaipur",
			Rating:       4.7,
			ImageURLs:    []string{"https://img.example/1.jpg", "https://img.example/2.jpg"},
		},
	}
	plan.Recalculate()
	return plan
}

func TestBudgetPlanRepository_UpsertAndFind(t *testing.T) {
	repo := NewBudgetPlanRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Upsert(ctx, storedPlan()); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	loaded, err := repo.FindByReferenceID(ctx, "wed-42")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}

	if loaded.GuestCount != 150 || loaded.Location != "Jaipur" || loaded.NoOfEvents != 3 {
		t.Errorf("plan metadata not round-tripped: %+v", loaded)
	}
	if len(loaded.BudgetBreakdown) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(loaded.BudgetBreakdown))
	}

	venue := loaded.BudgetBreakdown[0]
	if venue.CategoryName != "Venue" || !venue.IsUserSet {
		t.Errorf("unexpected first category: %+v", venue)
	}
	if venue.ActualCost == nil || !venue.ActualCost.Equal(decimal.NewFromFloat(22000.50)) {
		t.Errorf("actual cost not round-tripped: %v", venue.ActualCost)
	}
	if venue.PaymentStatus == nil || *venue.PaymentStatus != "booked" {
		t.Errorf("payment status not round-tripped: %v", venue.PaymentStatus)
	}
	if loaded.BudgetBreakdown[1].ActualCost != nil {
		t.Error("expected nil actual cost to stay nil")
	}

	if len(loaded.SelectedVendors) != 1 {
		t.Fatalf("expected 1 vendor, got %d", len(loaded.SelectedVendors))
	}
	vendor := loaded.SelectedVendors[0]
	if vendor.Title != "Royal Gardens" || vendor.City != "Jaipur" {
		t.Errorf("vendor not round-tripped: %+v", vendor)
	}
	if len(vendor.ImageURLs) != 2 {
		t.Errorf("expected 2 image urls, got %v", vendor.ImageURLs)
	}
	if vendor.ID != entity.VendorID("Royal Gardens", "Venue") {
		t.Error("vendor id changed across round trip")
	}
}

func TestBudgetPlanRepository_UpsertReplacesVendorRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewBudgetPlanRepository(db)
	ctx := context.Background()

	plan := storedPlan()
	if err := repo.Upsert(ctx, plan); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	plan.SelectedVendors = nil
	if err := repo.Upsert(ctx, plan); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	var count int64
	if err := db.Model(&model.SelectedVendorModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected vendor rows to be replaced, found %d", count)
	}
}

func TestBudgetPlanRepository_FindNotFound(t *testing.T) {
	repo := NewBudgetPlanRepository(openTestDB(t))

	_, err := repo.FindByReferenceID(context.Background(), "missing")

	if !errors.Is(err, domainerror.ErrPlanNotFound) {
		t.Errorf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestBudgetPlanRepository_DeleteRemovesPlanAndVendors(t *testing.T) {
	db := openTestDB(t)
	repo := NewBudgetPlanRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, storedPlan()); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := repo.Delete(ctx, "wed-42"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := repo.FindByReferenceID(ctx, "wed-42"); !errors.Is(err, domainerror.ErrPlanNotFound) {
		t.Errorf("expected ErrPlanNotFound after delete, got %v", err)
	}

	var count int64
	if err := db.Model(&model.SelectedVendorModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected vendor rows to be deleted, found %d", count)
	}
}
