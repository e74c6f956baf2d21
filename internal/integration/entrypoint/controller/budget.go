// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wedding-planner/backend/internal/application/usecase/budget"
	"github.com/wedding-planner/backend/internal/application/usecase/suggestion"
	domainerror "github.com/wedding-planner/backend/internal/domain/error"
	"github.com/wedding-planner/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles budget plan endpoints.
type BudgetController struct {
	createUseCase    *budget.CreatePlanUseCase
	getUseCase       *budget.GetPlanUseCase
	adjustUseCase    *budget.AdjustPlanUseCase
	addVendorUseCase *budget.AddVendorUseCase
	deleteUseCase    *budget.DeletePlanUseCase
	tipsUseCase      *suggestion.GenerateTipsUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	createUseCase *budget.CreatePlanUseCase,
	getUseCase *budget.GetPlanUseCase,
	adjustUseCase *budget.AdjustPlanUseCase,
	addVendorUseCase *budget.AddVendorUseCase,
	deleteUseCase *budget.DeletePlanUseCase,
	tipsUseCase *suggestion.GenerateTipsUseCase,
) *BudgetController {
	return &BudgetController{
		createUseCase:    createUseCase,
		getUseCase:       getUseCase,
		adjustUseCase:    adjustUseCase,
		addVendorUseCase: addVendorUseCase,
		deleteUseCase:    deleteUseCase,
		tipsUseCase:      tipsUseCase,
	}
}

// Create handles POST /budget requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	var req dto.CreateBudgetPlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingPlanFields),
		})
		return
	}

	input := budget.CreatePlanInput{
		ReferenceID:  req.ReferenceID,
		TotalBudget:  decimal.NewFromFloat(req.TotalBudget),
		GuestCount:   req.GuestCount,
		Location:     req.Location,
		WeddingDates: req.WeddingDates,
		NoOfEvents:   req.NoOfEvents,
		NotifyEmail:  req.NotifyEmail,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetPlanResponse(output.Plan))
}

// Get handles GET /budget/:reference_id requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	input := budget.GetPlanInput{
		ReferenceID: ctx.Param("reference_id"),
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetPlanResponse(output.Plan))
}

// Adjust handles PUT /budget/:reference_id/adjust requests.
func (c *BudgetController) Adjust(ctx *gin.Context) {
	var req dto.AdjustBudgetPlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := budget.AdjustPlanInput{
		ReferenceID:    ctx.Param("reference_id"),
		Deletions:      req.Deletions,
		Adjustments:    make([]budget.CategoryAdjustment, 0, len(req.Adjustments)),
		NewTotalBudget: decimal.NewFromFloat(req.NewTotalBudget),
	}

	for _, adj := range req.Adjustments {
		change := budget.CategoryAdjustment{
			CategoryName:  adj.CategoryName,
			NewEstimate:   decimal.NewFromFloat(adj.NewEstimate),
			PaymentStatus: adj.PaymentStatus,
		}
		if adj.ActualCost != nil {
			cost := decimal.NewFromFloat(*adj.ActualCost)
			change.ActualCost = &cost
		}
		input.Adjustments = append(input.Adjustments, change)
	}

	output, err := c.adjustUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetPlanResponse(output.Plan))
}

// AddVendor handles POST /budget/:reference_id/vendors requests.
func (c *BudgetController) AddVendor(ctx *gin.Context) {
	var req dto.AddVendorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeEmptyVendorName),
		})
		return
	}

	input := budget.AddVendorInput{
		ReferenceID:   ctx.Param("reference_id"),
		CategoryName:  req.CategoryName,
		VendorName:    req.VendorName,
		ActualCost:    decimal.NewFromFloat(req.ActualCost),
		PaymentStatus: req.PaymentStatus,
	}

	output, err := c.addVendorUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetPlanResponse(output.Plan))
}

// Delete handles DELETE /budget/:reference_id requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	input := budget.DeletePlanInput{
		ReferenceID: ctx.Param("reference_id"),
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Tips handles GET /budget/:reference_id/tips requests.
func (c *BudgetController) Tips(ctx *gin.Context) {
	referenceID := ctx.Param("reference_id")

	output, err := c.tipsUseCase.Execute(ctx.Request.Context(), suggestion.GenerateTipsInput{
		ReferenceID: referenceID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	response := dto.BudgetTipsResponse{
		ReferenceID: referenceID,
		Tips:        make([]dto.BudgetTipResponse, 0, len(output.Tips)),
	}
	for _, tip := range output.Tips {
		response.Tips = append(response.Tips, dto.BudgetTipResponse{
			CategoryName: tip.CategoryName,
			Tip:          tip.Tip,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// handleBudgetError handles budget errors and returns appropriate HTTP responses.
func (c *BudgetController) handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		statusCode := c.getStatusCodeForBudgetError(budgetErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForBudgetError maps budget error codes to HTTP status codes.
func (c *BudgetController) getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodePlanNotFound,
		domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNegativeEstimate,
		domainerror.ErrCodeNegativeActualCost,
		domainerror.ErrCodeEmptyVendorName,
		domainerror.ErrCodeMissingPlanFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeAdvisorUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
