// Package error defines domain-specific errors for the Wedding Planner application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrPlanNotFound is returned when no budget plan exists for a reference id.
	ErrPlanNotFound = errors.New("budget plan not found")

	// ErrCategoryNotFound is returned when a named category is not part of the plan.
	ErrCategoryNotFound = errors.New("budget category not found")

	// ErrNegativeEstimate is returned when an adjustment carries a negative estimate.
	ErrNegativeEstimate = errors.New("estimated amount must not be negative")

	// ErrNegativeActualCost is returned when an adjustment carries a negative actual cost.
	ErrNegativeActualCost = errors.New("actual cost must not be negative")

	// ErrEmptyVendorName is returned when a vendor-cost attachment has no vendor name.
	ErrEmptyVendorName = errors.New("vendor name must not be empty")

	// ErrPlanPersistence is returned when the plan store fails to write a computed plan.
	ErrPlanPersistence = errors.New("failed to persist budget plan")

	// ErrAdvisorUnavailable is returned when the AI budget advisor is not configured.
	ErrAdvisorUnavailable = errors.New("budget advisor is not available")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeNegativeEstimate   BudgetErrorCode = "BGT-010001"
	ErrCodeNegativeActualCost BudgetErrorCode = "BGT-010002"
	ErrCodeEmptyVendorName    BudgetErrorCode = "BGT-010003"
	ErrCodeMissingPlanFields  BudgetErrorCode = "BGT-010004"

	// Not-found errors (02XXXX)
	ErrCodePlanNotFound     BudgetErrorCode = "BGT-020001"
	ErrCodeCategoryNotFound BudgetErrorCode = "BGT-020002"

	// Persistence errors (03XXXX)
	ErrCodePlanPersistence BudgetErrorCode = "BGT-030001"

	// Advisor errors (04XXXX)
	ErrCodeAdvisorUnavailable BudgetErrorCode = "BGT-040001"
	ErrCodeAdvisorFailed      BudgetErrorCode = "BGT-040002"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
