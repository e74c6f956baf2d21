// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/wedding-planner/backend/internal/application/adapter"
	"github.com/wedding-planner/backend/internal/domain/entity"
)

// Service renders and sends plan notification emails.
type Service struct {
	sender adapter.EmailSender
}

// NewService creates a new email service.
func NewService(sender adapter.EmailSender) *Service {
	return &Service{
		sender: sender,
	}
}

// SendPlanSummary mails a breakdown summary for a freshly created plan.
func (s *Service) SendPlanSummary(ctx context.Context, to string, plan *entity.BudgetPlan) error {
	subject := fmt.Sprintf("Your wedding budget plan for %s", plan.Location)

	input := adapter.SendEmailInput{
		To:      to,
		Subject: subject,
		HTML:    renderSummaryHTML(plan),
		Text:    renderSummaryText(plan),
	}

	if _, err := s.sender.Send(ctx, input); err != nil {
		return fmt.Errorf("failed to send plan summary: %w", err)
	}

	return nil
}

func renderSummaryHTML(plan *entity.BudgetPlan) string {
	var sb strings.Builder

	sb.WriteString("<h2>Your wedding budget is ready</h2>")
	sb.WriteString(fmt.Sprintf("<p>Total budget: <strong>%s</strong> for %d guests in %s.</p>",
		plan.CurrentTotalBudget.StringFixed(2), plan.GuestCount, html.EscapeString(plan.Location)))

	sb.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\">")
	sb.WriteString("<tr><th>Category</th><th>Estimated</th><th>Share</th></tr>")
	for _, cat := range plan.BudgetBreakdown {
		sb.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s%%</td></tr>",
			html.EscapeString(cat.CategoryName),
			cat.EstimatedAmount.StringFixed(2),
			cat.Percentage.StringFixed(2)))
	}
	sb.WriteString("</table>")

	sb.WriteString(fmt.Sprintf("<p>Plan reference: %s</p>", html.EscapeString(plan.ReferenceID)))

	return sb.String()
}

func renderSummaryText(plan *entity.BudgetPlan) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Your wedding budget is ready.\nTotal budget: %s for %d guests in %s.\n\n",
		plan.CurrentTotalBudget.StringFixed(2), plan.GuestCount, plan.Location))
	for _, cat := range plan.BudgetBreakdown {
		sb.WriteString(fmt.Sprintf("- %s: %s (%s%%)\n",
			cat.CategoryName, cat.EstimatedAmount.StringFixed(2), cat.Percentage.StringFixed(2)))
	}
	sb.WriteString(fmt.Sprintf("\nPlan reference: %s\n", plan.ReferenceID))

	return sb.String()
}
