// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/wedding-planner/backend/internal/application/adapter"
)

// GeminiService implements the BudgetAdvisor interface using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// SuggestSavings analyzes a plan breakdown and returns saving tips per category.
func (s *GeminiService) SuggestSavings(ctx context.Context, request *adapter.BudgetAdviceRequest) ([]*adapter.BudgetTip, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	prompt := s.buildPrompt(request)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	tips, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return tips, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiService) buildPrompt(request *adapter.BudgetAdviceRequest) string {
	var sb strings.Builder

	sb.WriteString(`You are an experienced wedding planner helping a couple save money. Analyze their budget breakdown and suggest one practical cost-saving tip per category where savings are realistic.

RULES:
- Tips must be concrete and actionable for the couple's location and guest count
- Only suggest tips for categories where a meaningful saving is plausible
- Keep each tip to one or two sentences
- Use the exact category names provided

WEDDING CONTEXT:
`)
	sb.WriteString(fmt.Sprintf("- Location: %s\n", request.Location))
	sb.WriteString(fmt.Sprintf("- Guest count: %d\n", request.GuestCount))
	sb.WriteString(fmt.Sprintf("- Total budget: %s\n", request.TotalBudget.StringFixed(2)))

	sb.WriteString("\nBUDGET BREAKDOWN:\n")
	for _, cat := range request.Categories {
		if cat.ActualCost != nil {
			sb.WriteString(fmt.Sprintf("- %s: estimated %s, spent %s\n",
				cat.Name, cat.EstimatedAmount.StringFixed(2), cat.ActualCost.StringFixed(2)))
		} else {
			sb.WriteString(fmt.Sprintf("- %s: estimated %s, nothing spent yet\n",
				cat.Name, cat.EstimatedAmount.StringFixed(2)))
		}
	}

	sb.WriteString(`
Respond with a JSON array of tips. Each tip must have:
{
  "category_name": "exact category name from the breakdown",
  "tip": "one or two sentence saving suggestion"
}

RESPONSE FORMAT: return only the JSON array, no additional text.
`)

	return sb.String()
}

// geminiTip represents the raw response from Gemini.
type geminiTip struct {
	CategoryName string `json:"category_name"`
	Tip          string `json:"tip"`
}

// parseResponse parses the Gemini response into BudgetTips.
func (s *GeminiService) parseResponse(resp *genai.GenerateContentResponse) ([]*adapter.BudgetTip, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Remove markdown code fences if present
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var raw []geminiTip
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	tips := make([]*adapter.BudgetTip, 0, len(raw))
	for _, item := range raw {
		if strings.TrimSpace(item.CategoryName) == "" || strings.TrimSpace(item.Tip) == "" {
			continue
		}
		tips = append(tips, &adapter.BudgetTip{
			CategoryName: item.CategoryName,
			Tip:          item.Tip,
		})
	}

	return tips, nil
}
