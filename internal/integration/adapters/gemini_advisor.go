// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// recentSpendingLimit caps how many actual items go into the prompt.
const recentSpendingLimit = 10

// GeminiAdvisor implements the AdviceService using Google Gemini.
type GeminiAdvisor struct {
	apiKey    string
	modelName string
}

var _ adapter.AdviceService = (*GeminiAdvisor)(nil)

// NewGeminiAdvisor creates a new Gemini advisor instance.
func NewGeminiAdvisor(apiKey, modelName string) *GeminiAdvisor {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	return &GeminiAdvisor{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini advisor is properly configured.
func (s *GeminiAdvisor) IsAvailable() bool {
	return s.apiKey != ""
}

// Summarize asks Gemini for short spending tips on the snapshot.
func (s *GeminiAdvisor) Summarize(ctx context.Context, snapshot *entity.FinancialSnapshot) (string, error) {
	if !s.IsAvailable() {
		return "", domainerror.ErrAdvisorNotConfigured
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.7)

	resp, err := model.GenerateContent(ctx, genai.Text(buildAdvicePrompt(snapshot)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return responseText(resp)
}

// buildAdvicePrompt renders the snapshot as the advisor prompt.
func buildAdvicePrompt(snapshot *entity.FinancialSnapshot) string {
	var sb strings.Builder

	sb.WriteString(`You are a professional financial advisor. Analyze the monthly spending data below.

Goal: Provide 3 concise, high-impact observations or actionable tips.
Tone: Professional, encouraging, and direct.
Format: Use Markdown. Use bold for key points. Use bullet points.

FINANCIAL DATA:
`)

	totalSpent := decimal.Zero
	for _, item := range snapshot.ActualItems {
		totalSpent = totalSpent.Add(item.TotalCost)
	}
	sb.WriteString(fmt.Sprintf("- Total Budget: %s\n", snapshot.Budget.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("- Total Spent: %s\n", totalSpent.StringFixed(2)))

	sb.WriteString("\nPLANNED ITEMS:\n")
	if len(snapshot.PlannedItems) == 0 {
		sb.WriteString("(No planned items)\n")
	}
	for _, item := range snapshot.PlannedItems {
		sb.WriteString(fmt.Sprintf("- %s: Planned %d, Bought %d @ %s/unit\n",
			item.Name, item.TargetQuantity, item.PurchasedQuantity, item.PricePerUnit.StringFixed(2)))
	}

	sb.WriteString("\nRECENT SPENDING:\n")
	if len(snapshot.ActualItems) == 0 {
		sb.WriteString("(No purchases recorded)\n")
	}
	for i, item := range snapshot.ActualItems {
		if i == recentSpendingLimit {
			break
		}
		sb.WriteString(fmt.Sprintf("- %s: %s x%d (%s)\n",
			item.Date.Format(entity.DateLayout), item.Name, item.Quantity, item.TotalCost.StringFixed(2)))
	}

	return sb.String()
}

// responseText extracts the first text part of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", domainerror.ErrEmptyAdvice
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", domainerror.ErrEmptyAdvice
	}
	return text, nil
}
