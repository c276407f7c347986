package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

func TestBuildAdvicePrompt(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	snapshot := &entity.FinancialSnapshot{
		Budget: decimal.RequireFromString("500"),
		PlannedItems: []entity.PlannedItem{
			{ID: "p1", Name: "Groceries", TargetQuantity: 4, PurchasedQuantity: 1, PricePerUnit: decimal.RequireFromString("25.5")},
		},
	}
	for i := 0; i < 12; i++ {
		snapshot.ActualItems = append(snapshot.ActualItems,
			*entity.NewActualItem(fmt.Sprintf("a%d", i), fmt.Sprintf("Item %d", i), 1, decimal.RequireFromString("1.25"), day, ""))
	}

	prompt := buildAdvicePrompt(snapshot)

	for _, want := range []string{
		"3 concise",
		"Total Budget: 500.00",
		"Total Spent: 15.00",
		"- Groceries: Planned 4, Bought 1 @ 25.50/unit",
		"- 2024-03-05: Item 0 x1 (1.25)",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "Item 10") {
		t.Error("expected recent spending capped at 10 items")
	}
}

func TestBuildAdvicePromptEmptyLedger(t *testing.T) {
	prompt := buildAdvicePrompt(&entity.FinancialSnapshot{Budget: decimal.Zero})

	if !strings.Contains(prompt, "(No planned items)") || !strings.Contains(prompt, "(No purchases recorded)") {
		t.Errorf("expected empty markers in prompt\n%s", prompt)
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{name: "nil response", resp: nil, wantErr: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: true},
		{
			name: "blank text",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("  \n")}}},
			}},
			wantErr: true,
		},
		{
			name: "joined parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("- **Tip one**\n"), genai.Text("- Tip two")}}},
			}},
			want: "- **Tip one**\n- Tip two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := responseText(tt.resp)
			if tt.wantErr {
				if !errors.Is(err, domainerror.ErrEmptyAdvice) {
					t.Errorf("expected ErrEmptyAdvice, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGeminiAdvisorNotConfigured(t *testing.T) {
	advisor := NewGeminiAdvisor("", "")
	if advisor.IsAvailable() {
		t.Error("expected advisor without key to be unavailable")
	}
	if advisor.modelName != "gemini-2.5-flash" {
		t.Errorf("expected default model, got %s", advisor.modelName)
	}
	if _, err := advisor.Summarize(context.Background(), &entity.FinancialSnapshot{}); !errors.Is(err, domainerror.ErrAdvisorNotConfigured) {
		t.Errorf("expected ErrAdvisorNotConfigured, got %v", err)
	}
}

func TestUUIDGenerator(t *testing.T) {
	gen := UUIDGenerator{}
	a, b := gen.NewID(), gen.NewID()
	if a == "" || a == b {
		t.Errorf("expected distinct ids, got %q and %q", a, b)
	}
}
