package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainerror "github.com/smartspend/backend/internal/domain/error"
	"github.com/smartspend/backend/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleLedgerError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation",
			err:        domainerror.NewLedgerError(domainerror.ErrCodeInvalidQuantity, "quantity must be at least 1", domainerror.ErrInvalidQuantity),
			wantStatus: http.StatusBadRequest,
			wantCode:   "LDG-010002",
		},
		{
			name:       "unknown planned reference",
			err:        domainerror.FromRepository("create actual item", domainerror.ErrPlannedItemReferenceNotFound),
			wantStatus: http.StatusBadRequest,
			wantCode:   "LDG-010008",
		},
		{
			name:       "not found",
			err:        domainerror.FromRepository("delete actual item", domainerror.ErrActualItemNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "LDG-020002",
		},
		{
			name:       "storage",
			err:        domainerror.NewStorageError("list planned items", errors.New("connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "LDG-030001",
		},
		{
			name:       "unclassified",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "LDG-030001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handleLedgerError(ctx, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var body dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, body.Code)
			}
			if body.Error == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(dto.BudgetResponse{Amount: dto.NewMoney(decimal.RequireFromString("12.5"))})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if string(data) != `{"amount":12.50}` {
		t.Errorf("unexpected JSON %s", data)
	}

	for _, input := range []string{`{"amount":3.10}`, `{"amount":"3.1"}`} {
		var req dto.UpdateBudgetRequest
		if err := json.Unmarshal([]byte(input), &req); err != nil {
			t.Fatalf("failed to unmarshal %s: %v", input, err)
		}
		if req.Amount == nil || !req.Amount.Equal(decimal.RequireFromString("3.1")) {
			t.Errorf("expected 3.1 from %s, got %v", input, req.Amount)
		}
	}
}

func TestInvalidBody(t *testing.T) {
	router := gin.New()
	router.POST("/budget", func(ctx *gin.Context) {
		var req dto.UpdateBudgetRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			invalidBody(ctx, err)
			return
		}
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/budget", strings.NewReader(`{}`)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), string(domainerror.ErrCodeMissingFields)) {
		t.Errorf("expected missing fields code, got %s", w.Body.String())
	}
}

func TestHealthController(t *testing.T) {
	tests := []struct {
		name       string
		db         func() bool
		cache      func() bool
		wantStatus int
		wantBody   HealthResponse
	}{
		{
			name:       "healthy with memory cache",
			db:         func() bool { return true },
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: "ok", Database: "connected", Cache: "in-memory"},
		},
		{
			name:       "redis down",
			db:         func() bool { return true },
			cache:      func() bool { return false },
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: "ok", Database: "connected", Cache: "disconnected"},
		},
		{
			name:       "database down",
			db:         func() bool { return false },
			cache:      func() bool { return true },
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: "degraded", Database: "disconnected", Cache: "connected"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewHealthController(tt.db, tt.cache).Check)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var body HealthResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			body.Timestamp = ""
			if body != tt.wantBody {
				t.Errorf("expected %+v, got %+v", tt.wantBody, body)
			}
		})
	}
}
