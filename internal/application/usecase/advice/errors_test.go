package advice

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainerror "github.com/smartspend/backend/internal/domain/error"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode domainerror.AdviceErrorCode
		expectRetry  bool
	}{
		// Timeout/cancellation errors
		{
			name:         "context deadline exceeded",
			err:          fmt.Errorf("generate: %w", context.DeadlineExceeded),
			expectedCode: domainerror.ErrCodeAdviceTimeout,
			expectRetry:  true,
		},
		{
			name:         "context canceled",
			err:          context.Canceled,
			expectedCode: domainerror.ErrCodeAdviceTimeout,
			expectRetry:  true,
		},
		// Rate limiting errors
		{
			name:         "quota error",
			err:          errors.New("googleapi: Error 429: Quota exceeded"),
			expectedCode: domainerror.ErrCodeAdviceRateLimited,
			expectRetry:  true,
		},
		{
			name:         "resource exhausted error",
			err:          errors.New("rpc error: code = ResourceExhausted desc = resource exhausted"),
			expectedCode: domainerror.ErrCodeAdviceRateLimited,
			expectRetry:  true,
		},
		// Authentication errors
		{
			name:         "invalid api key",
			err:          errors.New("googleapi: Error 400: API key not valid. invalid api key"),
			expectedCode: domainerror.ErrCodeAdviceAuthError,
			expectRetry:  false,
		},
		{
			name:         "permission denied",
			err:          errors.New("rpc error: code = PermissionDenied desc = permission denied"),
			expectedCode: domainerror.ErrCodeAdviceAuthError,
			expectRetry:  false,
		},
		// Network errors
		{
			name:         "dial failure",
			err:          errors.New("dial tcp: lookup generativelanguage.googleapis.com: no such host"),
			expectedCode: domainerror.ErrCodeAdviceUnavailable,
			expectRetry:  true,
		},
		{
			name:         "service unavailable",
			err:          errors.New("HTTP 503 Service Unavailable"),
			expectedCode: domainerror.ErrCodeAdviceUnavailable,
			expectRetry:  true,
		},
		// Response errors
		{
			name:         "empty advice",
			err:          domainerror.ErrEmptyAdvice,
			expectedCode: domainerror.ErrCodeAdviceParseError,
			expectRetry:  true,
		},
		// Unknown
		{
			name:         "anything else",
			err:          errors.New("something odd happened"),
			expectedCode: domainerror.ErrCodeAdviceUnknownError,
			expectRetry:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifyError(tt.err)

			if result.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, result.Code)
			}
			if result.Retryable != tt.expectRetry {
				t.Errorf("expected retryable %v, got %v", tt.expectRetry, result.Retryable)
			}
			if result.Message == "" {
				t.Error("expected non-empty message")
			}
			if !errors.Is(result, domainerror.ErrProvider) {
				t.Error("expected a provider error")
			}
		})
	}
}

func TestClassifyErrorKeepsAdviceErrors(t *testing.T) {
	original := domainerror.NewAdviceError(domainerror.ErrCodeAdviceAuthError, "bad key", false, nil)
	if got := classifyError(fmt.Errorf("wrapped: %w", original)); got != original {
		t.Errorf("expected the original advice error, got %v", got)
	}
}
