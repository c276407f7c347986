// Package advice contains the spending advice use case.
package advice

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// errorMessages contains the user-facing message for each advice error code.
var errorMessages = map[domainerror.AdviceErrorCode]string{
	domainerror.ErrCodeAdviceUnavailable:   "The advice service is temporarily unavailable. Please try again later.",
	domainerror.ErrCodeAdviceRateLimited:   "Too many advice requests. Wait a few minutes and try again.",
	domainerror.ErrCodeAdviceAuthError:     "The advice service is misconfigured. Please contact support.",
	domainerror.ErrCodeAdviceTimeout:       "Generating advice took longer than expected. Please try again.",
	domainerror.ErrCodeAdviceParseError:    "The advice service returned an unreadable response. Please try again.",
	domainerror.ErrCodeAdviceUnknownError:  "An unexpected error occurred while generating advice. Please try again.",
	domainerror.ErrCodeAdviceNotConfigured: "Advice is not available: no provider is configured.",
}

func newAdviceError(code domainerror.AdviceErrorCode, retryable bool, err error) *domainerror.AdviceError {
	return domainerror.NewAdviceError(code, errorMessages[code], retryable, err)
}

// classifyError converts a provider error into an AdviceError with the
// matching code and retryable flag.
func classifyError(err error) *domainerror.AdviceError {
	var adviceErr *domainerror.AdviceError
	if errors.As(err, &adviceErr) {
		return adviceErr
	}

	errStr := strings.ToLower(err.Error())

	// Check for timeout/cancellation (context errors)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return newAdviceError(domainerror.ErrCodeAdviceTimeout, true, err)
	}

	// Check for rate limiting
	if strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") || strings.Contains(errStr, "resource exhausted") {
		return newAdviceError(domainerror.ErrCodeAdviceRateLimited, true, err)
	}

	// Check for authentication errors
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "invalid api key") || strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "authentication") || strings.Contains(errStr, "permission denied") {
		return newAdviceError(domainerror.ErrCodeAdviceAuthError, false, err)
	}

	// Check for network/connection errors
	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "dial") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "unavailable") || strings.Contains(errStr, "503") {
		return newAdviceError(domainerror.ErrCodeAdviceUnavailable, true, err)
	}

	// Check for empty or unreadable responses
	if errors.Is(err, domainerror.ErrEmptyAdvice) || strings.Contains(errStr, "parse") ||
		strings.Contains(errStr, "unmarshal") || strings.Contains(errStr, "decode") {
		return newAdviceError(domainerror.ErrCodeAdviceParseError, true, err)
	}

	return newAdviceError(domainerror.ErrCodeAdviceUnknownError, true, err)
}
