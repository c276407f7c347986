package error

import "errors"

// Advice domain errors.
var (
	// ErrAdvisorNotConfigured is returned when no advice provider is configured.
	ErrAdvisorNotConfigured = errors.New("advice provider is not configured")

	// ErrEmptyAdvice is returned when the provider responds without any text.
	ErrEmptyAdvice = errors.New("advice provider returned an empty response")
)

// AdviceErrorCode defines error codes for advice provider failures.
// Format: ADV-04YYYY.
type AdviceErrorCode string

const (
	ErrCodeAdviceUnavailable   AdviceErrorCode = "ADV-040001"
	ErrCodeAdviceRateLimited   AdviceErrorCode = "ADV-040002"
	ErrCodeAdviceAuthError     AdviceErrorCode = "ADV-040003"
	ErrCodeAdviceTimeout       AdviceErrorCode = "ADV-040004"
	ErrCodeAdviceParseError    AdviceErrorCode = "ADV-040005"
	ErrCodeAdviceUnknownError  AdviceErrorCode = "ADV-040006"
	ErrCodeAdviceNotConfigured AdviceErrorCode = "ADV-040007"
)

// AdviceError represents a failure of the external advice provider.
type AdviceError struct {
	Code      AdviceErrorCode
	Message   string
	Retryable bool
	Err       error
}

// Error implements the error interface.
func (e *AdviceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error together with ErrProvider.
func (e *AdviceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrProvider}
	}
	return []error{e.Err, ErrProvider}
}

// NewAdviceError creates a new AdviceError.
func NewAdviceError(code AdviceErrorCode, message string, retryable bool, err error) *AdviceError {
	return &AdviceError{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Err:       err,
	}
}
