package gateway

import (
	"errors"
	"fmt"
)

// Provider failure taxonomy. Raw provider responses never cross this
// boundary; they are translated into one of these before returning.
var (
	ErrProviderUnconfigured = errors.New("verify service is not configured")
	ErrNotFound             = errors.New("verification not found")
	ErrRecipientUnverified  = errors.New("recipient is not verified with the provider")
	ErrInvalidFormat        = errors.New("provider rejected the parameter format")
	ErrCodeInvalid          = errors.New("verification code invalid")
	ErrCodeExpired          = errors.New("verification expired or not found")
)

// ProviderError wraps any other provider failure with a human-readable
// message and the provider's status/error codes.
type ProviderError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
}
