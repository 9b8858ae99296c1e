package service

import "fmt"

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeInvalidPhoneNumber  = "invalid_phone_number"
	ErrCodeInvalidAmount       = "invalid_amount"
	ErrCodeInvalidRequest      = "invalid_request"
	ErrCodeUpstreamRejected    = "upstream_rejected"
	ErrCodeUpstreamMalformed   = "upstream_malformed"
	ErrCodeUpstreamUnavailable = "upstream_unavailable"
	ErrCodeInternalError       = "internal_error"
)

// Caller-facing messages for errors whose cause must not leak.
const (
	MessageUpstreamMalformed   = "Invalid response from payment service"
	MessageUpstreamUnavailable = "Payment service unavailable"
)
