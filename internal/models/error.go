package models

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes
const (
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeInvalidSpec      = "INVALID_SPEC"
	ErrCodeInvalidRecipient = "INVALID_RECIPIENT_ADDRESS"
	ErrCodeInvalidAccount   = "INVALID_ACCOUNT"
	ErrCodeInvalidAmount    = "INVALID_AMOUNT"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeBuildFailed      = "TRANSACTION_BUILD_FAILED"
	ErrCodeStorageFailure   = "STORAGE_FAILURE"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)
