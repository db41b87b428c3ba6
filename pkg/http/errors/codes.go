package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeMissingField   = "missing_field"
	ErrCodeInvalidID      = "invalid_id"
	ErrCodeTooLarge       = "payload_too_large"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// Ingest errors
	ErrCodeProcessingFailed = "processing_failed"

	// Server errors
	ErrCodeInternalError    = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeNotImplemented   = "not_implemented"
	ErrCodeUpstreamError    = "upstream_error"
)
