package domain

// APIError represents a standardized API error with HTTP status code
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// ErrorResponse is the simple error body used by handlers
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Common error types for problem responses
const (
	ErrorTypeValidation   = "validation_error"
	ErrorTypeNotFound     = "not_found"
	ErrorTypeBadRequest   = "bad_request"
	ErrorTypeConflict     = "conflict"
	ErrorTypeUnauthorized = "unauthorized"
	ErrorTypeForbidden    = "forbidden"
	ErrorTypeUpstream     = "upstream_error"
	ErrorTypeExport       = "export_error"
	ErrorTypeInternal     = "internal_error"
)

// ValidationMessages maps validator tags to user-friendly messages
var ValidationMessages = map[string]string{
	"required":    "This field is required",
	"required_if": "This field is required",
	"email":       "Must be a valid email address",
	"min":         "Below minimum length",
	"max":         "Exceeds maximum length",
	"gte":         "Must be greater than or equal to minimum value",
	"gt":          "Must be greater than minimum value",
	"lte":         "Must be less than or equal to maximum value",
	"oneof":       "Must be one of the allowed values",
	"dive":        "Invalid list entry",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}
