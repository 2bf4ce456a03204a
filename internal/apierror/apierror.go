// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// The explicit success flag lets storefront clients branch on the payload
// without re-checking the status code.
type APIError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Success: false, Error: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Success: false, Error: "Error de validacion", Fields: fields}
}
