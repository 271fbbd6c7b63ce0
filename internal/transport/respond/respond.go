// Package respond writes JSON responses and the shared error envelope used by
// handlers and middleware.
package respond

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// Error codes that are not denial reasons.
const (
	CodeValidation       = "VALIDATION_FAILED"
	CodeBadRequest       = "BAD_REQUEST"
	CodeTokenExpired     = "TOKEN_EXPIRED"
	CodeTokenInvalid     = "TOKEN_INVALID"
	CodeInvalidLogin     = "INVALID_CREDENTIALS"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL"
	CodeUnavailable      = "UNAVAILABLE"
	CodeNotAuthenticated = string(domain.ReasonNotAuthenticated)
)

// ErrorBody is the envelope of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError is a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Error writes the error envelope.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: message}})
}

// Validation writes a 400 listing every invalid field.
func Validation(w http.ResponseWriter, ve *domain.ValidationError) {
	fields := make([]FieldError, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields = append(fields, FieldError{Field: fe.Field, Message: fe.Message})
	}
	JSON(w, http.StatusBadRequest, ErrorBody{Error: ErrorDetail{
		Code:    CodeValidation,
		Message: "validation failed",
		Fields:  fields,
	}})
}

// RateLimited writes a 429 with a Retry-After header.
func RateLimited(w http.ResponseWriter, retryAfterSeconds int) {
	if retryAfterSeconds < 1 {
		retryAfterSeconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	Error(w, http.StatusTooManyRequests, CodeRateLimited, "too many requests")
}
