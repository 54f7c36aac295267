// Package domainerrors defines the coded errors services return and the
// mapping from codes to HTTP statuses. Handlers never invent status codes;
// they translate whatever the service returned through ToHTTPStatus.
package domainerrors

import "net/http"

// Code identifies an error class. The string value is what clients see in the
// "error" field of a JSON error envelope.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeDuplicateID  Code = "duplicate_id"
	CodeInternal     Code = "internal_error"
)

// Error is a coded domain error. Details carries per-field validation
// messages when the code is CodeBadRequest; it is nil otherwise.
type Error struct {
	Code    Code
	Message string
	Details []string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// New builds a coded error with a single human-readable message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Validation builds a CodeBadRequest error carrying the full list of field
// messages. No partial submission is accepted: either every field passes or
// the caller gets the complete list back.
func Validation(messages []string) *Error {
	msg := "validation failed"
	if len(messages) > 0 {
		msg = messages[0]
	}
	return &Error{Code: CodeBadRequest, Message: msg, Details: messages}
}

// ToHTTPStatus maps an error code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicateID:
		return http.StatusConflict
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
