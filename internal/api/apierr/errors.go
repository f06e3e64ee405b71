package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/batepapo/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNameTaken        = "NAME_TAKEN"
	CodeNotRegistered    = "NOT_REGISTERED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError. When messages is
// set the body is the bare array of messages instead of the envelope.
type httpError struct {
	status   int
	apiError APIError
	messages []string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	if he.messages != nil {
		_ = json.NewEncoder(w).Encode(he.messages)
		return
	}
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return &httpError{
			status:   http.StatusUnprocessableEntity,
			apiError: APIError{Code: CodeValidationFailed, Message: ve.Error()},
			messages: append([]string{}, ve.Messages...),
		}
	}

	// Store failures carry the underlying driver message
	var se *model.StoreError
	if errors.As(err, &se) {
		return &httpError{status: http.StatusInternalServerError, apiError: APIError{Code: CodeInternalError, Message: se.Err.Error()}}
	}

	switch {
	case errors.Is(err, model.ErrNameTaken):
		return &httpError{status: http.StatusConflict, apiError: APIError{Code: CodeNameTaken, Message: model.ErrNameTaken.Error()}}
	case errors.Is(err, model.ErrNotRegistered):
		return &httpError{
			status:   http.StatusUnprocessableEntity,
			apiError: APIError{Code: CodeNotRegistered, Message: model.ErrNotRegistered.Error()},
			messages: []string{model.ErrNotRegistered.Error()},
		}
	default:
		return &httpError{status: http.StatusInternalServerError, apiError: APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{status: http.StatusBadRequest, apiError: APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{status: http.StatusInternalServerError, apiError: APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
