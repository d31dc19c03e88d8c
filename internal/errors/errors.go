package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingField is returned when a required input field is absent or blank.
	ErrMissingField = errors.New("missing required field")
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials is returned on login failure. Unknown username and
	// wrong password produce the same error so usernames cannot be enumerated.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized is returned when no valid session accompanies the request.
	ErrUnauthorized = errors.New("authentication required")
	// ErrNotOwner is returned when a caller mutates an item they do not own.
	ErrNotOwner = errors.New("item belongs to another user")
	// ErrInvalidID is returned when an id path parameter is not an integer.
	ErrInvalidID = errors.New("id must be an integer")
	// ErrInvalidQuantity is returned when a quantity is not a non-negative integer.
	ErrInvalidQuantity = errors.New("quantity must be a non-negative integer")
	// ErrNoFields is returned when an update supplies nothing to change.
	ErrNoFields = errors.New("must provide at least one field to update")
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unrecognized errors become
// opaque 500s; store internals never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrMissingField):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELD")
	case errors.Is(err, ErrDuplicateUsername):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_USERNAME")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_OWNER")
	case errors.Is(err, ErrInvalidID):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ID")
	case errors.Is(err, ErrInvalidQuantity):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_QUANTITY")
	case errors.Is(err, ErrNoFields):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_FIELDS_PROVIDED")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
