package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{ErrMissingField, http.StatusBadRequest, "MISSING_FIELD"},
		{ErrDuplicateUsername, http.StatusBadRequest, "DUPLICATE_USERNAME"},
		{ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS"},
		{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{ErrNotOwner, http.StatusForbidden, "NOT_OWNER"},
		{ErrInvalidID, http.StatusBadRequest, "INVALID_ID"},
		{ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY"},
		{ErrNoFields, http.StatusBadRequest, "NO_FIELDS_PROVIDED"},
		{ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{errors.New("mysql has fallen over"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("update item: %w", ErrNotOwner)
	httpErr := MapErrorToHTTP(wrapped)
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.Equal(t, "NOT_OWNER", httpErr.Code)
}

func TestInternalErrorHidesDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp 10.0.0.3:3306: connection refused"))
	assert.Equal(t, "internal server error", httpErr.Message)
	assert.NotContains(t, httpErr.Message, "3306")
}
