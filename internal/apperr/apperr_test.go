package apperr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func respondWith(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, err)
	return w
}

func TestRespond_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation errors carry details",
			err:        &ValidationError{Fields: []string{"title is required"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "title is required",
		},
		{
			name:       "not found",
			err:        ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "Resource not found",
		},
		{
			name:       "write failure",
			err:        &WriteFailedError{Err: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Error writing recipe",
		},
		{
			name:       "unauthorized",
			err:        ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Authentication required",
		},
		{
			name:       "forbidden",
			err:        ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantBody:   "Access denied",
		},
		{
			name:       "payload too large is a client error",
			err:        ErrPayloadTooLarge,
			wantStatus: http.StatusBadRequest,
			wantBody:   "maximum allowed size",
		},
		{
			name:       "unknown errors are opaque",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := respondWith(tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRespond_UnknownErrorHidesCause(t *testing.T) {
	w := respondWith(errors.New("pq: connection refused"))
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []string{"title is required", "prepTime must be greater than 0"}}
	assert.Equal(t, "validation errors: title is required; prepTime must be greater than 0", err.Error())
}

func TestWriteFailedError_Unwrap(t *testing.T) {
	cause := errors.New("insert failed")
	err := &WriteFailedError{Err: cause}
	assert.ErrorIs(t, err, cause)
}

func TestConfigurationError_ListsAllMissing(t *testing.T) {
	err := &ConfigurationError{Missing: []string{"DB_HOST", "JWT_SECRET"}}
	assert.Equal(t, "missing required configuration: DB_HOST, JWT_SECRET", err.Error())
}
