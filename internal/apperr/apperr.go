// Package apperr defines the application error taxonomy and the helpers that
// translate errors into JSON responses. Every response body carries a
// success flag; failures add a human-readable message and, where safe, a
// details field enumerating causes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	// ErrNotFound signals that a user or recipe does not exist or is inactive.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized signals a missing or unidentifiable caller.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden signals an identified caller acting on a resource it does not own.
	ErrForbidden = errors.New("access denied")
	// ErrPayloadTooLarge signals an image payload over the allowed ceiling.
	ErrPayloadTooLarge = errors.New("payload too large")
)

// ValidationError collects every violated field of a request. Validation is
// exhaustive rather than fail-fast so the caller gets complete feedback in
// one round trip.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation errors: " + strings.Join(e.Fields, "; ")
}

// WriteFailedError wraps the cause of an aborted write transaction. By the
// time it is returned the transaction has been rolled back.
type WriteFailedError struct {
	Err error
}

func (e *WriteFailedError) Error() string {
	return fmt.Sprintf("write failed: %v", e.Err)
}

func (e *WriteFailedError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports required configuration missing at startup. It is
// fatal: the process must not serve traffic without it.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// Fail writes a failure response with the given status and message.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// FailWithDetails writes a failure response carrying a details field.
func FailWithDetails(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, gin.H{"success": false, "message": message, "details": details})
}

// Respond maps an error from the service layer onto the HTTP surface.
func Respond(c *gin.Context, err error) {
	var validation *ValidationError
	var writeFailed *WriteFailedError

	switch {
	case errors.As(err, &validation):
		FailWithDetails(c, http.StatusBadRequest, "Validation errors", validation.Fields)
	case errors.Is(err, ErrNotFound):
		Fail(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, ErrUnauthorized):
		Fail(c, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, ErrForbidden):
		Fail(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, ErrPayloadTooLarge):
		Fail(c, http.StatusBadRequest, "Image exceeds the maximum allowed size")
	case errors.As(err, &writeFailed):
		FailWithDetails(c, http.StatusInternalServerError, "Error writing recipe", writeFailed.Err.Error())
	default:
		Fail(c, http.StatusInternalServerError, "Internal server error")
	}
}
