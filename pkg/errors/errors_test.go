package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "VALIDATION: Missing required field: name", NewValidationError("Missing required field: name").Error())
	assert.Equal(t, "PERSISTENCE: append failed: unexpected EOF", NewPersistenceError("append failed", io.ErrUnexpectedEOF).Error())
}

func TestTypeOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewPersistenceError("append failed", io.ErrShortWrite))

	assert.Equal(t, ErrorTypePersistence, TypeOf(err))
	assert.True(t, Is(err, ErrorTypePersistence))
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, ErrorTypeInternal, TypeOf(io.EOF))
	assert.False(t, Is(nil, ErrorTypeInternal))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidationError("x")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(NewUnauthorizedError("x")))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(NewRateLimitedError("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(NewPersistenceError("x", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(io.EOF))
}
