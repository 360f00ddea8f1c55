package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	assert.Equal(t, "SESSION_NOT_FOUND: Session not found or expired", ErrSessionNotFound.Error())
	assert.Equal(t, http.StatusBadGateway, ErrUpstreamUnavailable.StatusCode)

	detailed := ErrInvalidRequest.WithDetails(map[string]interface{}{"field": "lat"})
	assert.Equal(t, "lat", detailed.Details["field"])
	assert.Nil(t, ErrInvalidRequest.Details, "sentinel must not be mutated")

	wrapped := fmt.Errorf("update markers: %w", detailed)
	assert.True(t, stderrors.Is(wrapped, ErrInvalidRequest))
	assert.False(t, stderrors.Is(wrapped, ErrStaleRefresh))

	var appErr *AppError
	assert.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
}
