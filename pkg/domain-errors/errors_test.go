package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAndCodeOf(t *testing.T) {
	base := errors.New("boom")
	wrapped := fmt.Errorf("outer: %w", Wrap(base, CodeBadRequest, "invalid request body"))

	assert.True(t, Is(wrapped, CodeBadRequest))
	assert.False(t, Is(wrapped, CodeInternal))
	assert.Equal(t, CodeBadRequest, CodeOf(wrapped))
	assert.Equal(t, CodeInternal, CodeOf(base))
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, "invalid request body: boom", Wrap(base, CodeBadRequest, "invalid request body").Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:  http.StatusBadRequest,
		CodeNotFound:    http.StatusNotFound,
		CodeTooLarge:    http.StatusRequestEntityTooLarge,
		CodeUnsupported: http.StatusUnsupportedMediaType,
		CodeTimeout:     http.StatusGatewayTimeout,
		CodeInternal:    http.StatusInternalServerError,
		Code("unknown"): http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %s", code)
	}
}
