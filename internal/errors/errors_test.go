package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("q: %w", ErrValidation), http.StatusBadRequest},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"transport", Transportf("status %d", 500), http.StatusBadGateway},
		{"data", Dataf("missing meals"), http.StatusBadGateway},
		{"app error wins", New(ErrData, http.StatusTeapot, "x"), http.StatusTeapot},
		{"unknown", context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusCode(tt.err))
		})
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "none", Kind(nil))
	assert.Equal(t, "transport", Kind(Transportf("dial tcp: refused")))
	assert.Equal(t, "data", Kind(fmt.Errorf("lookup 52772: %w", Dataf("bad json"))))
	assert.Equal(t, "validation", Kind(Newf(ErrValidation, 400, "field %s", "q")))
	assert.Equal(t, "internal", Kind(context.DeadlineExceeded))
}

func TestAppErrorUnwrap(t *testing.T) {
	err := New(ErrNotFound, http.StatusNotFound, "recipe 1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "not found: recipe 1", err.Error())
}
