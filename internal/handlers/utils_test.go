package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iconluxury/bucketd/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRespondError_KindMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid argument",
			err:        &services.BrowserError{Kind: services.KindInvalidArgument, Message: "page and pageSize must be >= 1"},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"page and pageSize must be >= 1"}`,
		},
		{
			name:       "not found",
			err:        &services.BrowserError{Kind: services.KindNotFound, Message: "object not found"},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"object not found"}`,
		},
		{
			name:       "permission denied",
			err:        &services.BrowserError{Kind: services.KindPermissionDenied, Message: "access denied"},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"access denied"}`,
		},
		{
			name:       "store",
			err:        &services.BrowserError{Kind: services.KindStore, Message: "store error during list: SlowDown"},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"store error during list: SlowDown"}`,
		},
		{
			name:       "internal",
			err:        &services.BrowserError{Kind: services.KindInternal, Message: "internal error during list"},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal error during list"}`,
		},
		{
			name:       "unclassified",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := respondError(c, tt.err)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestRespondError_WrappedBrowserError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// errors.As must unwrap down to the BrowserError.
	inner := &services.BrowserError{Kind: services.KindNotFound, Message: "bucket not found"}
	err := respondError(c, fmt.Errorf("list failed: %w", inner))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
