package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rgdevment/scam-scanner/internal/platform/http/middleware"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func TestAPIKeyAuth(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	h := middleware.APIKeyAuth("master", zap.New(core))(ok)

	cases := []struct {
		Key    string
		Status int
	}{
		{"", http.StatusUnauthorized},
		{"mast", http.StatusUnauthorized},
		{"master", http.StatusTeapot},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/v1/scam-numbers", nil)
		if tc.Key != "" {
			req.Header.Set("X-API-Key", tc.Key)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tc.Status, rec.Code, tc.Key)
	}

	assert.Equal(t, 2, logs.Len())
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := middleware.RequestLogger(zap.New(core))(ok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/calls", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "http request", entry.Message)
	assert.Equal(t, "/v1/calls", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
}
