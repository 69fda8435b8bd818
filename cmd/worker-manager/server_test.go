package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workerList() []string { return []string{"generate-user-story", "render-user-story"} }

func TestServeMux_Health(t *testing.T) {
	mux := newServeMux(func(context.Context) error { return nil }, workerList)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"healthy"`)
}

func TestServeMux_Ready(t *testing.T) {
	tests := []struct {
		name       string
		readyErr   error
		wantStatus int
		wantBody   string
	}{
		{"gateway up", nil, http.StatusOK, "ready"},
		{"gateway down", fmt.Errorf("zeebe health check failed"), http.StatusServiceUnavailable, "not ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newServeMux(func(context.Context) error { return tt.readyErr }, workerList)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body["status"])
		})
	}
}

func TestServeMux_Metrics(t *testing.T) {
	mux := newServeMux(func(context.Context) error { return nil }, workerList)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
