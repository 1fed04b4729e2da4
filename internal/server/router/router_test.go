package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/retailsheet/internal/config"
	"github.com/mamadbah2/retailsheet/internal/metrics"
	"github.com/mamadbah2/retailsheet/internal/repository/sqlite"
	"github.com/mamadbah2/retailsheet/internal/server/handlers"
	"github.com/mamadbah2/retailsheet/internal/service/dataset"
	"github.com/mamadbah2/retailsheet/internal/service/session"
)

func newEngine(t *testing.T, origins []string) http.Handler {
	t.Helper()
	store, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	registry := dataset.NewDefaultRegistry(store, dataset.Options{})
	return New(
		config.ServerConfig{Port: "8080", AllowedOrigins: origins},
		handlers.NewDatasetHandler(registry, session.NewManager(), nil),
		handlers.NewHealthHandler(registry, nil),
		metrics.New(),
		nil,
	)
}

func TestRoutes(t *testing.T) {
	engine := newEngine(t, []string{"*"})

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/api/stock/records", http.StatusOK},
		{http.MethodGet, "/api/personnel/summary", http.StatusOK},
		{http.MethodGet, "/api/unknown/records", http.StatusNotFound},
		{http.MethodPost, "/api/sales/export", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.want, w.Code, tt.path)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `retailsheet_http_requests_total{method="GET",path="/healthz",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	engine := newEngine(t, []string{"https://shop.example.com"})

	req := httptest.NewRequest(http.MethodOptions, "/api/stock/records", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", handlers.SessionHeader)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
