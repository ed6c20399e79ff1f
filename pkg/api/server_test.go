package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smbtab/smbtab/pkg/builder"
	"github.com/smbtab/smbtab/pkg/config"
	"github.com/smbtab/smbtab/pkg/probe"
	"github.com/smbtab/smbtab/pkg/store"
)

var (
	metricsOnce sync.Once
	testMetrics *Metrics
)

// sharedMetrics returns a process-wide Metrics: promauto registers into
// the default registry, so a second NewMetrics would panic.
func sharedMetrics() *Metrics {
	metricsOnce.Do(func() {
		testMetrics = NewMetrics()
	})
	return testMetrics
}

func testServer(t *testing.T, cfg ServerConfig) *Server {
	t.Helper()

	st := store.NewMemStore()
	b := builder.New(st, probe.NewFixed(), config.DefaultConfig(), zap.NewNop())
	require.NoError(t, b.Run(context.Background()))

	return NewServer(st, cfg, sharedMetrics(), zap.NewNop())
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t, ServerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestTableEndpointServesRawBlob(t *testing.T) {
	srv := testServer(t, ServerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/table", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))

	blob := rec.Body.Bytes()
	require.NotEmpty(t, blob)
	assert.Equal(t, uint8(0), blob[0], "table starts with the firmware record")
}

func TestListRecords(t *testing.T) {
	srv := testServer(t, ServerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    []RecordView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data)
	assert.Equal(t, uint8(0), resp.Data[0].Type)
	assert.Equal(t, uint16(1), resp.Data[0].Handle)
}

func TestGetRecordByHandle(t *testing.T) {
	srv := testServer(t, ServerConfig{})
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/records/0x0001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/records/0x9999", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/records/bogus", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	srv := testServer(t, ServerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool       `json:"success"`
		Data    TableStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	assert.Equal(t, 14, resp.Data.Records)
	assert.Greater(t, resp.Data.Bytes, 0)
}

func TestAPIKeyRequired(t *testing.T) {
	srv := testServer(t, ServerConfig{APIKey: "secret"})
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Scrape endpoint stays open.
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
