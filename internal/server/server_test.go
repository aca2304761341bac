package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelc4/vidgrab-bot/internal/stats"
)

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestHealthz(t *testing.T) {
	code, body := get(t, Router(prometheus.NewRegistry()), "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)
}

func TestMetricsExposeRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := stats.NewRecorder(reg)
	rec.RecordDownload("video", stats.OutcomeOK, 2048)

	code, body := get(t, Router(reg), "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `vidgrab_downloads_total{kind="video",outcome="ok"} 1`)
	assert.Contains(t, body, "vidgrab_uploaded_bytes_total 2048")
}

func TestUnknownRoute(t *testing.T) {
	code, _ := get(t, Router(prometheus.NewRegistry()), "/nope")
	assert.Equal(t, http.StatusNotFound, code)
}
