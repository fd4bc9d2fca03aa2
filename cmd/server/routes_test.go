package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/broadcast"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/config"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/metrics"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.FromEnv(func(string) string { return "" })
	require.NoError(t, err)
	store, err := newStore(cfg)
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	l := newLimits()
	t.Cleanup(l.stop)

	return newRouter(routerDeps{
		cfg:       cfg,
		store:     store,
		metrics:   metrics.NewCollector(registry),
		registry:  registry,
		hub:       broadcast.NewHub(nil, nil),
		templates: loadTemplates(),
		limits:    l,
	})
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicPages(t *testing.T) {
	r := testRouter(t)

	assert.Equal(t, http.StatusOK, get(r, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/public/prayer-times/next", "").Code)

	w := get(r, "/athan", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Baitul Aman Masjid")
	assert.Contains(t, w.Body.String(), "Dhaka")
	assert.Contains(t, w.Body.String(), "05:15 AM")
	assert.Contains(t, w.Body.String(), "/api/public/countdown/ws")

	w = get(r, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "baitulaman_http_requests_total")
}

func TestRouter_AdminLoginFlow(t *testing.T) {
	r := testRouter(t)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/admin/prayer-times", "").Code)

	body, _ := json.Marshal(gin.H{"password": "admin123"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, http.StatusOK, get(r, "/api/admin/prayer-times", login.Token).Code)

	// no aladhan client configured
	req = httptest.NewRequest(http.MethodPost, "/api/admin/prayer-times/sync", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
