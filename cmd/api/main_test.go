package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/damoang/rokn-storefront/internal/config"
	"github.com/damoang/rokn-storefront/internal/database"
	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Database.DSN = ":memory:"

	db, err := database.Open(cfg.Database, gormlogger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	mgr := plugin.NewManager(db, nil, plugin.NewNopLogger())
	require.NoError(t, mgr.RegisterBuiltIn(storefront.New(storefront.Options{
		Storefront: cfg.Storefront,
		Advisor:    cfg.Advisor,
	})))
	require.NoError(t, mgr.EnableAll(apiBasePath))
	t.Cleanup(func() { _ = mgr.ShutdownAll() })

	return newRouter(cfg, mgr)
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status  string                `json:"status"`
		Plugins []plugin.PluginHealth `json:"plugins"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	require.Len(t, body.Plugins, 1)
	assert.Equal(t, "storefront", body.Plugins[0].Name)
	assert.Equal(t, "healthy", body.Plugins[0].Status)
}

func TestRouter_StorefrontRoutesAndSession(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/storefront/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Session-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestRouter_MetricsAndNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"https://a.sa", "https://b.sa"}, splitAndTrim(" https://a.sa , https://b.sa ,", ","))
	assert.Empty(t, splitAndTrim("", ","))
}
