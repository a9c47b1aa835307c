package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Logger())
	router.POST("/overlay-text", handler)
	return router
}

func TestLoggerRecordsAssetAndRequestID(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	router := newLoggedRouter(func(c *gin.Context) {
		c.Set(AssetIDKey, "cat_abc123")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/overlay-text", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "cat_abc123", entry.Data["asset_id"])
	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestLoggerGeneratesRequestIDAndFlagsFailures(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	router := newLoggedRouter(func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/overlay-text", nil))

	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.NotContains(t, entry.Data, "asset_id")
	assert.Equal(t, w.Header().Get(RequestIDHeader), entry.Data["request_id"])
}
