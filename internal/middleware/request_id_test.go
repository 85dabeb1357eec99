package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ap0309/leave-management-app/internal/middleware"
	"github.com/ap0309/leave-management-app/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success propagates the incoming id and a scoped logger", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		restore := zap.ReplaceGlobals(zap.New(core))
		defer restore()

		router := gin.New()
		router.Use(middleware.RequestID())

		var seenRID string
		router.GET("/ping", func(c *gin.Context) {
			ctx := c.Request.Context()
			seenRID = contextutil.GetRequestID(ctx)
			contextutil.GetLogger(ctx, nil).Info("handled ping")
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "REQ-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "REQ-1", seenRID)
		assert.Equal(t, "REQ-1", w.Header().Get("X-Request-ID"))

		entries := logs.FilterMessage("handled ping").All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "REQ-1", entries[0].ContextMap()["request_id"])
		}
	})

	t.Run("success generates an id when the header is missing", func(t *testing.T) {
		router := gin.New()
		router.Use(middleware.RequestID())

		var seenRID string
		router.GET("/ping", func(c *gin.Context) {
			seenRID = contextutil.GetRequestID(c.Request.Context())
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, seenRID)
		assert.Equal(t, seenRID, w.Header().Get("X-Request-ID"))
	})
}
