package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devdox-ai/devdox-api/internal/version"
)

func setupRouter(authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	public := router.Group("/api")
	private := router.Group("/api")
	private.Use(func(c *gin.Context) {
		if !authenticated {
			c.AbortWithStatus(http.StatusUnauthorized)
		}
	})
	NewVersionHandler(version.NewReporter("1.0.0", "test")).RegisterRoutes(public, private)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestVersionHandler_Summary(t *testing.T) {
	w := get(setupRouter(false), "/api/version")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","data":{"version":"1.0.0"}}`, w.Body.String())
}

func TestVersionHandler_Details(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		w := get(setupRouter(true), "/api/version/details")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Status string          `json:"status"`
			Data   version.Details `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "success", body.Status)
		assert.Equal(t, "1.0.0", body.Data.Version)
		assert.Equal(t, "test", body.Data.Environment)
		assert.NotEmpty(t, body.Data.RuntimeVersion)
		assert.NotEmpty(t, body.Data.Timestamp)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := get(setupRouter(false), "/api/version/details")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
