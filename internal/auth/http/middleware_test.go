package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authDomain "github.com/devdox-ai/devdox-api/internal/auth/domain"
	"github.com/devdox-ai/devdox-api/internal/auth/http/mocks"
)

func newTestRouter(verifier *mocks.MockTokenVerifier, testBypass bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(AuthenticationMiddleware(verifier, testBypass, logger))
	router.GET("/protected", func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, user.ID)
	})
	return router
}

func serve(router *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticationMiddleware(t *testing.T) {
	t.Run("Success_ValidToken", func(t *testing.T) {
		verifier := &mocks.MockTokenVerifier{}
		verifier.On("Verify", "good-token").Return(&authDomain.User{ID: "user_123"}, nil)

		w := serve(newTestRouter(verifier, false), map[string]string{"Authorization": "Bearer good-token"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user_123", w.Body.String())
		verifier.AssertExpectations(t)
	})

	t.Run("Success_CaseInsensitiveScheme", func(t *testing.T) {
		verifier := &mocks.MockTokenVerifier{}
		verifier.On("Verify", "good-token").Return(&authDomain.User{ID: "user_123"}, nil)

		w := serve(newTestRouter(verifier, false), map[string]string{"Authorization": "bEaReR good-token"})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_MissingHeader", func(t *testing.T) {
		verifier := &mocks.MockTokenVerifier{}

		w := serve(newTestRouter(verifier, false), nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"status":"error","code":"unauthorized","message":"Authentication is required"}`, w.Body.String())
		verifier.AssertNotCalled(t, "Verify", "")
	})

	t.Run("Error_MalformedHeader", func(t *testing.T) {
		verifier := &mocks.MockTokenVerifier{}

		for _, header := range []string{"Basic dXNlcjpwYXNz", "Bearer", "Bearer    "} {
			w := serve(newTestRouter(verifier, false), map[string]string{"Authorization": header})
			assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		}
	})

	t.Run("Error_InvalidToken", func(t *testing.T) {
		verifier := &mocks.MockTokenVerifier{}
		verifier.On("Verify", "bad-token").Return(nil, authDomain.ErrInvalidToken)

		w := serve(newTestRouter(verifier, false), map[string]string{"Authorization": "Bearer bad-token"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Success_TestBypass", func(t *testing.T) {
		verifier := &mocks.MockTokenVerifier{}

		w := serve(newTestRouter(verifier, true), map[string]string{TestAuthHeader: "true"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, authDomain.TestUserID, w.Body.String())
	})

	t.Run("Error_TestBypassDisabled", func(t *testing.T) {
		verifier := &mocks.MockTokenVerifier{}

		w := serve(newTestRouter(verifier, false), map[string]string{TestAuthHeader: "true"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetUser_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	user, ok := GetUser(req.Context())
	assert.False(t, ok)
	assert.Nil(t, user)
}
