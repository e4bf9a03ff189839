package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/devdox-ai/devdox-api/internal/auth/domain"
	authHTTP "github.com/devdox-ai/devdox-api/internal/auth/http"
	cryptoDomain "github.com/devdox-ai/devdox-api/internal/crypto/domain"
	apperrors "github.com/devdox-ai/devdox-api/internal/errors"
	gitTokenDomain "github.com/devdox-ai/devdox-api/internal/gittoken/domain"
	"github.com/devdox-ai/devdox-api/internal/gittoken/usecase/mocks"
)

const testUserID = "user-1"

type envelope struct {
	Status  string            `json:"status"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
	Data    json.RawMessage   `json:"data"`
}

func setupRouter(useCase *mocks.MockGitTokenUseCase, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	group := router.Group("/api")
	if authenticated {
		group.Use(func(c *gin.Context) {
			user := &authDomain.User{ID: testUserID}
			c.Request = c.Request.WithContext(authHTTP.WithUser(c.Request.Context(), user))
		})
	}
	NewGitTokenHandler(useCase, logger).RegisterRoutes(group)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func newToken() *gitTokenDomain.GitToken {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &gitTokenDomain.GitToken{
		ID:           uuid.Must(uuid.NewV7()),
		UserID:       testUserID,
		Label:        "work",
		ProviderType: gitTokenDomain.ProviderGitHub,
		ProviderURL:  "https://github.com",
		Envelope:     cryptoDomain.Envelope{IV: "aXY=", Ciphertext: "Y3Q=.dGFn"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestGitTokenHandler_Unauthenticated(t *testing.T) {
	useCase := &mocks.MockGitTokenUseCase{}
	router := setupRouter(useCase, false)

	w, env := doRequest(router, http.MethodGet, "/api/git-tokens", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "error", env.Status)
	useCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGitTokenHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}
		token := newToken()
		useCase.On("List", mock.Anything, testUserID, 5, 10).
			Return([]*gitTokenDomain.GitToken{token}, nil).
			Once()

		w, env := doRequest(setupRouter(useCase, true), http.MethodGet, "/api/git-tokens?offset=5&limit=10", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", env.Status)

		var page struct {
			Items []map[string]any `json:"items"`
			Limit int              `json:"limit"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &page))
		require.Len(t, page.Items, 1)
		assert.Equal(t, token.ID.String(), page.Items[0]["id"])
		assert.NotContains(t, page.Items[0], "token_value")
		assert.Equal(t, 10, page.Limit)
		useCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}

		w, env := doRequest(setupRouter(useCase, true), http.MethodGet, "/api/git-tokens?limit=1000", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_input", env.Code)
		useCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGitTokenHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}
		token := newToken()
		useCase.On("Create", mock.Anything, &gitTokenDomain.CreateGitTokenInput{
			UserID:       testUserID,
			Label:        "work",
			ProviderType: gitTokenDomain.ProviderGitHub,
			TokenValue:   "ghp_abc123XYZ",
		}).Return(token, nil).Once()

		body := `{"label":"work","provider_type":"github","token_value":"ghp_abc123XYZ"}`
		w, env := doRequest(setupRouter(useCase, true), http.MethodPost, "/api/git-tokens", body)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "ghp_abc123XYZ")

		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, token.ID.String(), data["id"])
		useCase.AssertExpectations(t)
	})

	t.Run("Error_ValidationDetails", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}

		body := `{"label":"","provider_type":"svn","token_value":"has space"}`
		w, env := doRequest(setupRouter(useCase, true), http.MethodPost, "/api/git-tokens", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_error", env.Code)
		assert.Contains(t, env.Details, "label")
		assert.Contains(t, env.Details, "provider_type")
		assert.Contains(t, env.Details, "token_value")
		useCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}

		w, env := doRequest(setupRouter(useCase, true), http.MethodPost, "/api/git-tokens", `{"label":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", env.Code)
	})

	t.Run("Error_Conflict", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}
		useCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrConflict, "a git token with this label already exists")).
			Once()

		body := `{"label":"work","provider_type":"github","token_value":"ghp_abc"}`
		w, _ := doRequest(setupRouter(useCase, true), http.MethodPost, "/api/git-tokens", body)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestGitTokenHandler_Get(t *testing.T) {
	t.Run("Success_IncludesValue", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}
		token := newToken()
		token.Plaintext = "ghp_abc123XYZ"
		useCase.On("Get", mock.Anything, token.ID, testUserID).Return(token, nil).Once()

		w, env := doRequest(setupRouter(useCase, true), http.MethodGet, "/api/git-tokens/"+token.ID.String(), "")

		require.Equal(t, http.StatusOK, w.Code)
		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "ghp_abc123XYZ", data["token_value"])
		assert.NotContains(t, data, "iv")
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}

		w, _ := doRequest(setupRouter(useCase, true), http.MethodGet, "/api/git-tokens/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		useCase.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}
		id := uuid.Must(uuid.NewV7())
		useCase.On("Get", mock.Anything, id, testUserID).Return(nil, gitTokenDomain.ErrGitTokenNotFound).Once()

		w, env := doRequest(setupRouter(useCase, true), http.MethodGet, "/api/git-tokens/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", env.Code)
	})

	t.Run("Error_DecryptionHidesCause", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}
		id := uuid.Must(uuid.NewV7())
		cause := fmt.Errorf("%w: %w", gitTokenDomain.ErrTokenDecryption, cryptoDomain.ErrAuthentication)
		useCase.On("Get", mock.Anything, id, testUserID).Return(nil, cause).Once()

		w, env := doRequest(setupRouter(useCase, true), http.MethodGet, "/api/git-tokens/"+id.String(), "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "decryption_failed", env.Code)
		assert.Equal(t, "Failed to decrypt token", env.Message)
		assert.NotContains(t, w.Body.String(), "authentication")
	})

	t.Run("Error_CipherBusy", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}
		id := uuid.Must(uuid.NewV7())
		useCase.On("Get", mock.Anything, id, testUserID).Return(nil, gitTokenDomain.ErrCipherBusy).Once()

		w, _ := doRequest(setupRouter(useCase, true), http.MethodGet, "/api/git-tokens/"+id.String(), "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestGitTokenHandler_Rotate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}
		token := newToken()
		useCase.On("Rotate", mock.Anything, token.ID, testUserID, "ghp_rotated").Return(token, nil).Once()

		w, _ := doRequest(
			setupRouter(useCase, true),
			http.MethodPut,
			"/api/git-tokens/"+token.ID.String()+"/value",
			`{"token_value":"ghp_rotated"}`,
		)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "ghp_rotated")
		useCase.AssertExpectations(t)
	})

	t.Run("Error_MissingValue", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}
		id := uuid.Must(uuid.NewV7())

		w, env := doRequest(setupRouter(useCase, true), http.MethodPut, "/api/git-tokens/"+id.String()+"/value", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, env.Details, "token_value")
	})
}

func TestGitTokenHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}
		id := uuid.Must(uuid.NewV7())
		useCase.On("Delete", mock.Anything, id, testUserID).Return(nil).Once()

		w, _ := doRequest(setupRouter(useCase, true), http.MethodDelete, "/api/git-tokens/"+id.String(), "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		useCase := &mocks.MockGitTokenUseCase{}
		id := uuid.Must(uuid.NewV7())
		useCase.On("Delete", mock.Anything, id, testUserID).Return(gitTokenDomain.ErrGitTokenNotFound).Once()

		w, _ := doRequest(setupRouter(useCase, true), http.MethodDelete, "/api/git-tokens/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
