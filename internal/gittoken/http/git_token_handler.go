// Package http provides HTTP handlers for the git token vault. Every route requires an
// authenticated user and only ever touches that user's tokens.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/devdox-ai/devdox-api/internal/auth/domain"
	authHTTP "github.com/devdox-ai/devdox-api/internal/auth/http"
	apperrors "github.com/devdox-ai/devdox-api/internal/errors"
	gitTokenDomain "github.com/devdox-ai/devdox-api/internal/gittoken/domain"
	"github.com/devdox-ai/devdox-api/internal/gittoken/http/dto"
	gitTokenUseCase "github.com/devdox-ai/devdox-api/internal/gittoken/usecase"
	"github.com/devdox-ai/devdox-api/internal/httputil"
	customValidation "github.com/devdox-ai/devdox-api/internal/validation"
)

// GitTokenHandler handles HTTP requests for git token operations.
type GitTokenHandler struct {
	gitTokenUseCase gitTokenUseCase.GitTokenUseCase
	logger          *slog.Logger
}

// NewGitTokenHandler creates a new git token handler.
func NewGitTokenHandler(gitTokenUseCase gitTokenUseCase.GitTokenUseCase, logger *slog.Logger) *GitTokenHandler {
	return &GitTokenHandler{
		gitTokenUseCase: gitTokenUseCase,
		logger:          logger,
	}
}

// RegisterRoutes mounts the git token routes on an authenticated group.
func (h *GitTokenHandler) RegisterRoutes(group *gin.RouterGroup) {
	tokens := group.Group("/git-tokens")
	tokens.GET("", h.ListHandler)
	tokens.POST("", h.CreateHandler)
	tokens.GET("/:id", h.GetHandler)
	tokens.PUT("/:id/value", h.RotateHandler)
	tokens.DELETE("/:id", h.DeleteHandler)
}

// ListHandler returns a page of the caller's token metadata.
// GET /api/git-tokens?offset=0&limit=50
func (h *GitTokenHandler) ListHandler(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	page, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	tokens, err := h.gitTokenUseCase.List(c.Request.Context(), user.ID, page.Offset, page.Limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	httputil.Success(c, http.StatusOK, dto.MapGitTokensToListResponse(tokens, page.Offset, page.Limit))
}

// CreateHandler encrypts and stores a new token.
// POST /api/git-tokens - Returns 201 Created with metadata only.
func (h *GitTokenHandler) CreateHandler(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateGitTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), customValidation.Details(err), h.logger)
		return
	}

	token, err := h.gitTokenUseCase.Create(c.Request.Context(), req.ToInput(user.ID))
	if err != nil {
		h.handleError(c, err)
		return
	}

	httputil.Success(c, http.StatusCreated, dto.MapGitTokenToResponse(token))
}

// GetHandler returns a single token including its decrypted value.
// GET /api/git-tokens/:id
func (h *GitTokenHandler) GetHandler(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	token, err := h.gitTokenUseCase.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	httputil.Success(c, http.StatusOK, dto.MapGitTokenToDetailResponse(token))
}

// RotateHandler replaces the stored value of a token.
// PUT /api/git-tokens/:id/value
func (h *GitTokenHandler) RotateHandler(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.RotateGitTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), customValidation.Details(err), h.logger)
		return
	}

	token, err := h.gitTokenUseCase.Rotate(c.Request.Context(), id, user.ID, req.TokenValue)
	if err != nil {
		h.handleError(c, err)
		return
	}

	httputil.Success(c, http.StatusOK, dto.MapGitTokenToResponse(token))
}

// DeleteHandler removes a token.
// DELETE /api/git-tokens/:id - Returns 204 No Content.
func (h *GitTokenHandler) DeleteHandler(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.gitTokenUseCase.Delete(c.Request.Context(), id, user.ID); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GitTokenHandler) currentUser(c *gin.Context) (*authDomain.User, bool) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authDomain.ErrMissingToken, h.logger)
		return nil, false
	}
	return user, true
}

func (h *GitTokenHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid git token id"), h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// handleError answers decryption failures with a fixed message; the cipher error itself is
// only logged.
func (h *GitTokenHandler) handleError(c *gin.Context, err error) {
	if apperrors.Is(err, gitTokenDomain.ErrTokenDecryption) {
		h.logger.Error("git token decryption failed", slog.Any("error", err))
		httputil.Error(c, http.StatusInternalServerError, "decryption_failed", "Failed to decrypt token", nil)
		return
	}
	httputil.HandleErrorGin(c, err, h.logger)
}
