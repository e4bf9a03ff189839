// Package usecase implements the git token vault: per-user storage of provider tokens
// encrypted under the application master key.
package usecase

import (
	"context"

	"github.com/google/uuid"

	gitTokenDomain "github.com/devdox-ai/devdox-api/internal/gittoken/domain"
)

// GitTokenRepository persists git tokens. Every lookup is scoped to the owning user;
// a token owned by someone else is reported as gitTokenDomain.ErrGitTokenNotFound.
type GitTokenRepository interface {
	Create(ctx context.Context, token *gitTokenDomain.GitToken) error
	Get(ctx context.Context, id uuid.UUID, userID string) (*gitTokenDomain.GitToken, error)
	// GetForUpdate is Get with a row lock; it must run inside a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID, userID string) (*gitTokenDomain.GitToken, error)
	// List returns tokens without requiring decryption, newest first.
	List(ctx context.Context, userID string, offset, limit int) ([]*gitTokenDomain.GitToken, error)
	UpdateValue(ctx context.Context, token *gitTokenDomain.GitToken) error
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

// GitTokenUseCase is the git token business logic.
type GitTokenUseCase interface {
	List(ctx context.Context, userID string, offset, limit int) ([]*gitTokenDomain.GitToken, error)
	// Get returns the token with Plaintext populated.
	Get(ctx context.Context, id uuid.UUID, userID string) (*gitTokenDomain.GitToken, error)
	Create(ctx context.Context, input *gitTokenDomain.CreateGitTokenInput) (*gitTokenDomain.GitToken, error)
	// Rotate replaces the stored value of an existing token with a freshly encrypted one.
	Rotate(ctx context.Context, id uuid.UUID, userID, newValue string) (*gitTokenDomain.GitToken, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}
