package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	cryptoDomain "github.com/devdox-ai/devdox-api/internal/crypto/domain"
	cryptoService "github.com/devdox-ai/devdox-api/internal/crypto/service"
	"github.com/devdox-ai/devdox-api/internal/database"
	gitTokenDomain "github.com/devdox-ai/devdox-api/internal/gittoken/domain"
	"github.com/devdox-ai/devdox-api/internal/metrics"
)

type gitTokenUseCase struct {
	txManager database.TxManager
	repo      GitTokenRepository
	cipher    cryptoService.TokenCipher
	masterKey string
	slots     *semaphore.Weighted
	metrics   metrics.BusinessMetrics
}

// NewGitTokenUseCase validates masterKey up front so that a misconfigured deployment fails
// at startup. maxConcurrency bounds simultaneous key derivations; each derivation holds
// roughly 16 MiB.
func NewGitTokenUseCase(
	txManager database.TxManager,
	repo GitTokenRepository,
	cipher cryptoService.TokenCipher,
	masterKey string,
	maxConcurrency int,
	businessMetrics metrics.BusinessMetrics,
) (GitTokenUseCase, error) {
	if err := cryptoService.ValidateMasterKey(masterKey); err != nil {
		return nil, err
	}
	if maxConcurrency < 1 {
		return nil, fmt.Errorf("cipher concurrency must be at least 1, got %d", maxConcurrency)
	}
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}

	return &gitTokenUseCase{
		txManager: txManager,
		repo:      repo,
		cipher:    cipher,
		masterKey: masterKey,
		slots:     semaphore.NewWeighted(int64(maxConcurrency)),
		metrics:   businessMetrics,
	}, nil
}

func (g *gitTokenUseCase) List(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]*gitTokenDomain.GitToken, error) {
	return g.repo.List(ctx, userID, offset, limit)
}

func (g *gitTokenUseCase) Get(ctx context.Context, id uuid.UUID, userID string) (*gitTokenDomain.GitToken, error) {
	token, err := g.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	plaintext, err := g.decrypt(ctx, token.Envelope)
	if err != nil {
		return nil, err
	}
	token.Plaintext = plaintext

	return token, nil
}

func (g *gitTokenUseCase) Create(
	ctx context.Context,
	input *gitTokenDomain.CreateGitTokenInput,
) (*gitTokenDomain.GitToken, error) {
	envelope, err := g.encrypt(ctx, input.TokenValue)
	if err != nil {
		return nil, err
	}

	providerURL := input.ProviderURL
	if providerURL == "" {
		providerURL = input.ProviderType.DefaultURL()
	}

	now := time.Now().UTC()
	token := &gitTokenDomain.GitToken{
		ID:           uuid.Must(uuid.NewV7()),
		UserID:       input.UserID,
		Label:        input.Label,
		ProviderType: input.ProviderType,
		ProviderURL:  providerURL,
		Envelope:     envelope,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := g.repo.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

func (g *gitTokenUseCase) Rotate(
	ctx context.Context,
	id uuid.UUID,
	userID, newValue string,
) (*gitTokenDomain.GitToken, error) {
	// Encrypt before locking the row so the derivation does not extend the transaction.
	envelope, err := g.encrypt(ctx, newValue)
	if err != nil {
		return nil, err
	}

	var token *gitTokenDomain.GitToken
	err = g.txManager.WithTx(ctx, func(txCtx context.Context) error {
		current, err := g.repo.GetForUpdate(txCtx, id, userID)
		if err != nil {
			return err
		}

		current.Envelope = envelope
		current.UpdatedAt = time.Now().UTC()
		if err := g.repo.UpdateValue(txCtx, current); err != nil {
			return err
		}

		token = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return token, nil
}

func (g *gitTokenUseCase) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	return g.repo.Delete(ctx, id, userID)
}

func (g *gitTokenUseCase) encrypt(ctx context.Context, plaintext string) (cryptoDomain.Envelope, error) {
	if err := g.acquire(ctx, "encrypt"); err != nil {
		return cryptoDomain.Envelope{}, err
	}
	defer g.slots.Release(1)

	return g.cipher.Encrypt(plaintext, g.masterKey)
}

func (g *gitTokenUseCase) decrypt(ctx context.Context, envelope cryptoDomain.Envelope) (string, error) {
	if err := g.acquire(ctx, "decrypt"); err != nil {
		return "", err
	}
	defer g.slots.Release(1)

	plaintext, err := g.cipher.Decrypt(envelope, g.masterKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", gitTokenDomain.ErrTokenDecryption, err)
	}
	return plaintext, nil
}

func (g *gitTokenUseCase) acquire(ctx context.Context, operation string) error {
	start := time.Now()
	if err := g.slots.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: %w", gitTokenDomain.ErrCipherBusy, err)
	}
	g.metrics.RecordCipherWait(ctx, operation, time.Since(start))
	return nil
}
