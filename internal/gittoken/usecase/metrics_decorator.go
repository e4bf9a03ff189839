package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	gitTokenDomain "github.com/devdox-ai/devdox-api/internal/gittoken/domain"
	"github.com/devdox-ai/devdox-api/internal/metrics"
)

const metricsDomain = "git_tokens"

type gitTokenUseCaseWithMetrics struct {
	next    GitTokenUseCase
	metrics metrics.BusinessMetrics
}

// NewGitTokenUseCaseWithMetrics wraps useCase, recording a count and a duration per call.
func NewGitTokenUseCaseWithMetrics(useCase GitTokenUseCase, m metrics.BusinessMetrics) GitTokenUseCase {
	return &gitTokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (g *gitTokenUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	g.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	g.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (g *gitTokenUseCaseWithMetrics) List(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]*gitTokenDomain.GitToken, error) {
	start := time.Now()
	tokens, err := g.next.List(ctx, userID, offset, limit)
	g.record(ctx, "list", start, err)
	return tokens, err
}

func (g *gitTokenUseCaseWithMetrics) Get(
	ctx context.Context,
	id uuid.UUID,
	userID string,
) (*gitTokenDomain.GitToken, error) {
	start := time.Now()
	token, err := g.next.Get(ctx, id, userID)
	g.record(ctx, "get", start, err)
	return token, err
}

func (g *gitTokenUseCaseWithMetrics) Create(
	ctx context.Context,
	input *gitTokenDomain.CreateGitTokenInput,
) (*gitTokenDomain.GitToken, error) {
	start := time.Now()
	token, err := g.next.Create(ctx, input)
	g.record(ctx, "create", start, err)
	return token, err
}

func (g *gitTokenUseCaseWithMetrics) Rotate(
	ctx context.Context,
	id uuid.UUID,
	userID, newValue string,
) (*gitTokenDomain.GitToken, error) {
	start := time.Now()
	token, err := g.next.Rotate(ctx, id, userID, newValue)
	g.record(ctx, "rotate", start, err)
	return token, err
}

func (g *gitTokenUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	start := time.Now()
	err := g.next.Delete(ctx, id, userID)
	g.record(ctx, "delete", start, err)
	return err
}
