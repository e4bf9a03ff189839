package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	gitTokenDomain "github.com/devdox-ai/devdox-api/internal/gittoken/domain"
)

// MockGitTokenUseCase is a mock implementation of usecase.GitTokenUseCase.
type MockGitTokenUseCase struct {
	mock.Mock
}

// List mocks the List method of GitTokenUseCase.
func (m *MockGitTokenUseCase) List(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]*gitTokenDomain.GitToken, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*gitTokenDomain.GitToken), args.Error(1)
}

// Get mocks the Get method of GitTokenUseCase.
func (m *MockGitTokenUseCase) Get(
	ctx context.Context,
	id uuid.UUID,
	userID string,
) (*gitTokenDomain.GitToken, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gitTokenDomain.GitToken), args.Error(1)
}

// Create mocks the Create method of GitTokenUseCase.
func (m *MockGitTokenUseCase) Create(
	ctx context.Context,
	input *gitTokenDomain.CreateGitTokenInput,
) (*gitTokenDomain.GitToken, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gitTokenDomain.GitToken), args.Error(1)
}

// Rotate mocks the Rotate method of GitTokenUseCase.
func (m *MockGitTokenUseCase) Rotate(
	ctx context.Context,
	id uuid.UUID,
	userID, newValue string,
) (*gitTokenDomain.GitToken, error) {
	args := m.Called(ctx, id, userID, newValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gitTokenDomain.GitToken), args.Error(1)
}

// Delete mocks the Delete method of GitTokenUseCase.
func (m *MockGitTokenUseCase) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
