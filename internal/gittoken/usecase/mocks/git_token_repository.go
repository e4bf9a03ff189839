// Package mocks provides mock implementations of the git token use case dependencies.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	gitTokenDomain "github.com/devdox-ai/devdox-api/internal/gittoken/domain"
)

// MockGitTokenRepository is a mock implementation of usecase.GitTokenRepository.
type MockGitTokenRepository struct {
	mock.Mock
}

// Create mocks the Create method of GitTokenRepository.
func (m *MockGitTokenRepository) Create(ctx context.Context, token *gitTokenDomain.GitToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// Get mocks the Get method of GitTokenRepository.
func (m *MockGitTokenRepository) Get(
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

// GetForUpdate mocks the GetForUpdate method of GitTokenRepository.
func (m *MockGitTokenRepository) GetForUpdate(
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

// List mocks the List method of GitTokenRepository.
func (m *MockGitTokenRepository) List(
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

// UpdateValue mocks the UpdateValue method of GitTokenRepository.
func (m *MockGitTokenRepository) UpdateValue(ctx context.Context, token *gitTokenDomain.GitToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// Delete mocks the Delete method of GitTokenRepository.
func (m *MockGitTokenRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
