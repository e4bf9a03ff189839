// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"github.com/stretchr/testify/mock"

	authDomain "github.com/devdox-ai/devdox-api/internal/auth/domain"
)

// MockTokenVerifier is a mock implementation of service.TokenVerifier.
type MockTokenVerifier struct {
	mock.Mock
}

// Verify mocks the Verify method of TokenVerifier.
func (m *MockTokenVerifier) Verify(token string) (*authDomain.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.User), args.Error(1)
}
