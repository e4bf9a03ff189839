// Package mocks provides mock implementations of the crypto services.
package mocks

import (
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/devdox-ai/devdox-api/internal/crypto/domain"
)

// MockTokenCipher is a mock implementation of service.TokenCipher.
type MockTokenCipher struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of TokenCipher.
func (m *MockTokenCipher) Encrypt(plaintext, masterKey string) (cryptoDomain.Envelope, error) {
	args := m.Called(plaintext, masterKey)
	return args.Get(0).(cryptoDomain.Envelope), args.Error(1)
}

// Decrypt mocks the Decrypt method of TokenCipher.
func (m *MockTokenCipher) Decrypt(envelope cryptoDomain.Envelope, masterKey string) (string, error) {
	args := m.Called(envelope, masterKey)
	return args.String(0), args.Error(1)
}
