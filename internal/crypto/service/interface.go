// Package service implements the token cipher: scrypt key derivation from a master key and
// AES-256-GCM encryption of short secrets into a text Envelope.
package service

import (
	cryptoDomain "github.com/devdox-ai/devdox-api/internal/crypto/domain"
)

// TokenCipher encrypts and decrypts secrets under a caller-supplied master key.
// Implementations hold no state and are safe for concurrent use.
type TokenCipher interface {
	// Encrypt protects plaintext under a key derived from masterKey. Each call uses a fresh IV.
	Encrypt(plaintext, masterKey string) (cryptoDomain.Envelope, error)

	// Decrypt verifies and opens an envelope produced by Encrypt with the same master key.
	Decrypt(envelope cryptoDomain.Envelope, masterKey string) (string, error)
}
