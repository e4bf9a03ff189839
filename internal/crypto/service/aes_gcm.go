package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	cryptoDomain "github.com/devdox-ai/devdox-api/internal/crypto/domain"
)

// AESGCMCipher wraps AES-256-GCM with the envelope layout used for stored tokens: a
// 12-byte random nonce and a 16-byte tag kept apart from the ciphertext.
//
// The cipher is stateless once built and safe for concurrent use; each Seal draws its own
// nonce from crypto/rand.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates an AES-256-GCM cipher. The key must be exactly 32 bytes.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeyLength {
		return nil, errors.New("key must be exactly 32 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, cryptoDomain.NonceLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Seal encrypts plaintext under a fresh random nonce and returns the ciphertext and the
// authentication tag separately.
func (a *AESGCMCipher) Seal(plaintext []byte) (ciphertext, tag, nonce []byte, err error) {
	nonce = make([]byte, cryptoDomain.NonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := a.aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - cryptoDomain.TagLength

	return sealed[:split], sealed[split:], nonce, nil
}

// Open verifies tag over ciphertext and returns the plaintext. Nothing is returned unless
// the tag verifies. Wrong nonce or tag sizes are reported as errors rather than panics.
func (a *AESGCMCipher) Open(ciphertext, tag, nonce []byte) ([]byte, error) {
	if len(nonce) != cryptoDomain.NonceLength {
		return nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}
	if len(tag) != cryptoDomain.TagLength {
		return nil, fmt.Errorf("invalid tag length %d", len(tag))
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := a.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}
