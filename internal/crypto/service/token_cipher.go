package service

import (
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/devdox-ai/devdox-api/internal/crypto/domain"
)

// envelopeEncoding is used for every encoded envelope part. Decoding is strict so that
// any altered character either changes the decoded bytes or fails to decode.
var envelopeEncoding = base64.StdEncoding

// aesGCMTokenCipher is the TokenCipher used for stored git tokens.
type aesGCMTokenCipher struct{}

// NewTokenCipher returns the AES-256-GCM token cipher.
func NewTokenCipher() TokenCipher {
	return &aesGCMTokenCipher{}
}

// Encrypt implements TokenCipher.
func (c *aesGCMTokenCipher) Encrypt(plaintext, masterKey string) (cryptoDomain.Envelope, error) {
	if plaintext == "" {
		return cryptoDomain.Envelope{}, cryptoDomain.ErrInvalidPlaintext
	}

	key, err := DeriveKey(masterKey)
	if err != nil {
		return cryptoDomain.Envelope{}, err
	}
	defer cryptoDomain.Zero(key)

	aead, err := NewAESGCM(key)
	if err != nil {
		return cryptoDomain.Envelope{}, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryption, err)
	}

	ciphertext, tag, nonce, err := aead.Seal([]byte(plaintext))
	if err != nil {
		return cryptoDomain.Envelope{}, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryption, err)
	}

	return cryptoDomain.NewEnvelope(
		envelopeEncoding.EncodeToString(nonce),
		envelopeEncoding.EncodeToString(ciphertext),
		envelopeEncoding.EncodeToString(tag),
	), nil
}

// Decrypt implements TokenCipher.
func (c *aesGCMTokenCipher) Decrypt(envelope cryptoDomain.Envelope, masterKey string) (string, error) {
	encodedIV, encodedCiphertext, encodedTag, err := envelope.Split()
	if err != nil {
		return "", err
	}

	key, err := DeriveKey(masterKey)
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(key)

	aead, err := NewAESGCM(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrDecryption, err)
	}

	nonce, err := decodePart(encodedIV)
	if err != nil {
		return "", err
	}
	ciphertext, err := decodePart(encodedCiphertext)
	if err != nil {
		return "", err
	}
	tag, err := decodePart(encodedTag)
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Open(ciphertext, tag, nonce)
	if err != nil {
		return "", cryptoDomain.ErrAuthentication
	}

	return string(plaintext), nil
}

// decodePart decodes one envelope part. An undecodable part cannot have been produced by
// Encrypt, so it is reported the same way as a tag mismatch.
func decodePart(s string) ([]byte, error) {
	b, err := envelopeEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, cryptoDomain.ErrAuthentication
	}
	return b, nil
}
