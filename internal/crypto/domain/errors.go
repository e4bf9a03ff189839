package domain

import (
	"github.com/devdox-ai/devdox-api/internal/errors"
)

// Token cipher errors. The set is closed: every failure returned by the cipher matches
// exactly one of ErrInvalidPlaintext, ErrInvalidEnvelope, ErrKeyDerivation, ErrEncryption
// or ErrDecryption (ErrAuthentication being the only kind of ErrDecryption produced today).
// None of them is retryable.
var (
	// ErrInvalidPlaintext is returned when Encrypt receives an empty plaintext.
	ErrInvalidPlaintext = errors.Wrap(errors.ErrInvalidInput, "plaintext must be a non-empty string")

	// ErrInvalidEnvelope is returned when a stored envelope fails the structural check
	// (empty iv, missing delimiter, empty ciphertext or tag part).
	ErrInvalidEnvelope = errors.New("invalid envelope")

	// ErrKeyDerivation is returned when the master key is missing, shorter than KeyLength,
	// or scrypt itself fails.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrEncryption is returned when the AEAD cipher cannot be built or the IV cannot be generated.
	ErrEncryption = errors.New("encryption failed")

	// ErrDecryption is the general decryption failure.
	ErrDecryption = errors.New("decryption failed")

	// ErrAuthentication means the tag did not verify. Tampering, a wrong master key and
	// undecodable envelope parts are deliberately indistinguishable.
	ErrAuthentication = errors.Wrap(ErrDecryption, "authentication failed")
)
