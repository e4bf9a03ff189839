package service

import (
	"fmt"

	"golang.org/x/crypto/scrypt"

	cryptoDomain "github.com/devdox-ai/devdox-api/internal/crypto/domain"
)

// ValidateMasterKey applies the master key policy without running the KDF: the key must be
// at least cryptoDomain.KeyLength bytes. Short keys are rejected, never padded.
func ValidateMasterKey(masterKey string) error {
	if len(masterKey) < cryptoDomain.KeyLength {
		return fmt.Errorf("%w: master key must be at least %d bytes", cryptoDomain.ErrKeyDerivation, cryptoDomain.KeyLength)
	}
	return nil
}

// DeriveKey derives the 32-byte AES key from masterKey with scrypt and the fixed
// application salt. The result is deterministic; callers must Zero it when done.
func DeriveKey(masterKey string) ([]byte, error) {
	if err := ValidateMasterKey(masterKey); err != nil {
		return nil, err
	}

	key, err := scrypt.Key(
		[]byte(masterKey),
		cryptoDomain.KeySalt,
		cryptoDomain.ScryptN,
		cryptoDomain.ScryptR,
		cryptoDomain.ScryptP,
		cryptoDomain.KeyLength,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrKeyDerivation, err)
	}

	return key, nil
}
