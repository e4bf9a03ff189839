package domain

import (
	"github.com/devdox-ai/devdox-api/internal/errors"
)

var (
	// ErrGitTokenNotFound indicates no token with the id exists for the calling user.
	ErrGitTokenNotFound = errors.Wrap(errors.ErrNotFound, "git token not found")

	// ErrTokenDecryption indicates a stored token could not be decrypted with the configured
	// master key. The underlying cipher error is kept in the chain for logging only.
	ErrTokenDecryption = errors.New("failed to decrypt token")

	// ErrCipherBusy indicates the request was cancelled while waiting for a key derivation slot.
	ErrCipherBusy = errors.Wrap(errors.ErrUnavailable, "cipher capacity exhausted")
)
