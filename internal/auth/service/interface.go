// Package service verifies bearer tokens issued by the external identity provider.
package service

import (
	authDomain "github.com/devdox-ai/devdox-api/internal/auth/domain"
)

// TokenVerifier turns a raw bearer token into the authenticated user.
type TokenVerifier interface {
	Verify(token string) (*authDomain.User, error)
}
