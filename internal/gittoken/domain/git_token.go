// Package domain defines the git token vault: provider access tokens stored encrypted per user.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/devdox-ai/devdox-api/internal/crypto/domain"
)

// ProviderType identifies the git hosting provider a token belongs to.
type ProviderType string

const (
	ProviderGitHub ProviderType = "github"
	ProviderGitLab ProviderType = "gitlab"
)

// LabelMaxLength bounds GitToken.Label.
const LabelMaxLength = 100

// ProviderTypes lists the accepted providers.
var ProviderTypes = []ProviderType{ProviderGitHub, ProviderGitLab}

// DefaultURL returns the public instance URL used when a token is created without one.
func (p ProviderType) DefaultURL() string {
	if p == ProviderGitLab {
		return "https://gitlab.com"
	}
	return "https://github.com"
}

// GitToken is a stored provider token. Envelope holds the encrypted value exactly as
// persisted; Plaintext is only populated by GitTokenUseCase.Get.
type GitToken struct {
	ID           uuid.UUID
	UserID       string
	Label        string
	ProviderType ProviderType
	ProviderURL  string
	Envelope     cryptoDomain.Envelope
	Plaintext    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateGitTokenInput carries a validated creation request.
type CreateGitTokenInput struct {
	UserID       string
	Label        string
	ProviderType ProviderType
	ProviderURL  string
	TokenValue   string
}
