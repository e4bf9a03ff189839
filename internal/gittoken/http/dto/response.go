package dto

import (
	"time"

	gitTokenDomain "github.com/devdox-ai/devdox-api/internal/gittoken/domain"
)

// GitTokenResponse represents a git token in API responses. TokenValue carries the
// decrypted value and is only set by the single-token GET endpoint.
type GitTokenResponse struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	ProviderType string    `json:"provider_type"`
	ProviderURL  string    `json:"provider_url"`
	TokenValue   string    `json:"token_value,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListGitTokensResponse is a page of token metadata.
type ListGitTokensResponse struct {
	Items  []GitTokenResponse `json:"items"`
	Offset int                `json:"offset"`
	Limit  int                `json:"limit"`
}

// MapGitTokenToResponse converts a domain token to metadata without the token value.
func MapGitTokenToResponse(token *gitTokenDomain.GitToken) GitTokenResponse {
	return GitTokenResponse{
		ID:           token.ID.String(),
		Label:        token.Label,
		ProviderType: string(token.ProviderType),
		ProviderURL:  token.ProviderURL,
		CreatedAt:    token.CreatedAt,
		UpdatedAt:    token.UpdatedAt,
	}
}

// MapGitTokenToDetailResponse is MapGitTokenToResponse plus the decrypted value.
func MapGitTokenToDetailResponse(token *gitTokenDomain.GitToken) GitTokenResponse {
	response := MapGitTokenToResponse(token)
	response.TokenValue = token.Plaintext
	return response
}

// MapGitTokensToListResponse converts a page of domain tokens.
func MapGitTokensToListResponse(tokens []*gitTokenDomain.GitToken, offset, limit int) ListGitTokensResponse {
	items := make([]GitTokenResponse, 0, len(tokens))
	for _, token := range tokens {
		items = append(items, MapGitTokenToResponse(token))
	}
	return ListGitTokensResponse{Items: items, Offset: offset, Limit: limit}
}
