package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/devdox-ai/devdox-api/internal/crypto/domain"
	gitTokenDomain "github.com/devdox-ai/devdox-api/internal/gittoken/domain"
)

func newToken() *gitTokenDomain.GitToken {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &gitTokenDomain.GitToken{
		ID:           uuid.Must(uuid.NewV7()),
		UserID:       "user-1",
		Label:        "work",
		ProviderType: gitTokenDomain.ProviderGitHub,
		ProviderURL:  "https://github.com",
		Envelope:     cryptoDomain.Envelope{IV: "aXY=", Ciphertext: "Y3Q=.dGFn"},
		Plaintext:    "ghp_abc123XYZ",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestMapGitTokenToResponse_OmitsSecrets(t *testing.T) {
	token := newToken()

	body, err := json.Marshal(MapGitTokenToResponse(token))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.Equal(t, token.ID.String(), fields["id"])
	assert.Equal(t, "github", fields["provider_type"])
	assert.NotContains(t, fields, "token_value")
	assert.NotContains(t, fields, "iv")
	assert.NotContains(t, string(body), token.Envelope.Ciphertext)
	assert.NotContains(t, fields, "user_id")
}

func TestMapGitTokenToDetailResponse(t *testing.T) {
	response := MapGitTokenToDetailResponse(newToken())
	assert.Equal(t, "ghp_abc123XYZ", response.TokenValue)
}

func TestMapGitTokensToListResponse(t *testing.T) {
	t.Run("empty page serialises as an empty array", func(t *testing.T) {
		body, err := json.Marshal(MapGitTokensToListResponse(nil, 0, 50))
		require.NoError(t, err)
		assert.JSONEq(t, `{"items":[],"offset":0,"limit":50}`, string(body))
	})

	t.Run("values are never listed", func(t *testing.T) {
		response := MapGitTokensToListResponse([]*gitTokenDomain.GitToken{newToken(), newToken()}, 10, 2)
		require.Len(t, response.Items, 2)
		for _, item := range response.Items {
			assert.Empty(t, item.TokenValue)
		}
		assert.Equal(t, 10, response.Offset)
	})
}
