// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"strings"

	validation "github.com/jellydator/validation"

	gitTokenDomain "github.com/devdox-ai/devdox-api/internal/gittoken/domain"
	customValidation "github.com/devdox-ai/devdox-api/internal/validation"
)

// CreateGitTokenRequest contains the parameters for storing a new git token.
type CreateGitTokenRequest struct {
	Label        string `json:"label"`
	ProviderType string `json:"provider_type"`
	ProviderURL  string `json:"provider_url"`
	TokenValue   string `json:"token_value"`
}

// Validate checks if the create git token request is valid.
func (r *CreateGitTokenRequest) Validate() error {
	providers := make([]any, 0, len(gitTokenDomain.ProviderTypes))
	for _, p := range gitTokenDomain.ProviderTypes {
		providers = append(providers, string(p))
	}

	return validation.ValidateStruct(r,
		validation.Field(&r.Label,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, gitTokenDomain.LabelMaxLength),
		),
		validation.Field(&r.ProviderType,
			validation.Required,
			validation.In(providers...).Error("must be one of: github, gitlab"),
		),
		validation.Field(&r.ProviderURL,
			customValidation.HTTPURL,
		),
		validation.Field(&r.TokenValue,
			validation.Required,
			customValidation.TokenValue,
		),
	)
}

// ToInput converts the request into the use case input for userID.
func (r *CreateGitTokenRequest) ToInput(userID string) *gitTokenDomain.CreateGitTokenInput {
	return &gitTokenDomain.CreateGitTokenInput{
		UserID:       userID,
		Label:        strings.TrimSpace(r.Label),
		ProviderType: gitTokenDomain.ProviderType(r.ProviderType),
		ProviderURL:  r.ProviderURL,
		TokenValue:   r.TokenValue,
	}
}

// RotateGitTokenRequest carries the replacement value for an existing token.
type RotateGitTokenRequest struct {
	TokenValue string `json:"token_value"`
}

// Validate checks if the rotate git token request is valid.
func (r *RotateGitTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TokenValue,
			validation.Required,
			customValidation.TokenValue,
		),
	)
}
