package app

import (
	"fmt"

	authService "github.com/devdox-ai/devdox-api/internal/auth/service"
)

// TokenVerifier returns the bearer token verifier.
func (c *Container) TokenVerifier() (authService.TokenVerifier, error) {
	c.tokenVerifierInit.Do(func() {
		var err error
		c.tokenVerifier, err = c.initTokenVerifier()
		c.setInitError("tokenVerifier", err)
	})
	return c.tokenVerifier, c.initError("tokenVerifier")
}

func (c *Container) initTokenVerifier() (authService.TokenVerifier, error) {
	verifier, err := authService.NewJWTVerifier(c.config.AuthJWTSecret, c.config.AuthJWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_JWT_SECRET: %w", err)
	}
	return verifier, nil
}
