package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/devdox-ai/devdox-api/internal/auth/domain"
	authService "github.com/devdox-ai/devdox-api/internal/auth/service"
	"github.com/devdox-ai/devdox-api/internal/httputil"
)

// TestAuthHeader authenticates a request as authDomain.TestUserID when the value is "true"
// and the bypass is enabled.
const TestAuthHeader = "X-Test-Auth"

const bearerPrefix = "bearer "

// AuthenticationMiddleware requires a valid "Authorization: Bearer <jwt>" header and stores
// the resulting user in the request context. Every failure is answered with 401.
//
// testBypass must only be true when APP_ENV=test.
func AuthenticationMiddleware(
	verifier authService.TokenVerifier,
	testBypass bool,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		if testBypass && c.GetHeader(TestAuthHeader) == "true" {
			setUser(c, &authDomain.User{ID: authDomain.TestUserID, Email: "test@example.com", Role: "user"})
			c.Next()
			return
		}

		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			logger.Debug("authentication failed", slog.Any("error", err))
			httputil.HandleErrorGin(c, err, nil)
			return
		}

		user, err := verifier.Verify(token)
		if err != nil {
			logger.Debug("authentication failed", slog.Any("error", err))
			httputil.HandleErrorGin(c, err, nil)
			return
		}

		setUser(c, user)
		logger.Debug("authentication successful", slog.String("user_id", user.ID))
		c.Next()
	}
}

func setUser(c *gin.Context, user *authDomain.User) {
	c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
}

// bearerToken extracts the token from an Authorization header; the scheme is case-insensitive.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", authDomain.ErrMissingToken
	}
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", authDomain.ErrInvalidToken
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", authDomain.ErrMissingToken
	}
	return token, nil
}
