package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/devdox-ai/devdox-api/internal/auth/domain"
)

// Claims is the accepted JWT payload. The subject carries the user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTVerifier verifies HS256 tokens signed with secret. When issuer is non-empty the
// iss claim must match it. Tokens without an exp claim are rejected.
func NewJWTVerifier(secret, issuer string) (TokenVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &jwtVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}, nil
}

func (v *jwtVerifier) Verify(token string) (*authDomain.User, error) {
	if token == "" {
		return nil, authDomain.ErrMissingToken
	}

	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, authDomain.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", authDomain.ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, authDomain.ErrMissingClaims
	}

	return &authDomain.User{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
