package domain

import (
	"github.com/devdox-ai/devdox-api/internal/errors"
)

// Authentication errors. All of them map to 401 at the transport layer.
var (
	// ErrMissingToken indicates the request carried no bearer token.
	ErrMissingToken = errors.Wrap(errors.ErrUnauthorized, "missing bearer token")

	// ErrInvalidToken indicates the token failed signature, algorithm, issuer or time checks.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrExpiredToken indicates the token is past its exp claim.
	ErrExpiredToken = errors.Wrap(ErrInvalidToken, "token has expired")

	// ErrMissingClaims indicates a verified token without a subject.
	ErrMissingClaims = errors.Wrap(ErrInvalidToken, "missing required claims")
)
