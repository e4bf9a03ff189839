// Package http provides the authentication middleware and request identity helpers.
package http

import (
	"context"

	authDomain "github.com/devdox-ai/devdox-api/internal/auth/domain"
)

type userKey struct{}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user *authDomain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser returns the authenticated user stored by AuthenticationMiddleware.
func GetUser(ctx context.Context) (*authDomain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*authDomain.User)
	return user, ok && user != nil
}
