package api

import (
	"context"
	"errors"

	"github.com/vho0811/blogpost-backend/models"
)

type keyType string

const (
	authClaimsKey keyType = "authClaims"
	userKey       keyType = "user"
)

// ctxWithAuthClaims adds the validated session claims to the context
func ctxWithAuthClaims(ctx context.Context, claims *AuthClaims) context.Context {
	return context.WithValue(ctx, authClaimsKey, claims)
}

// ctxGetAuthClaims retrieves the validated session claims from the context
func ctxGetAuthClaims(ctx context.Context) (*AuthClaims, error) {
	claims, ok := ctx.Value(authClaimsKey).(*AuthClaims)
	if !ok || claims == nil {
		return nil, errors.New("no session claims in context")
	}
	return claims, nil
}

// ctxWithUser adds the synced application user to the context
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser retrieves the synced application user from the context. The
// user is absent for identities that have never hit /auth/sync.
func ctxGetUser(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok || user == nil {
		return nil, errors.New("no user in context")
	}
	return user, nil
}
