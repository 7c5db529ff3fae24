package api

import (
	"context"
	"fmt"

	"github.com/descope/go-sdk/descope/client"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vho0811/blogpost-backend/config"
	"github.com/vho0811/blogpost-backend/errs"
)

// AuthClaims is the provider-neutral identity extracted from a validated
// session token.
type AuthClaims struct {
	Subject         string
	Email           string
	Username        string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// sessionValidator validates a bearer session token against the managed
// auth provider and extracts its identity claims.
type sessionValidator interface {
	Validate(ctx context.Context, sessionToken string) (*AuthClaims, error)
}

// newSessionValidator picks the configured provider: Descope when a project
// ID is set, otherwise locally signed JWTs (development and tests).
func newSessionValidator(cfg map[string]string) (sessionValidator, error) {
	if projectID := config.GetString(cfg, "DESCOPE_PROJECT_ID", ""); projectID != "" {
		return newDescopeValidator(projectID)
	}

	if secret := config.GetString(cfg, "AUTH_JWT_SECRET", ""); secret != "" {
		return jwtValidator{secret: []byte(secret)}, nil
	}

	return nil, errs.NewConfigMissingError("DESCOPE_PROJECT_ID or AUTH_JWT_SECRET")
}

// descopeValidator validates sessions through the Descope SDK.
type descopeValidator struct {
	client *client.DescopeClient
}

func newDescopeValidator(projectID string) (descopeValidator, error) {
	descopeClient, err := client.NewWithConfig(&client.Config{ProjectID: projectID})
	if err != nil {
		return descopeValidator{}, fmt.Errorf("failed to initialize Descope client: %w", err)
	}
	return descopeValidator{client: descopeClient}, nil
}

func (v descopeValidator) Validate(ctx context.Context, sessionToken string) (*AuthClaims, error) {
	authorized, token, err := v.client.Auth.ValidateSessionWithToken(ctx, sessionToken)
	if err != nil {
		return nil, errs.NewSessionInvalidError(err)
	}
	if !authorized || token == nil {
		return nil, errs.NewInvalidTokenError()
	}

	claims := &AuthClaims{Subject: token.ID}
	claims.Email = stringClaim(token.Claims, "email")
	claims.Username = stringClaim(token.Claims, "preferred_username")
	claims.FirstName = stringClaim(token.Claims, "givenName")
	claims.LastName = stringClaim(token.Claims, "familyName")
	claims.ProfileImageURL = stringClaim(token.Claims, "picture")
	return claims, nil
}

// jwtValidator accepts HS256 tokens signed with a shared secret. Only meant
// for development and tests where no managed provider is reachable.
type jwtValidator struct {
	secret []byte
}

func (v jwtValidator) Validate(_ context.Context, sessionToken string) (*AuthClaims, error) {
	parsed, err := jwt.Parse(sessionToken, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, errs.NewSessionInvalidError(err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errs.NewInvalidTokenError()
	}

	subject, err := mapClaims.GetSubject()
	if err != nil || subject == "" {
		return nil, errs.NewInvalidTokenError()
	}

	claims := &AuthClaims{Subject: subject}
	claims.Email = stringClaim(mapClaims, "email")
	claims.Username = stringClaim(mapClaims, "username")
	claims.FirstName = stringClaim(mapClaims, "first_name")
	claims.LastName = stringClaim(mapClaims, "last_name")
	claims.ProfileImageURL = stringClaim(mapClaims, "picture")
	return claims, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}
