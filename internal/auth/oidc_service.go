package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/stratify/stratify/internal/config"
	"github.com/stratify/stratify/internal/logger"
	"golang.org/x/oauth2"
)

// OIDCService handles OpenID Connect authentication against the external
// identity provider. Session management stays in this application; the
// provider only vouches for who the user is.
type OIDCService struct {
	provider     *oidc.Provider
	oauth2Config *oauth2.Config
	verifier     *oidc.IDTokenVerifier
	logger       *logger.Logger
}

// TokenClaims are the identity claims read from a verified ID token.
type TokenClaims struct {
	Subject    string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// NewOIDCService discovers the provider and configures the code flow.
func NewOIDCService(cfg *config.Config, log *logger.Logger) (*OIDCService, error) {
	ctx := context.Background()

	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OIDC provider: %w", err)
	}

	oauth2Config := &oauth2.Config{
		ClientID:     cfg.OIDCClientID,
		ClientSecret: cfg.OIDCClientSecret,
		RedirectURL:  cfg.OIDCRedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       cfg.OIDCScopes,
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID})

	return &OIDCService{
		provider:     provider,
		oauth2Config: oauth2Config,
		verifier:     verifier,
		logger:       log,
	}, nil
}

// GenerateState generates a random state string for the authorization flow.
func (s *OIDCService) GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// AuthCodeURL returns the provider's authorization URL for the given state.
func (s *OIDCService) AuthCodeURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// Exchange trades an authorization code for tokens.
func (s *OIDCService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}
	return token, nil
}

// VerifyIDToken verifies the raw ID token from a token response and parses
// its identity claims.
func (s *OIDCService) VerifyIDToken(ctx context.Context, token *oauth2.Token) (*TokenClaims, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("token response missing id_token")
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	var claims TokenClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse ID token claims: %w", err)
	}
	return &claims, nil
}
