package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	usercontroller "github.com/GoSecretsApp/GoSecretsApp/internal/db/controller/user"
	"github.com/GoSecretsApp/GoSecretsApp/internal/db/models"
)

// defaultGoogleIssuer is the OIDC discovery URL used when none is configured.
const defaultGoogleIssuer = "https://accounts.google.com"

// GoogleConfig holds the Google OIDC client configuration.
type GoogleConfig struct {
	// Enabled indicates if Google authentication is enabled.
	Enabled bool
	// ProviderURL is the OIDC issuer URL (default https://accounts.google.com).
	ProviderURL string
	// ClientID is the OAuth2 client identifier.
	ClientID string
	// ClientSecret is the OAuth2 client secret.
	ClientSecret string
	// RedirectURL is the OAuth2 callback URL where the provider redirects after authentication.
	RedirectURL string
	// Scopes are the OAuth2 scopes to request (default: openid, profile, email).
	Scopes []string
}

// Google handles authentication via Google's OIDC identity service.
// On a verified callback it finds the account matching the reported email, or
// creates one carrying the external sentinel password.
type Google struct {
	config   *GoogleConfig
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth2   oauth2.Config
	db       *gorm.DB
}

var _ Strategy = (*Google)(nil)

// NewGoogle creates a new Google authentication strategy. The context is used
// for OIDC discovery against the provider URL.
func NewGoogle(ctx context.Context, config *GoogleConfig, db *gorm.DB) (*Google, error) {
	if !config.Enabled {
		return nil, ErrGoogleDisabled
	}

	providerURL := config.ProviderURL
	if providerURL == "" {
		providerURL = defaultGoogleIssuer
	}

	provider, err := oidc.NewProvider(ctx, providerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: config.ClientID,
	})

	scopes := config.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	oauth2Config := oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       scopes,
	}

	return &Google{
		config:   config,
		provider: provider,
		verifier: verifier,
		oauth2:   oauth2Config,
		db:       db,
	}, nil
}

// AuthCodeURL returns the provider authorization URL carrying the state token.
func (p *Google) AuthCodeURL(state string) string {
	return p.oauth2.AuthCodeURL(state)
}

// Authenticate exchanges the authorization code from the callback, verifies
// the ID token and resolves the reported email to a user account, creating
// one on first sign-in.
func (p *Google) Authenticate(ctx context.Context, creds Credentials) (*models.User, error) {
	email, err := p.verifiedEmail(ctx, creds.Code)
	if err != nil {
		return nil, err
	}

	return p.findOrCreateUser(ctx, email)
}

// verifiedEmail runs the code exchange and ID token verification and returns
// the email claim.
func (p *Google) verifiedEmail(ctx context.Context, code string) (string, error) {
	oauth2Token, err := p.oauth2.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange token: %w", err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return "", ErrNoIDToken
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", fmt.Errorf("failed to verify ID token: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}

	if err = idToken.Claims(&claims); err != nil {
		return "", fmt.Errorf("failed to parse claims: %w", err)
	}

	if claims.Email == "" {
		return "", ErrEmailMissing
	}

	return claims.Email, nil
}

// findOrCreateUser loads the account matching the email or creates a new one
// with the sentinel password. A lost creation race falls back to loading the
// row the concurrent request inserted.
func (p *Google) findOrCreateUser(ctx context.Context, email string) (*models.User, error) {
	db := p.db.WithContext(ctx)

	user, err := usercontroller.GetByEmail(db, email)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, usercontroller.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	newUser := models.User{
		Email:    email,
		Password: models.PasswordSentinelGoogle,
	}

	err = usercontroller.Create(db, &newUser)
	if err == nil {
		return &newUser, nil
	}

	if errors.Is(err, usercontroller.ErrEmailTaken) {
		user, err = usercontroller.GetByEmail(db, email)
		if err != nil {
			return nil, fmt.Errorf("failed to reload user after create race: %w", err)
		}

		return user, nil
	}

	return nil, fmt.Errorf("failed to create user: %w", err)
}
