package auth

import "errors"

var (
	// ErrNoIDToken is returned when the OAuth2 token response doesn't contain an ID token.
	// This typically indicates a misconfigured provider or an incomplete authentication flow.
	ErrNoIDToken = errors.New("no id_token in token response")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when no account exists for the given email.
	ErrUserNotFound = errors.New("user not found")

	// ErrExternalAccount is returned when local authentication is attempted for
	// an account that can only sign in through the external identity provider.
	ErrExternalAccount = errors.New("account must sign in with google")

	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrEmailMissing is returned when the identity provider reports no email address.
	ErrEmailMissing = errors.New("identity provider returned no email")

	// ErrGoogleDisabled is returned when Google authentication is disabled via configuration.
	ErrGoogleDisabled = errors.New("google authentication is disabled")
)
