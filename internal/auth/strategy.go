package auth

import (
	"context"

	"github.com/GoSecretsApp/GoSecretsApp/internal/db/models"
	"github.com/GoSecretsApp/GoSecretsApp/internal/uniuri"
)

// stateTokenLen is the length of OAuth2 state tokens.
const stateTokenLen = 32

// Credentials carries the inputs of an authentication attempt. Local
// authentication uses Email and Password; the Google callback carries the
// authorization Code.
type Credentials struct {
	Email    string
	Password string
	Code     string
}

// Strategy authenticates a set of credentials against a backing identity
// source and yields the matching user account. Business rejections are
// returned as the sentinel errors of this package; any other error is an
// infrastructure failure.
type Strategy interface {
	Authenticate(ctx context.Context, creds Credentials) (*models.User, error)
}

// GenerateStateToken generates a random state token for CSRF protection of
// the OAuth2 handshake.
func GenerateStateToken() string {
	return uniuri.NewLen(stateTokenLen)
}
