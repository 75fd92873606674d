// Package models defines the persisted data structures.
package models

import (
	"time"

	"github.com/alexedwards/argon2id"
)

// PasswordSentinelGoogle is stored in place of a password hash for accounts
// created through the Google sign-in flow. Such accounts have no usable local
// password and local authentication must reject them before any hash
// comparison.
const PasswordSentinelGoogle = "google"

// User represents a user account in the system.
// Users authenticate either with a local password or via Google sign-in.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Email is the unique login identifier.
	Email string `gorm:"uniqueIndex;size:255;not null" form:"username"`
	// Password is the Argon2id hashed password, or PasswordSentinelGoogle for
	// accounts that authenticate via Google only.
	Password string `gorm:"size:255;not null" form:"password"`
	// Secret is the user's stored secret. Nil means the user never submitted
	// one; that is distinct from an empty string.
	Secret *string `gorm:"size:1024"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// IsExternalOnly reports whether the account can only authenticate via the
// external identity provider.
func (u *User) IsExternalOnly() bool {
	return u.Password == PasswordSentinelGoogle
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// It uses the default Argon2id parameters for secure password hashing.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams) //nolint:wrapcheck
}

// VerifyPassword verifies a plaintext password against the user's stored
// hashed password using constant-time comparison. A non-nil error means the
// comparison itself failed (for example a malformed stored hash) and must not
// be treated as a simple mismatch.
func (u *User) VerifyPassword(password string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, u.Password) //nolint:wrapcheck
}
