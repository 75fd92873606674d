package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	usercontroller "github.com/GoSecretsApp/GoSecretsApp/internal/db/controller/user"
	"github.com/GoSecretsApp/GoSecretsApp/internal/db/models"
)

// Local handles email/password authentication against the local database.
type Local struct {
	db *gorm.DB
}

var _ Strategy = (*Local)(nil)

// NewLocal creates a new local authentication strategy.
func NewLocal(db *gorm.DB) *Local {
	return &Local{
		db: db,
	}
}

// Authenticate authenticates a user against the local database.
// Accounts carrying the external sentinel password are rejected with
// ErrExternalAccount before any hash comparison.
func (p *Local) Authenticate(ctx context.Context, creds Credentials) (*models.User, error) {
	user, err := usercontroller.GetByEmail(p.db.WithContext(ctx), creds.Email)
	if err != nil {
		if errors.Is(err, usercontroller.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if user.IsExternalOnly() {
		return nil, ErrExternalAccount
	}

	match, err := user.VerifyPassword(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if !match {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

// Register creates a new local user and returns it. A pre-existing account
// with the same email fails with ErrEmailTaken; the database unique index
// covers the race of two concurrent registrations passing the check.
func (p *Local) Register(ctx context.Context, email, password string) (*models.User, error) {
	db := p.db.WithContext(ctx)

	_, err := usercontroller.GetByEmail(db, email)
	if err == nil {
		return nil, ErrEmailTaken
	}

	if !errors.Is(err, usercontroller.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := models.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
	}

	if err := usercontroller.Create(db, &user); err != nil {
		if errors.Is(err, usercontroller.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}
