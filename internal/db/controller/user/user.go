// Package user provides database operations for user accounts.
// Every operation is a single parameterized statement; the uniqueness of the
// email column is enforced by the database and surfaces as ErrEmailTaken.
package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoSecretsApp/GoSecretsApp/internal/db/models"
)

const (
	whereEmail = "email = ?"
	whereID    = "id = ?"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when creating a user whose email already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByEmail retrieves a user by exact email match.
func GetByEmail(db *gorm.DB, email string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User

	result := db.Where(whereEmail, email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &user, nil
}

// GetByID retrieves a user by its primary key.
func GetByID(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User

	result := db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &user, nil
}

// Create inserts a new user row. Two concurrent registrations of the same
// email may both pass an existence check; the unique index is the safety net
// and the losing insert comes back as ErrEmailTaken.
func Create(db *gorm.DB, user *models.User) error {
	if db == nil {
		return ErrDBNil
	}

	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}

		return err
	}

	return nil
}

// UpdateSecret overwrites the secret of the user with the given id.
// The id must come from the resolved session, never from client input.
func UpdateSecret(db *gorm.DB, id uint64, secret string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.User{}).Where(whereID, id).Update("secret", secret)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
