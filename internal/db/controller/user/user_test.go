package user

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoSecretsApp/GoSecretsApp/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestGetByEmail(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Create(db, &models.User{Email: "a@x.com", Password: "hash"}))

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		email         string
		expectedError error
	}{
		{name: "nil database", dbParam: nil, email: "a@x.com", expectedError: ErrDBNil},
		{name: "missing user", dbParam: db, email: "nobody@x.com", expectedError: ErrUserNotFound},
		{name: "existing user", dbParam: db, email: "a@x.com"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GetByEmail(tc.dbParam, tc.email)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.email, got.Email)
			assert.NotZero(t, got.ID)
		})
	}
}

func TestGetByID(t *testing.T) {
	db := setupTestDB(t)

	u := models.User{Email: "a@x.com", Password: "hash"}
	require.NoError(t, Create(db, &u))

	got, err := GetByID(db, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	_, err = GetByID(db, u.ID+1000)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = GetByID(nil, u.ID)
	assert.ErrorIs(t, err, ErrDBNil)
}

func TestCreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Create(db, &models.User{Email: "a@x.com", Password: "hash"}))

	err := Create(db, &models.User{Email: "a@x.com", Password: "other"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// still exactly one row with that email
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "a@x.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateSecret(t *testing.T) {
	db := setupTestDB(t)

	alice := models.User{Email: "a@x.com", Password: "hash"}
	bob := models.User{Email: "b@x.com", Password: "hash"}
	require.NoError(t, Create(db, &alice))
	require.NoError(t, Create(db, &bob))

	require.NoError(t, UpdateSecret(db, alice.ID, "hello"))

	// only alice's row changed
	got, err := GetByID(db, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Secret)
	assert.Equal(t, "hello", *got.Secret)

	gotBob, err := GetByID(db, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, gotBob.Secret)

	// unknown id
	assert.ErrorIs(t, UpdateSecret(db, 9999, "x"), ErrUserNotFound)

	// empty string is a valid secret, distinct from never submitted
	require.NoError(t, UpdateSecret(db, bob.ID, ""))

	gotBob, err = GetByID(db, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, gotBob.Secret)
	assert.Equal(t, "", *gotBob.Secret)
}
