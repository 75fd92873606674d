package auth

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoSecretsApp/GoSecretsApp/internal/db/models"
)

func TestGoogleFindOrCreateUser(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	g := &Google{db: db}
	ctx := context.Background()

	created, err := g.findOrCreateUser(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.PasswordSentinelGoogle, created.Password)
	assert.Nil(t, created.Secret)

	// a second sign-in resolves to the same account
	again, err := g.findOrCreateUser(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGoogleFindOrCreateUserKeepsLocalAccount(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	hash, err := models.HashPassword("correct horse")
	require.NoError(t, err)

	existing := models.User{Email: "alice@example.com", Password: hash}
	require.NoError(t, db.Create(&existing).Error)

	g := &Google{db: db}

	got, err := g.findOrCreateUser(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
	assert.Equal(t, hash, got.Password)
}
