package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage"
	"gorm.io/gorm"

	usercontroller "github.com/GoSecretsApp/GoSecretsApp/internal/db/controller/user"
	"github.com/GoSecretsApp/GoSecretsApp/internal/db/models"
)

// Store is the global session store instance.
var Store *session.Store

// ErrNoSession is returned when no session data exists for a session ID.
var ErrNoSession = errors.New("no session data")

// Data represents the server-side session payload. Only the user ID is
// persisted; the account itself is reloaded from the database on each
// request so stale or deleted users never stay signed in.
type Data struct {
	UserID uint64
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	if len(byteData) == 0 {
		return ErrNoSession
	}

	return json.Unmarshal(byteData, s)
}

// Resolve loads the account the session refers to from the database.
func (s *Data) Resolve(db *gorm.DB) (*models.User, error) {
	return usercontroller.GetByID(db, s.UserID)
}

// Destroy removes the session data for the given session ID.
func Destroy(sessionID string) error {
	return Store.Storage.Delete(sessionID)
}

// Init initializes the session store with the provided storage backend.
func Init(storage storage.Storage) {
	if storage == nil {
		panic("storage is nil")
	}

	Store = session.New(session.Config{
		Storage: storage,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
