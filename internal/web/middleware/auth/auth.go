package auth

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoSecretsApp/GoSecretsApp/internal/db/models"
	"github.com/GoSecretsApp/GoSecretsApp/internal/web/session"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// localsKey is the fiber.Locals key carrying the signed-in user.
const localsKey = "CurrentUser"

// LoginPath is where unauthenticated requests to protected pages are sent.
const LoginPath = "/login"

// New returns a middleware that resolves the session cookie to a user
// account and stores it in fiber.Locals for handlers and templates. It
// never redirects; requests without a valid session simply continue
// anonymously. A session referencing a deleted account counts as anonymous.
func New(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(CookieName)
		if sessionID == "" {
			return c.Next()
		}

		sessData := new(session.Data)
		if err := sessData.Read(sessionID); err != nil {
			return c.Next()
		}

		user, err := sessData.Resolve(db.WithContext(c.UserContext()))
		if err != nil {
			return c.Next()
		}

		c.Locals(localsKey, user)

		return c.Next()
	}
}

// RequireAuthenticated guards protected routes, redirecting anonymous
// requests to the login page.
func RequireAuthenticated(c *fiber.Ctx) error {
	if CurrentUser(c) == nil {
		return c.Redirect(LoginPath)
	}

	return c.Next()
}

// CurrentUser returns the signed-in user for the request, or nil for
// anonymous requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsKey).(*models.User)
	return user
}
