package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoSecretsApp/GoSecretsApp/internal/config"
	authmiddleware "github.com/GoSecretsApp/GoSecretsApp/internal/web/middleware/auth"
	"github.com/GoSecretsApp/GoSecretsApp/internal/web/session"
)

// EstablishSession creates a server-side session for the user and sets the
// session cookie on the response. Login, registration and the Google
// callback all sign users in through this path.
func EstablishSession(c *fiber.Ctx, cfg *config.Config, userID uint64) error {
	sessionID, err := session.GenerateSessionID()
	if err != nil {
		return err
	}

	userSession := &session.Data{
		UserID: userID,
	}

	if err = userSession.Write(sessionID, cfg.Webserver.Session.ExpiryTime); err != nil {
		return err
	}

	cookieSettings := &fiber.Cookie{
		Name:     authmiddleware.CookieName,
		Value:    sessionID,
		MaxAge:   int(cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax", // TODO: make this configurable
	}

	if cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return nil
}

// ClearSession deletes the server-side session for the request, if any, and
// expires the session cookie.
func ClearSession(c *fiber.Ctx) error {
	var err error

	sessionID := c.Cookies(authmiddleware.CookieName)
	if sessionID != "" {
		err = session.Destroy(sessionID)
	}

	c.Cookie(&fiber.Cookie{
		Name:     authmiddleware.CookieName,
		Value:    "",
		MaxAge:   -1,
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return err
}
