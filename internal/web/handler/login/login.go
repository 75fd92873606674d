// Package login provides the HTTP handlers for email/password sign-in.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoSecretsApp/GoSecretsApp/internal/auth"
	"github.com/GoSecretsApp/GoSecretsApp/internal/config"
	"github.com/GoSecretsApp/GoSecretsApp/internal/web/handler"
	authmiddleware "github.com/GoSecretsApp/GoSecretsApp/internal/web/middleware/auth"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// SecretsPath is where authenticated users land after signing in.
	SecretsPath = "/secrets"
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	local *auth.Local
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.local = auth.NewLocal(db)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering. Signed-in users are sent straight
// to their secrets page.
func (s *Service) Get(c *fiber.Ctx) error {
	if authmiddleware.CurrentUser(c) != nil {
		return c.Redirect(SecretsPath)
	}

	return c.Render("login", fiber.Map{
		"google_enabled": s.cfg.Auth.Google.Enabled,
	}, handler.BaseLayout)
}

// Post handles the login form submission. Any failed attempt redirects back
// to the login page; rejection reasons are not distinguished to the client so
// the form does not leak which emails are registered.
func (s *Service) Post(c *fiber.Ctx) error {
	creds := auth.Credentials{
		Email:    c.FormValue("username"),
		Password: c.FormValue("password"),
	}

	user, err := s.local.Authenticate(c.UserContext(), creds)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound),
			errors.Is(err, auth.ErrInvalidPassword),
			errors.Is(err, auth.ErrExternalAccount):
			log.Debug().Err(err).Msg("login rejected")
		default:
			log.Error().Err(err).Msg("login failed")
		}

		return c.Redirect(Path)
	}

	if err = handler.EstablishSession(c, s.cfg, user.ID); err != nil {
		log.Error().Err(err).Msg("failed to establish session")
		return c.Redirect(Path)
	}

	return c.Redirect(SecretsPath)
}
