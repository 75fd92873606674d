// Package register provides the handlers for account creation.
package register

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoSecretsApp/GoSecretsApp/internal/auth"
	"github.com/GoSecretsApp/GoSecretsApp/internal/config"
	"github.com/GoSecretsApp/GoSecretsApp/internal/web/handler"
	"github.com/GoSecretsApp/GoSecretsApp/internal/web/handler/login"
	authmiddleware "github.com/GoSecretsApp/GoSecretsApp/internal/web/middleware/auth"
)

// Path is the path to the registration page.
const Path = "/register"

// form is the registration form payload.
type form struct {
	Email    string `form:"username" validate:"required,email"`
	Password string `form:"password" validate:"required,min=1"`
}

// Service is the registration handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	local    *auth.Local
	validate *validator.Validate
}

// Handler is the registration handler.
var Handler = Service{}

// Init initializes the registration handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.local = auth.NewLocal(db)
	s.validate = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Get handles the registration page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	if authmiddleware.CurrentUser(c) != nil {
		return c.Redirect(login.SecretsPath)
	}

	return c.Render("register", fiber.Map{
		"google_enabled": s.cfg.Auth.Google.Enabled,
	}, handler.BaseLayout)
}

// Post handles the registration form submission. A new account is signed in
// right away. An email that already has an account redirects to the login
// page instead of disclosing the conflict on the form.
func (s *Service) Post(c *fiber.Ctx) error {
	payload := new(form)

	if err := c.BodyParser(payload); err != nil {
		return s.renderError(c, "Invalid form data")
	}

	if err := s.validate.Struct(payload); err != nil {
		return s.renderError(c, "Please enter a valid email address and a password")
	}

	user, err := s.local.Register(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return c.Redirect(login.Path)
		}

		log.Error().Err(err).Msg("registration failed")

		return s.renderError(c, "Internal server error")
	}

	if err = handler.EstablishSession(c, s.cfg, user.ID); err != nil {
		log.Error().Err(err).Msg("failed to establish session")
		return c.Redirect(login.Path)
	}

	return c.Redirect(login.SecretsPath)
}

func (s *Service) renderError(c *fiber.Ctx, message string) error {
	return c.Render("register", fiber.Map{
		"google_enabled": s.cfg.Auth.Google.Enabled,
		"error":          message,
	}, handler.BaseLayout)
}
