// Package secrets provides the handlers for viewing and submitting the
// per-user secret. All routes here require a signed-in user.
package secrets

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoSecretsApp/GoSecretsApp/internal/config"
	usercontroller "github.com/GoSecretsApp/GoSecretsApp/internal/db/controller/user"
	"github.com/GoSecretsApp/GoSecretsApp/internal/web/handler"
	authmiddleware "github.com/GoSecretsApp/GoSecretsApp/internal/web/middleware/auth"
)

const (
	// Path is the path to the secrets page.
	Path = "/secrets"

	// SubmitPath is the path to the secret submission form.
	SubmitPath = "/submit"

	// placeholderSecret is shown to users who haven't stored a secret yet.
	placeholderSecret = "You haven't submitted a secret yet. Why not share one?"
)

// Service is the secrets handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the secrets handler.
var Handler = Service{}

// Init initializes the secrets handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, authmiddleware.RequireAuthenticated, s.Get)
	app.Get(SubmitPath, authmiddleware.RequireAuthenticated, s.GetSubmit)
	app.Post(SubmitPath, authmiddleware.RequireAuthenticated, s.PostSubmit)

	return nil
}

// Get renders the signed-in user's secret, or a placeholder if none is
// stored yet.
func (s *Service) Get(c *fiber.Ctx) error {
	user := authmiddleware.CurrentUser(c)

	secret := placeholderSecret
	if user.Secret != nil {
		secret = *user.Secret
	}

	return c.Render("secrets", fiber.Map{
		"secret": secret,
	}, handler.BaseLayout)
}

// GetSubmit renders the secret submission form.
func (s *Service) GetSubmit(c *fiber.Ctx) error {
	user := authmiddleware.CurrentUser(c)

	current := ""
	if user.Secret != nil {
		current = *user.Secret
	}

	return c.Render("submit", fiber.Map{
		"secret": current,
	}, handler.BaseLayout)
}

// PostSubmit stores the submitted secret on the signed-in user's account,
// replacing any previous value.
func (s *Service) PostSubmit(c *fiber.Ctx) error {
	user := authmiddleware.CurrentUser(c)
	secret := c.FormValue("secret")

	err := usercontroller.UpdateSecret(s.db.WithContext(c.UserContext()), user.ID, secret)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to store secret")
		return c.Status(fiber.StatusInternalServerError).Render("submit", fiber.Map{
			"secret": secret,
			"error":  "Internal server error",
		}, handler.BaseLayout)
	}

	return c.Redirect(Path)
}
