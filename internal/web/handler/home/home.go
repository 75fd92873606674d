// Package home provides the handler for the landing page.
package home

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoSecretsApp/GoSecretsApp/internal/config"
	"github.com/GoSecretsApp/GoSecretsApp/internal/web/handler"
	authmiddleware "github.com/GoSecretsApp/GoSecretsApp/internal/web/middleware/auth"
)

// Service is the home handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the home handler.
var Handler = Service{}

// Init initializes the home handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg

	app.Get(handler.RootPath, s.Get)

	return nil
}

// Get renders the landing page.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render("home", fiber.Map{
		"signed_in": authmiddleware.CurrentUser(c) != nil,
	}, handler.BaseLayout)
}
