package google

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoSecretsApp/GoSecretsApp/internal/auth"
	"github.com/GoSecretsApp/GoSecretsApp/internal/config"
	"github.com/GoSecretsApp/GoSecretsApp/internal/web/handler"
	"github.com/GoSecretsApp/GoSecretsApp/internal/web/handler/login"
)

const (
	// LoginPath is the path that initiates the Google sign-in flow.
	LoginPath = "/auth/google"

	// CallbackPath is the path Google redirects back to after consent.
	CallbackPath = "/auth/google/secrets"

	// stateTTL bounds how long an issued state token stays valid.
	stateTTL = 5 * time.Minute

	// stateCleanupInterval is how often expired state tokens are swept.
	stateCleanupInterval = time.Minute
)

// Service is the Google authentication handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	provider *auth.Google

	stateMu    sync.Mutex
	stateStore map[string]time.Time
}

// Handler is the Google authentication handler.
var Handler = Service{
	stateStore: make(map[string]time.Time),
}

// Init initializes the Google authentication handler. When the provider is
// disabled or unreachable the routes are not registered and the rest of the
// application keeps working with local authentication only.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg

	googleConfig := auth.GoogleConfig{
		Enabled:      cfg.Auth.Google.Enabled,
		ProviderURL:  cfg.Auth.Google.ProviderURL,
		ClientID:     cfg.Auth.Google.ClientID,
		ClientSecret: cfg.Auth.Google.ClientSecret,
		RedirectURL:  cfg.Auth.Google.RedirectURL,
		Scopes:       cfg.Auth.Google.Scopes,
	}

	provider, err := auth.NewGoogle(context.Background(), &googleConfig, db)
	if err != nil {
		if errors.Is(err, auth.ErrGoogleDisabled) {
			log.Info().Msg("google authentication is disabled by configuration")
		} else {
			log.Warn().Err(err).Msg("failed to initialize google provider, google sign-in disabled")
		}

		return nil
	}

	s.provider = provider

	log.Info().Msg("google authentication provider initialized")

	app.Get(LoginPath, s.Login)
	app.Get(CallbackPath, s.Callback)

	go s.cleanupStates()

	return nil
}

// Login issues a state token and redirects to Google's consent screen.
func (s *Service) Login(c *fiber.Ctx) error {
	if s.provider == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("Google authentication is not available")
	}

	state := auth.GenerateStateToken()

	s.stateMu.Lock()
	s.stateStore[state] = time.Now().Add(stateTTL)
	s.stateMu.Unlock()

	return c.Redirect(s.provider.AuthCodeURL(state))
}

// Callback handles the redirect back from Google. On success the matched or
// newly created account is signed in and sent to the secrets page; any
// failure lands on the login page.
func (s *Service) Callback(c *fiber.Ctx) error {
	if s.provider == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("Google authentication is not available")
	}

	code := c.Query("code")
	state := c.Query("state")

	if code == "" || state == "" {
		log.Error().Msg("missing code or state in google callback")
		return c.Redirect(login.Path)
	}

	if !s.consumeState(state) {
		log.Error().Msg("invalid or expired state token in google callback")
		return c.Redirect(login.Path)
	}

	user, err := s.provider.Authenticate(c.UserContext(), auth.Credentials{Code: code})
	if err != nil {
		log.Error().Err(err).Msg("google authentication failed")
		return c.Redirect(login.Path)
	}

	if err = handler.EstablishSession(c, s.cfg, user.ID); err != nil {
		log.Error().Err(err).Msg("failed to establish session")
		return c.Redirect(login.Path)
	}

	return c.Redirect(login.SecretsPath)
}

// consumeState validates a state token and removes it so it cannot be
// replayed.
func (s *Service) consumeState(state string) bool {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	expiration, exists := s.stateStore[state]
	if !exists {
		return false
	}

	delete(s.stateStore, state)

	return time.Now().Before(expiration)
}

// cleanupStates periodically drops expired state tokens from abandoned
// sign-in attempts.
func (s *Service) cleanupStates() {
	ticker := time.NewTicker(stateCleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		s.stateMu.Lock()
		for state, expiration := range s.stateStore {
			if now.After(expiration) {
				delete(s.stateStore, state)
			}
		}
		s.stateMu.Unlock()
	}
}
