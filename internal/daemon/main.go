// Package daemon wires the database, session storage and web service
// together and runs them.
package daemon

import (
	"fmt"

	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoSecretsApp/GoSecretsApp/internal/config"
	"github.com/GoSecretsApp/GoSecretsApp/internal/db/dsn"
	"github.com/GoSecretsApp/GoSecretsApp/internal/db/models"
	"github.com/GoSecretsApp/GoSecretsApp/internal/web"
	"github.com/GoSecretsApp/GoSecretsApp/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go d.webService.WaitShutdown()

	return d.webService.Start(addr)
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	dbDriver := gormpostgres.Open(dsn.Create(cfg))

	// TranslateError maps driver specific unique violations to
	// gorm.ErrDuplicatedKey, which the registration flow relies on.
	db, err := gorm.Open(dbDriver, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	if err = db.AutoMigrate(&models.User{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	// server-side sessions live next to the users in postgres
	sessionStorage := sessionpostgres.New(sessionpostgres.Config{
		ConnectionURI: dsn.CreateURI(cfg),
		Table:         "sessions",
	})

	session.Init(sessionStorage)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}
}
