package config

import (
	"time"

	"github.com/GoSecretsApp/GoSecretsApp/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath           bool    // use clean path middleware to allow multi slash requests
	DisableRecover      bool    // disable recover middleware
	Domain              string  // domain name for the webserver
	Port                int     // listening port for the webserver
	ShutDownTime        int     // wait time for shutdown
	URL                 string  // base url for the webserver
	CookieEncryptionKey string  // encryption key for cookies, also the session signing secret
	Session             Session // session settings
}

// Auth groups the authentication provider settings.
type Auth struct {
	Google GoogleAuth
}

// GoogleAuth holds the Google OIDC client settings.
type GoogleAuth struct {
	Enabled      bool
	ProviderURL  string // issuer URL, defaults to https://accounts.google.com
	ClientID     string
	ClientSecret string
	RedirectURL  string // callback URL registered with the provider
	Scopes       []string
}
