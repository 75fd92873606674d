// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"
)

// defaultSessionExpiry is used when webserver.session.expirytime is not set.
const defaultSessionExpiry = 24 * time.Hour

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv("GO_SECRETS_APP_CONFIG_JSON")

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	applyEnvOverrides(&c)

	err = validate(&c)

	return c, err
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// applyEnvOverrides applies single-value environment overrides on top of the
// file based configuration. These match the variable names the deployment
// environment provides (session secret, postgres connection, google client).
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.Webserver.CookieEncryptionKey = v
	}

	if v := os.Getenv("PG_HOST"); v != "" {
		c.DB.Host = v
	}

	if v := os.Getenv("PG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.DB.Port = port
		}
	}

	if v := os.Getenv("PG_USER"); v != "" {
		c.DB.User = v
	}

	if v := os.Getenv("PG_PASSWORD"); v != "" {
		c.DB.Password = v
	}

	if v := os.Getenv("PG_DATABASE"); v != "" {
		c.DB.Name = v
	}

	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		c.Auth.Google.ClientID = v
	}

	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		c.Auth.Google.ClientSecret = v
	}

	if v := os.Getenv("GOOGLE_CALLBACK_URL"); v != "" {
		c.Auth.Google.RedirectURL = v
	}
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings for the web service and fill defaults.
func validate(c *Config) error {
	// validate webserver listening port
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.CookieEncryptionKey == "" {
		return errors.Wrap(ErrEmptyCookieEncryptionKey, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.Log.AppName == "" {
		c.Log.AppName = "GoSecretsApp"
	}

	if c.Log.ServiceName == "" {
		c.Log.ServiceName = "web"
	}

	return nil
}
