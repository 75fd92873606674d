// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/GoSecretsApp/GoSecretsApp/internal/config"
)

// Create builds the keyword/value Data Source Name used by the gorm postgres driver.
func Create(cfg *config.Config) string {
	out := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
	)

	if cfg.DB.Extras != "" {
		out += " " + cfg.DB.Extras
	}

	return out
}

// CreateURI builds the URI form of the Data Source Name, used by the session
// storage backend. The keyword extras ("sslmode=disable") become the query
// string.
func CreateURI(cfg *config.Config) string {
	out := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
	)

	if cfg.DB.Extras != "" {
		out += "?" + strings.Join(strings.Fields(cfg.DB.Extras), "&")
	}

	return out
}
