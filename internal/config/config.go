package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	URL      string `yaml:"url" env:"REGIONFLAGS_DATABASE_URL"` // overrides the fields below
	Host     string `yaml:"host" env:"REGIONFLAGS_DB_HOST"`
	Port     int    `yaml:"port" env:"REGIONFLAGS_DB_PORT"`
	User     string `yaml:"user" env:"REGIONFLAGS_DB_USER"`
	Password string `yaml:"password" env:"REGIONFLAGS_DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"REGIONFLAGS_DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"REGIONFLAGS_DB_SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// ParseEnv overlays environment variables onto target.
// Unset variables leave the field unchanged.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
