// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Addr      string `env:"ADDR" envDefault:":8080"`
	DBPath    string `env:"DB_PATH" envDefault:"algorithmia.sqlite3"`
	LogPath   string `env:"LOG_PATH"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppEnv    string `env:"APP_ENV" envDefault:"production"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	CatalogCacheSize int           `env:"CATALOG_CACHE_SIZE" envDefault:"256"`
	CatalogCacheTTL  time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`

	EnforceRequiredItems bool   `env:"ENFORCE_REQUIRED_ITEMS" envDefault:"false"`
	AdminEmail           string `env:"ADMIN_EMAIL" envDefault:"admin@algorithmia.local"`
	SeedCatalog          bool   `env:"SEED_CATALOG" envDefault:"true"`
}

// Load reads .env files (when present) and parses the environment into a Config.
// Variables already set in the process environment take precedence over .env.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR must not be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH must not be empty"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	if c.CatalogCacheSize <= 0 {
		errs = append(errs, fmt.Errorf("CATALOG_CACHE_SIZE must be positive, got %d", c.CatalogCacheSize))
	}
	if c.CatalogCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("CATALOG_CACHE_TTL must not be negative, got %s", c.CatalogCacheTTL))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}
	if !strings.Contains(c.AdminEmail, "@") {
		errs = append(errs, fmt.Errorf("ADMIN_EMAIL is not an email address: %q", c.AdminEmail))
	}
	return errors.Join(errs...)
}

// IsDevelopment reports whether error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, EnvDevelopment)
}
