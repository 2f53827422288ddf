package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/gommon/random"
	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"

	devAdminPassword = "admin123"
	secretLength     = 32
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	DatabaseURL string `env:"DATABASE_URL, required"`

	JWTSecret string `env:"JWT_SECRET"`

	AdminUsername string `env:"ADMIN_USERNAME, default=admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	BcryptCost int    `env:"BCRYPT_COST, default=10"`
	BodyLimit  string `env:"BODY_LIMIT,  default=10M"`

	// GeneratedSecret is set when JWTSecret was not configured and a random
	// one was generated for this process.
	GeneratedSecret bool
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = random.String(secretLength)
		cfg.GeneratedSecret = true
	}
	if cfg.AdminPassword == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("config: ADMIN_PASSWORD is required outside development")
		}
		cfg.AdminPassword = devAdminPassword
	}
	return &cfg, nil
}
