// Package config handles configuration loading for the auth service.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the auth service.
type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    int    `env:"LOG_LEVEL" envDefault:"0"`

	DatabaseDSN string `env:"DATABASE_DSN,required,notEmpty"`

	// JWTSecret signs session tokens. The same key must be used for the
	// lifetime of the process: rotating it invalidates every outstanding
	// session.
	JWTSecret     string        `env:"JWT_SECRET,required,notEmpty"`
	TokenLifetime time.Duration `env:"TOKEN_LIFETIME" envDefault:"168h"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// AllowedOrigins lists the frontend origins permitted to make
	// credentialed cross-site requests.
	AllowedOrigins []string `env:"CLIENT_ORIGINS" envDefault:"http://localhost:5173"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
