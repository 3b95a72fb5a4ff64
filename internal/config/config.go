package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisURL    string `env:"REDIS_URL" envDefault:"localhost:6379"`

	// Server
	Port int `env:"PORT" envDefault:"3000"`

	// Sessions
	SessionTTLHours int    `env:"SESSION_TTL_HOURS" envDefault:"24"`
	CookieName      string `env:"SESSION_COOKIE_NAME" envDefault:"ledgerline_session"`
	CookieSecure    bool   `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	// Password hashing
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
