package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode             bool          `env:"TEST_MODE" envDefault:"false"`
	Port                   int           `env:"PORT" envDefault:"9090"`
	RedisURL               string        `env:"REDIS_URL,required"`
	IdentityBaseURL        url.URL       `env:"IDENTITY_BASE_URL,required"`
	IdentityRequestTimeout time.Duration `env:"IDENTITY_REQUEST_TIMEOUT" envDefault:"15s"`
	ResetSessionTTL        time.Duration `env:"RESET_SESSION_TTL" envDefault:"15m"`
	AllowedOrigins         []string      `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}
	return cfg, nil
}
