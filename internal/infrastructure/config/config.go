package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"JWT_TTL,    default=24h"`

	// CEERate is the market rate applied to credits, in € per MWh cumac.
	CEERate float64 `env:"CEE_RATE_EUR_PER_MWH, default=8.5"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cee_visits"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SMTPConfig controls reset-mail delivery. With an empty Addr the mailer
// falls back to logging the token, which is the development behaviour.
type SMTPConfig struct {
	Addr string `env:"SMTP_ADDR"`
	From string `env:"SMTP_FROM, default=no-reply@cee-visits.local"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether internal error detail must be withheld from
// API responses.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
