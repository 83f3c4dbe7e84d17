// Package config resolves process-wide settings once at startup. Values come
// from the environment, optionally seeded from a local .env file, and are
// validated before the server starts.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultSecretKey is the signing secret used when SECRET_KEY is unset. It
// exists so the server boots in development; it must be overridden anywhere
// else.
const DefaultSecretKey = "your-secret-key-change-in-production"

// Config holds all runtime settings. It is treated as immutable once Load
// returns.
type Config struct {
	Port                     string   `env:"PORT"                        envDefault:"8000"                                                        validate:"required,numeric"`
	DatabaseURL              string   `env:"DATABASE_URL"                envDefault:"books_quotes.db"                                             validate:"required"`
	SecretKey                string   `env:"SECRET_KEY"                  envDefault:"your-secret-key-change-in-production"                        validate:"required"`
	Algorithm                string   `env:"ALGORITHM"                   envDefault:"HS256"                                                       validate:"oneof=HS256 HS384 HS512"`
	AccessTokenExpireMinutes int      `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"                                                          validate:"gt=0"`
	LogLevel                 string   `env:"LOG_LEVEL"                   envDefault:"info"                                                        validate:"oneof=debug info warn error"`
	CORSAllowedOrigins       []string `env:"CORS_ALLOWED_ORIGINS"        envDefault:"http://localhost:8080,http://frontend:80,http://localhost:3000" envSeparator:","`
	Argon2                   Argon2   `envPrefix:"ARGON2_"`
}

// Argon2 tunes the password hasher's cost.
type Argon2 struct {
	MemoryKiB   uint32 `env:"MEMORY_KIB"  envDefault:"65536" validate:"min=8"`
	Iterations  uint32 `env:"ITERATIONS"  envDefault:"3"     validate:"min=1"`
	Parallelism uint8  `env:"PARALLELISM" envDefault:"4"     validate:"min=1"`
}

// AccessTokenTTL returns the default lifetime of issued access tokens.
func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// UsesDefaultSecret reports whether the signing secret was left at its
// development default.
func (c Config) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

// Load reads a .env file from the working directory if one exists, then
// parses and validates the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return parse(env.Options{})
}

// FromMap builds a Config from the given variables only, ignoring the
// process environment.
func FromMap(vars map[string]string) (Config, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
