// Package config reads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DevJWTSecret is the signing secret used when JWT_SECRET is unset.
const DevJWTSecret = "dev_secret_change_me"

// Config holds every setting the server reads at startup.
type Config struct {
	Port         string `env:"PORT" envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv       string `env:"APP_ENV" envDefault:"development"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	JWTSecret  string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieName string        `env:"COOKIE_NAME" envDefault:"scramble_session"`

	// Empty paths mean the embedded lists.
	RootWordsFile  string `env:"ROOT_WORDS_FILE"`
	DictionaryFile string `env:"DICTIONARY_FILE"`
	// When set, the dictionary is served from this SQLite file.
	DictionaryDB string `env:"DICTIONARY_DB"`
	Language     string `env:"DICTIONARY_LANG" envDefault:"en"`

	DailySalt string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	// bcrypt hash guarding /debug/words; empty disables the endpoint.
	OperatorPasswordHash string `env:"OPERATOR_PASSWORD_HASH"`
}

// Production reports whether APP_ENV is "production".
func (c Config) Production() bool { return c.AppEnv == "production" }

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port == "" {
		return errors.New("config: PORT must not be empty")
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	if c.Production() && c.JWTSecret == DevJWTSecret {
		return errors.New("config: JWT_SECRET must be set in production")
	}
	return nil
}
