package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrMissingToken is returned when TELEGRAM_BOT_TOKEN is not set.
var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

type Config struct {
	Token       string        `env:"TELEGRAM_BOT_TOKEN"`
	WebAppURL   string        `env:"QRCRAFTER_WEB_APP_URL" envDefault:"https://qrcrafter.vercel.app"`
	RatingURL   string        `env:"QRCRAFTER_RATING_URL" envDefault:"https://play.google.com/store/apps/details?id=com.appkadag.qrcrafter"`
	PollTimeout time.Duration `env:"TELEGRAM_POLL_TIMEOUT" envDefault:"10s"`
	LogLevel    slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat   string        `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom reads the configuration from environ instead of the process
// environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	if err := checkURL("QRCRAFTER_WEB_APP_URL", c.WebAppURL); err != nil {
		return err
	}
	if err := checkURL("QRCRAFTER_RATING_URL", c.RatingURL); err != nil {
		return err
	}
	if c.PollTimeout <= 0 {
		return fmt.Errorf("TELEGRAM_POLL_TIMEOUT must be positive, got %s", c.PollTimeout)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Telegram only opens https links from buttons and web apps.
func checkURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute https url, got %q", name, raw)
	}
	return nil
}
