package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPlaywright = "playwright"
	BackendSelenium   = "selenium"
)

// Credentials are read once when the config is loaded.
type Credentials struct {
	Email           string
	Password        string
	OTP             string
	InvalidEmail    string
	InvalidPassword string
}

type Config struct {
	BaseURL     string
	Credentials Credentials

	ExpectedTitle string
	ExpectedError string
	ExampleURL    string

	Backend     string
	Headless    bool
	SeleniumURL string
	BrowserName string

	WaitTimeout   time.Duration
	PollInterval  time.Duration
	StaleCooldown time.Duration
	StaleAttempts int

	LocatorsFile string
	ArtifactsDir string
	LogLevel     slog.Level
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads a .env file when present and builds the config from the process
// environment.
func Load() (*Config, error) {
	godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds the config from the given environment lookup.
func FromLookup(lookup LookupFunc) (*Config, error) {
	env := reader{lookup: lookup}

	cfg := &Config{
		BaseURL: env.string("BASE_URL", ""),
		Credentials: Credentials{
			Email:           env.string("EMAIL", ""),
			Password:        env.string("PASSWORD", ""),
			OTP:             env.string("OTP", ""),
			InvalidEmail:    env.string("INVALID_EMAIL", ""),
			InvalidPassword: env.string("INVALID_PASSWORD", ""),
		},
		ExpectedTitle: env.string("EXPECTED_TITLE", "Test Title"),
		ExpectedError: env.string("EXPECTED_ERROR", "Error Message"),
		ExampleURL:    env.string("EXAMPLE_URL", "https://example.com/"),
		Backend:       env.string("BROWSER", BackendPlaywright),
		Headless:      env.bool("HEADLESS", true),
		SeleniumURL:   env.string("SELENIUM_URL", "http://localhost:4444/wd/hub"),
		BrowserName:   env.string("BROWSER_NAME", "chrome"),
		WaitTimeout:   env.duration("WAIT_TIMEOUT", 30*time.Second),
		PollInterval:  env.duration("POLL_INTERVAL", 500*time.Millisecond),
		StaleCooldown: env.duration("STALE_COOLDOWN", 3*time.Second),
		StaleAttempts: env.int("STALE_ATTEMPTS", 2),
		LocatorsFile:  env.string("LOCATORS_FILE", ""),
		ArtifactsDir:  env.string("ARTIFACTS_DIR", ""),
		LogLevel:      env.level("LOG_LEVEL", slog.LevelInfo),
	}

	if len(env.errs) > 0 {
		return nil, errors.Join(env.errs...)
	}

	if cfg.BaseURL != "" && !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		return errors.New("BASE_URL is required")
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid BASE_URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid BASE_URL: %q is not absolute", cfg.BaseURL)
	}

	switch cfg.Backend {
	case BackendPlaywright, BackendSelenium:
	default:
		return fmt.Errorf("unknown BROWSER %q", cfg.Backend)
	}

	if cfg.WaitTimeout <= 0 {
		return errors.New("WAIT_TIMEOUT must be positive")
	}
	if cfg.PollInterval <= 0 {
		return errors.New("POLL_INTERVAL must be positive")
	}
	if cfg.StaleAttempts < 1 {
		return errors.New("STALE_ATTEMPTS must be at least 1")
	}

	return nil
}

// StoreURL is where a successful login lands.
func (cfg *Config) StoreURL() string {
	return cfg.BaseURL + "mystore"
}

type reader struct {
	lookup LookupFunc
	errs   []error
}

func (r *reader) string(key, fallback string) string {
	v, ok := r.lookup(key)
	if !ok {
		return fallback
	}
	return v
}

func (r *reader) bool(key string, fallback bool) bool {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func (r *reader) int(key string, fallback int) int {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return i
}

func (r *reader) duration(key string, fallback time.Duration) time.Duration {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func (r *reader) level(key string, fallback slog.Level) slog.Level {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return level
}
