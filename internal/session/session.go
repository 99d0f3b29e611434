// Package session owns the browser for the lifetime of one scenario.
package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/danielholmes839/storefront-ui/internal/browser"
	"github.com/danielholmes839/storefront-ui/internal/config"
	"github.com/danielholmes839/storefront-ui/internal/locator"
	"github.com/danielholmes839/storefront-ui/internal/pages"
	"github.com/danielholmes839/storefront-ui/internal/waiter"
	"github.com/spf13/afero"
)

// Session is one live browser plus everything built on top of it. It is
// not safe to share between scenarios.
type Session struct {
	Config   *config.Config
	Driver   browser.Driver
	Waiter   *waiter.Waiter
	Locators map[string]locator.Registry
	Logger   *slog.Logger

	started time.Time
}

// Dialer opens the browser backend named in the config.
type Dialer func(cfg *config.Config) (browser.Driver, error)

func DialBrowser(cfg *config.Config) (browser.Driver, error) {
	switch cfg.Backend {
	case config.BackendPlaywright:
		pw, err := browser.LaunchPlaywright(browser.PlaywrightOptions{
			Headless:      cfg.Headless,
			BaseURL:       cfg.BaseURL,
			ActionTimeout: cfg.WaitTimeout,
		})
		if err != nil {
			return nil, err
		}
		return pw, nil
	case config.BackendSelenium:
		wd, err := browser.DialSelenium(browser.SeleniumOptions{
			RemoteURL:   cfg.SeleniumURL,
			BrowserName: cfg.BrowserName,
			Headless:    cfg.Headless,
		})
		if err != nil {
			return nil, err
		}
		return wd, nil
	}
	return nil, fmt.Errorf("unknown browser backend %q", cfg.Backend)
}

// Open starts a browser with dial and wires the waiter and locators from the
// config. fs is used for locator overrides and failure snapshots.
func Open(cfg *config.Config, dial Dialer, fs afero.Fs, logger *slog.Logger) (*Session, error) {
	registries, err := locator.Load(fs, cfg.LocatorsFile)
	if err != nil {
		return nil, err
	}

	startup := time.Now()
	driver, err := dial(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s browser: %w", cfg.Backend, err)
	}
	logger.Info("launched browser", "backend", cfg.Backend, "dur", time.Since(startup).String())

	opts := []waiter.Option{
		waiter.WithDefaultTimeout(cfg.WaitTimeout),
		waiter.WithInterval(cfg.PollInterval),
		waiter.WithRetry(waiter.RetryPolicy{
			Attempts: cfg.StaleAttempts,
			Cooldown: cfg.StaleCooldown,
		}),
		waiter.WithLogger(logger),
	}
	if cfg.ArtifactsDir != "" {
		opts = append(opts, waiter.WithArtifacts(fs, cfg.ArtifactsDir))
	}

	return &Session{
		Config:   cfg,
		Driver:   driver,
		Waiter:   waiter.New(driver, opts...),
		Locators: registries,
		Logger:   logger,
		started:  time.Now(),
	}, nil
}

func (s *Session) LoginPage() *pages.Login {
	return pages.NewLogin(s.Waiter, s.Locators[locator.LoginPage], s.Config)
}

func (s *Session) ExamplePage(url string) *pages.Example {
	return pages.NewExample(s.Waiter, s.Locators[locator.ExamplePage], url)
}

// Close shuts the browser down. Safe to call more than once.
func (s *Session) Close() error {
	if s.Driver == nil {
		return nil
	}
	err := s.Driver.Close()
	s.Driver = nil
	s.Logger.Info("closed browser", "dur", time.Since(s.started).String(), "err", err)
	return err
}
