// Package waiter turns "may not be ready yet" DOM queries into bounded
// explicit waits, and retries actions that race a re-render.
//
// Every wait polls the driver until its condition holds or the timeout
// elapses. Element handles are looked up fresh on every poll and are never
// kept across actions.
package waiter

import (
	"log/slog"
	"time"

	"github.com/danielholmes839/storefront-ui/internal/browser"
	"github.com/spf13/afero"
	"k8s.io/apimachinery/pkg/util/wait"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultInterval = 500 * time.Millisecond
	DefaultCooldown = 3 * time.Second
	DefaultAttempts = 2
)

// RetryPolicy bounds how often an action is redone after a stale element.
// Attempts counts the first try.
type RetryPolicy struct {
	Attempts int
	Cooldown time.Duration
	// Factor multiplies the cooldown after each retry. Zero keeps it fixed.
	Factor float64
}

func (p RetryPolicy) backoff() wait.Backoff {
	return wait.Backoff{
		Duration: p.Cooldown,
		Factor:   p.Factor,
		Steps:    p.Attempts,
	}
}

type Waiter struct {
	driver   browser.Driver
	timeout  time.Duration
	interval time.Duration
	retry    RetryPolicy
	logger   *slog.Logger

	artifacts    afero.Fs
	artifactsDir string
	dumps        int
}

type Option func(*Waiter)

func WithDefaultTimeout(d time.Duration) Option {
	return func(w *Waiter) { w.timeout = d }
}

func WithInterval(d time.Duration) Option {
	return func(w *Waiter) { w.interval = d }
}

func WithRetry(policy RetryPolicy) Option {
	return func(w *Waiter) { w.retry = policy }
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Waiter) { w.logger = logger }
}

// WithArtifacts saves the page source under dir whenever a wait times out.
func WithArtifacts(fs afero.Fs, dir string) Option {
	return func(w *Waiter) {
		w.artifacts = fs
		w.artifactsDir = dir
	}
}

func New(driver browser.Driver, opts ...Option) *Waiter {
	w := &Waiter{
		driver:   driver,
		timeout:  DefaultTimeout,
		interval: DefaultInterval,
		retry: RetryPolicy{
			Attempts: DefaultAttempts,
			Cooldown: DefaultCooldown,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.retry.Attempts < 1 {
		w.retry.Attempts = 1
	}
	return w
}

func (w *Waiter) Driver() browser.Driver {
	return w.driver
}

func (w *Waiter) Timeout() time.Duration {
	return w.timeout
}

// CallOption adjusts a single wait.
type CallOption func(*callOptions)

type callOptions struct {
	timeout time.Duration
	message string
}

// Timeout overrides the default timeout for one call.
func Timeout(d time.Duration) CallOption {
	return func(o *callOptions) { o.timeout = d }
}

// Message prefixes the timeout error of one call.
func Message(msg string) CallOption {
	return func(o *callOptions) { o.message = msg }
}

func (w *Waiter) callOptions(opts []CallOption) callOptions {
	o := callOptions{timeout: w.timeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
