package waiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielholmes839/storefront-ui/internal/browser"
	"github.com/danielholmes839/storefront-ui/internal/locator"
	"k8s.io/apimachinery/pkg/util/wait"
)

// withRetry runs the wait+action in fn, redoing it after the retry cooldown
// while it fails with a stale element.
func (w *Waiter) withRetry(ctx context.Context, action string, loc locator.Locator, opts []CallOption, fn func() error) error {
	attempts := 0
	start := time.Now()
	var stale error

	err := wait.ExponentialBackoffWithContext(ctx, w.retry.backoff(), func(context.Context) (bool, error) {
		attempts++
		err := fn()
		if errors.Is(err, browser.ErrStaleElement) && !errors.Is(err, ErrTimeout) {
			stale = err
			w.logger.Warn("stale element",
				"action", action,
				"locator", loc.String(),
				"attempt", attempts,
				"cooldown", w.retry.Cooldown.String(),
			)
			return false, nil
		}
		return err == nil, err
	})

	if err == nil || ctx.Err() != nil || stale == nil || !wait.Interrupted(err) {
		return err
	}

	o := w.callOptions(opts)
	return &TimeoutError{
		Target:    loc.String(),
		Condition: action,
		Timeout:   o.timeout,
		Message:   o.message,
		Attempts:  attempts,
		Elapsed:   time.Since(start),
		Err:       stale,
	}
}

// actionError names the action and locator of an error returned by the
// element itself. Errors from the wait before it already carry both.
func actionError(action string, loc locator.Locator, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", action, loc, err)
}

// Click waits for the element to be clickable and clicks it.
func (w *Waiter) Click(ctx context.Context, loc locator.Locator, opts ...CallOption) error {
	return w.withRetry(ctx, "clicked", loc, opts, func() error {
		el, err := w.Clickable(ctx, loc, opts...)
		if err != nil {
			return err
		}
		return actionError("click", loc, el.Click())
	})
}

// Clear waits for the element to be clickable and clears it.
func (w *Waiter) Clear(ctx context.Context, loc locator.Locator, opts ...CallOption) error {
	return w.withRetry(ctx, "cleared", loc, opts, func() error {
		el, err := w.Clickable(ctx, loc, opts...)
		if err != nil {
			return err
		}
		return actionError("clear", loc, el.Clear())
	})
}

// Input replaces the field's value with text.
func (w *Waiter) Input(ctx context.Context, loc locator.Locator, text string, opts ...CallOption) error {
	return w.withRetry(ctx, "filled", loc, opts, func() error {
		el, err := w.Clickable(ctx, loc, opts...)
		if err != nil {
			return err
		}
		if err := el.Clear(); err != nil {
			return actionError("clear", loc, err)
		}
		return actionError("send keys to", loc, el.SendKeys(text))
	})
}

// Text waits for the element to be visible and returns its text.
func (w *Waiter) Text(ctx context.Context, loc locator.Locator, opts ...CallOption) (string, error) {
	var text string
	err := w.withRetry(ctx, "read", loc, opts, func() error {
		el, err := w.Visible(ctx, loc, opts...)
		if err != nil {
			return err
		}
		text, err = el.Text()
		return actionError("read text of", loc, err)
	})
	return text, err
}

// ScrollTo scrolls the element into view. It does not wait for the element.
func (w *Waiter) ScrollTo(ctx context.Context, loc locator.Locator) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	el, err := w.driver.FindElement(loc)
	if err != nil {
		return fmt.Errorf("scroll to %s: %w", loc, err)
	}
	return actionError("scroll to", loc, el.ScrollIntoView())
}

func (w *Waiter) ScrollToTop(ctx context.Context) error {
	return w.script(ctx, browser.ScrollTopScript)
}

func (w *Waiter) ScrollToBottom(ctx context.Context) error {
	return w.script(ctx, browser.ScrollBottomScript)
}

func (w *Waiter) script(ctx context.Context, script string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := w.driver.ExecuteScript(script)
	return err
}
