package waiter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielholmes839/storefront-ui/internal/browser"
	"github.com/danielholmes839/storefront-ui/internal/locator"
	"k8s.io/apimachinery/pkg/util/wait"
)

// notYet reports errors that mean the element may still show up.
func notYet(err error) bool {
	return errors.Is(err, browser.ErrNoSuchElement) || errors.Is(err, browser.ErrStaleElement)
}

func (w *Waiter) poll(ctx context.Context, kind, condition, target string, opts []CallOption, check func() (bool, error)) error {
	o := w.callOptions(opts)
	start := time.Now()

	var last error
	err := wait.PollUntilContextTimeout(ctx, w.interval, o.timeout, true, func(context.Context) (bool, error) {
		ok, err := check()
		if err != nil && notYet(err) {
			last = err
			return false, nil
		}
		last = nil
		return ok, err
	})

	switch {
	case err == nil:
		w.logger.Debug("wait succeeded", "target", target, "condition", condition, "dur", time.Since(start).String())
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case wait.Interrupted(err):
		w.dump(kind, target)
		return &TimeoutError{
			Target:    target,
			Condition: condition,
			Timeout:   o.timeout,
			Message:   o.message,
			Err:       last,
		}
	default:
		return fmt.Errorf("waiting for %s to be %s: %w", target, condition, err)
	}
}

// Visible waits until the element is in the DOM and rendered.
func (w *Waiter) Visible(ctx context.Context, loc locator.Locator, opts ...CallOption) (browser.Element, error) {
	var found browser.Element
	err := w.poll(ctx, "visible", "visible", loc.String(), opts, func() (bool, error) {
		el, err := w.driver.FindElement(loc)
		if err != nil {
			return false, err
		}
		visible, err := el.IsDisplayed()
		if err != nil || !visible {
			return false, err
		}
		found = el
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Clickable waits until the element is visible and enabled.
func (w *Waiter) Clickable(ctx context.Context, loc locator.Locator, opts ...CallOption) (browser.Element, error) {
	var found browser.Element
	err := w.poll(ctx, "clickable", "clickable", loc.String(), opts, func() (bool, error) {
		el, err := w.driver.FindElement(loc)
		if err != nil {
			return false, err
		}
		visible, err := el.IsDisplayed()
		if err != nil || !visible {
			return false, err
		}
		enabled, err := el.IsEnabled()
		if err != nil || !enabled {
			return false, err
		}
		found = el
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Present waits until the element is in the DOM, visible or not.
func (w *Waiter) Present(ctx context.Context, loc locator.Locator, opts ...CallOption) (browser.Element, error) {
	var found browser.Element
	err := w.poll(ctx, "present", "present", loc.String(), opts, func() (bool, error) {
		el, err := w.driver.FindElement(loc)
		if err != nil {
			return false, err
		}
		found = el
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Invisible waits until the element is gone from the DOM or hidden.
func (w *Waiter) Invisible(ctx context.Context, loc locator.Locator, opts ...CallOption) error {
	return w.poll(ctx, "invisible", "invisible", loc.String(), opts, func() (bool, error) {
		el, err := w.driver.FindElement(loc)
		if err != nil {
			return errors.Is(err, browser.ErrNoSuchElement), ignoreMissing(err)
		}
		visible, err := el.IsDisplayed()
		if errors.Is(err, browser.ErrStaleElement) {
			return true, nil
		}
		return !visible, err
	})
}

func ignoreMissing(err error) error {
	if errors.Is(err, browser.ErrNoSuchElement) {
		return nil
	}
	return err
}

// TextContains waits until the element's text includes text.
func (w *Waiter) TextContains(ctx context.Context, loc locator.Locator, text string, opts ...CallOption) error {
	condition := fmt.Sprintf("containing %q", text)
	return w.poll(ctx, "text", condition, loc.String(), opts, func() (bool, error) {
		el, err := w.driver.FindElement(loc)
		if err != nil {
			return false, err
		}
		got, err := el.Text()
		if err != nil {
			return false, err
		}
		return strings.Contains(got, text), nil
	})
}

// URLIs waits until the browser's current URL equals url.
func (w *Waiter) URLIs(ctx context.Context, url string, opts ...CallOption) error {
	var got string
	condition := fmt.Sprintf("%q", url)
	err := w.poll(ctx, "url", condition, "current url", opts, func() (bool, error) {
		current, err := w.driver.CurrentURL()
		if err != nil {
			return false, err
		}
		got = current
		return current == url, nil
	})

	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) && timeoutErr.Err == nil {
		timeoutErr.Err = fmt.Errorf("last url was %q", got)
	}
	return err
}
