package waiter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/danielholmes839/storefront-ui/internal/browser"
	"github.com/danielholmes839/storefront-ui/internal/browser/browsertest"
	"github.com/danielholmes839/storefront-ui/internal/locator"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const testTimeout = 100 * time.Millisecond

var (
	email   = locator.ID("email")
	signIn  = locator.XPath("//button[normalize-space()='Sign In']")
	spinner = locator.CSS(".spinner")
)

func newTestWaiter(d *browsertest.Driver, opts ...Option) *Waiter {
	defaults := []Option{
		WithDefaultTimeout(testTimeout),
		WithInterval(5 * time.Millisecond),
		WithRetry(RetryPolicy{Attempts: 2, Cooldown: time.Millisecond}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return New(d, append(defaults, opts...)...)
}

func TestNewDefaults(t *testing.T) {
	w := New(browsertest.New())
	assert.Equal(t, DefaultTimeout, w.Timeout())
	assert.Equal(t, DefaultInterval, w.interval)
	assert.Equal(t, RetryPolicy{Attempts: 2, Cooldown: 3 * time.Second}, w.retry)

	w = New(browsertest.New(), WithRetry(RetryPolicy{}))
	assert.Equal(t, 1, w.retry.Attempts)
}

func TestVisibleWaitsForElement(t *testing.T) {
	d := browsertest.New()
	el := d.Add(email)
	el.AppearAfter = 2
	el.ShowAfter = 1

	got, err := newTestWaiter(d).Visible(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, d.Count("find id=email"))
}

func TestVisibleTimesOut(t *testing.T) {
	d := browsertest.New()
	w := newTestWaiter(d)

	start := time.Now()
	_, err := w.Visible(context.Background(), email)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, browser.ErrNoSuchElement)
	assert.Less(t, elapsed, testTimeout+time.Second)
	assert.Contains(t, err.Error(), "timed out after 100ms waiting for id=email to be visible")

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, testTimeout, timeoutErr.Timeout)
	assert.Equal(t, "id=email", timeoutErr.Target)
}

func TestVisibleHiddenElementTimesOut(t *testing.T) {
	d := browsertest.New()
	d.Add(email).Visible = false

	_, err := newTestWaiter(d).Visible(context.Background(), email)
	require.ErrorIs(t, err, ErrTimeout)

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.NoError(t, timeoutErr.Err)
}

func TestCallOptions(t *testing.T) {
	d := browsertest.New()
	w := newTestWaiter(d, WithDefaultTimeout(time.Hour))

	_, err := w.Visible(context.Background(), email,
		Timeout(20*time.Millisecond),
		Message("login form never rendered"),
	)
	require.ErrorIs(t, err, ErrTimeout)
	assert.True(t, strings.HasPrefix(err.Error(), "login form never rendered: timed out after 20ms"), err.Error())
}

func TestClickable(t *testing.T) {
	d := browsertest.New()
	d.Add(signIn).Enabled = false
	w := newTestWaiter(d)

	_, err := w.Clickable(context.Background(), signIn)
	require.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "to be clickable")

	d.Element(signIn).Enabled = true
	el, err := w.Clickable(context.Background(), signIn)
	require.NoError(t, err)
	assert.NotNil(t, el)
}

func TestPresentIgnoresVisibility(t *testing.T) {
	d := browsertest.New()
	d.Add(spinner).Visible = false

	el, err := newTestWaiter(d).Present(context.Background(), spinner)
	require.NoError(t, err)
	assert.NotNil(t, el)
	assert.Zero(t, d.Count("displayed"))
}

func TestInvisible(t *testing.T) {
	d := browsertest.New()
	w := newTestWaiter(d)

	require.NoError(t, w.Invisible(context.Background(), spinner))

	d.Add(spinner)
	err := w.Invisible(context.Background(), spinner)
	require.ErrorIs(t, err, ErrTimeout)

	d.Element(spinner).Visible = false
	require.NoError(t, w.Invisible(context.Background(), spinner))
}

func TestTextContains(t *testing.T) {
	d := browsertest.New()
	msg := locator.CSS(".error-message")
	d.Add(msg).Content = "Error Message: unknown account"
	w := newTestWaiter(d)

	require.NoError(t, w.TextContains(context.Background(), msg, "unknown account"))

	err := w.TextContains(context.Background(), msg, "locked")
	require.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), `to be containing "locked"`)
}

func TestURLIs(t *testing.T) {
	d := browsertest.New()
	d.URL = "https://shop.example.com/login"
	w := newTestWaiter(d)

	err := w.URLIs(context.Background(), "https://shop.example.com/mystore")
	require.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), `last url was "https://shop.example.com/login"`)

	d.URL = "https://shop.example.com/mystore"
	require.NoError(t, w.URLIs(context.Background(), "https://shop.example.com/mystore"))
}

func TestDriverErrorStopsWaiting(t *testing.T) {
	d := browsertest.New()
	boom := errors.New("browser crashed")
	d.Add(email).Err = boom

	_, err := newTestWaiter(d, WithDefaultTimeout(time.Hour)).Visible(context.Background(), email)
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 1, d.Count("find"))
}

func TestContextCancelled(t *testing.T) {
	d := browsertest.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestWaiter(d).Visible(ctx, email)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestClickRetriesOnceOnStale(t *testing.T) {
	d := browsertest.New()
	clicks := 0
	el := d.Add(signIn)
	el.StaleActions = 1
	el.OnClick = func(*browsertest.Driver) { clicks++ }

	require.NoError(t, newTestWaiter(d).Click(context.Background(), signIn))
	assert.Equal(t, 1, clicks)
	assert.Equal(t, 2, d.Count("click"))
	assert.Equal(t, 2, d.Count("find"))
}

func TestClickFailsWhenStaleRecurs(t *testing.T) {
	d := browsertest.New()
	clicks := 0
	el := d.Add(signIn)
	el.StaleActions = 2
	el.OnClick = func(*browsertest.Driver) { clicks++ }

	err := newTestWaiter(d).Click(context.Background(), signIn)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, browser.ErrStaleElement)
	assert.Zero(t, clicks)
	assert.Equal(t, 2, d.Count("click"))

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, 2, timeoutErr.Attempts)
	assert.Less(t, timeoutErr.Elapsed, testTimeout)
	assert.Contains(t, err.Error(), "(2 attempts in ")
	assert.NotContains(t, err.Error(), "timed out after")
}

func TestActionsFailWhenStaleRecurs(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		act       func(w *Waiter) error
	}{
		{"click", "clicked", func(w *Waiter) error { return w.Click(context.Background(), email) }},
		{"clear", "cleared", func(w *Waiter) error { return w.Clear(context.Background(), email) }},
		{"input", "filled", func(w *Waiter) error { return w.Input(context.Background(), email, "manager@example.com") }},
		{"text", "read", func(w *Waiter) error {
			_, err := w.Text(context.Background(), email)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := browsertest.New()
			d.Add(email).StaleActions = 2

			err := tt.act(newTestWaiter(d))
			require.ErrorIs(t, err, ErrTimeout)
			assert.ErrorIs(t, err, browser.ErrStaleElement)

			var timeoutErr *TimeoutError
			require.True(t, errors.As(err, &timeoutErr))
			assert.Equal(t, 2, timeoutErr.Attempts)
			assert.Equal(t, tt.condition, timeoutErr.Condition)
			assert.Equal(t, email.String(), timeoutErr.Target)
			assert.Equal(t, 2, d.Count("find"))
		})
	}
}

func TestActionErrorNamesLocator(t *testing.T) {
	intercepted := errors.New("element click intercepted")
	tests := []struct {
		name string
		want string
		act  func(w *Waiter) error
	}{
		{"click", "click " + signIn.String(), func(w *Waiter) error { return w.Click(context.Background(), signIn) }},
		{"clear", "clear " + signIn.String(), func(w *Waiter) error { return w.Clear(context.Background(), signIn) }},
		{"input", "clear " + signIn.String(), func(w *Waiter) error { return w.Input(context.Background(), signIn, "x") }},
		{"text", "read text of " + signIn.String(), func(w *Waiter) error {
			_, err := w.Text(context.Background(), signIn)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := browsertest.New()
			d.Add(signIn).ActionErr = intercepted

			err := tt.act(newTestWaiter(d, WithDefaultTimeout(time.Hour)))
			require.ErrorIs(t, err, intercepted)
			assert.NotErrorIs(t, err, ErrTimeout)
			assert.Equal(t, tt.want+": element click intercepted", err.Error())
			assert.Equal(t, 1, d.Count("find"))
		})
	}
}

func TestScrollErrorNamesLocator(t *testing.T) {
	d := browsertest.New()
	blocked := errors.New("element is outside the document")
	d.Add(email).Err = blocked

	err := newTestWaiter(d).ScrollTo(context.Background(), email)
	require.ErrorIs(t, err, blocked)
	assert.Equal(t, "scroll to id=email: element is outside the document", err.Error())
}

func TestPresentTimesOut(t *testing.T) {
	d := browsertest.New()

	start := time.Now()
	_, err := newTestWaiter(d).Present(context.Background(), spinner)
	require.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, browser.ErrNoSuchElement)
	assert.Less(t, time.Since(start), 10*testTimeout)
	assert.Contains(t, err.Error(), "timed out after 100ms waiting for css selector=.spinner to be present")
}

func TestClickRetryPolicyAttempts(t *testing.T) {
	d := browsertest.New()
	d.Add(signIn).StaleActions = 3

	w := newTestWaiter(d, WithRetry(RetryPolicy{Attempts: 4, Cooldown: time.Millisecond, Factor: 2}))
	require.NoError(t, w.Click(context.Background(), signIn))
	assert.Equal(t, 4, d.Count("click"))
}

func TestClickDoesNotRetryTimeouts(t *testing.T) {
	d := browsertest.New()

	err := newTestWaiter(d).Click(context.Background(), signIn)
	require.ErrorIs(t, err, ErrTimeout)

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, "clickable", timeoutErr.Condition)
	assert.Zero(t, timeoutErr.Attempts)
}

func TestClear(t *testing.T) {
	d := browsertest.New()
	d.Add(email).Value = "old@example.com"

	require.NoError(t, newTestWaiter(d).Clear(context.Background(), email))
	assert.Empty(t, d.Element(email).Value)
}

func TestInputClearsBeforeWriting(t *testing.T) {
	d := browsertest.New()
	d.Add(email)
	w := newTestWaiter(d)

	require.NoError(t, w.Input(context.Background(), email, "a"))
	require.NoError(t, w.Input(context.Background(), email, "b"))
	assert.Equal(t, "b", d.Element(email).Value)
}

func TestInputRetriesOnStale(t *testing.T) {
	d := browsertest.New()
	el := d.Add(email)
	el.Value = "prefilled"
	el.StaleActions = 1

	require.NoError(t, newTestWaiter(d).Input(context.Background(), email, "manager@example.com"))
	assert.Equal(t, "manager@example.com", el.Value)
}

func TestInputLastWriteWins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := browsertest.New()
		el := d.Add(email)
		el.Value = rapid.String().Draw(t, "initial")
		w := newTestWaiter(d)

		writes := rapid.SliceOfN(rapid.String(), 1, 5).Draw(t, "writes")
		for _, v := range writes {
			if err := w.Input(context.Background(), email, v); err != nil {
				t.Fatalf("input %q: %v", v, err)
			}
		}

		if want := writes[len(writes)-1]; el.Value != want {
			t.Fatalf("field holds %q, want %q", el.Value, want)
		}
	})
}

func TestText(t *testing.T) {
	d := browsertest.New()
	msg := locator.CSS(".error-message")
	el := d.Add(msg)
	el.Content = "Error Message"
	el.StaleActions = 1

	text, err := newTestWaiter(d).Text(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, "Error Message", text)
}

func TestScrollDoesNotWait(t *testing.T) {
	d := browsertest.New()
	w := newTestWaiter(d, WithDefaultTimeout(time.Hour))

	err := w.ScrollTo(context.Background(), email)
	require.ErrorIs(t, err, browser.ErrNoSuchElement)
	assert.Equal(t, 1, d.Count("find"))

	d.Add(email)
	require.NoError(t, w.ScrollTo(context.Background(), email))
	assert.Equal(t, 1, d.Count("scroll id=email"))

	require.NoError(t, w.ScrollToBottom(context.Background()))
	assert.Equal(t, -1, d.ScrollY)
	require.NoError(t, w.ScrollToTop(context.Background()))
	assert.Equal(t, 0, d.ScrollY)
	assert.Equal(t, 2, d.Count("script"))
}

func TestTimeoutDumpsPage(t *testing.T) {
	d := browsertest.New()
	d.URL = "https://shop.example.com/"
	d.Source = "<html><body>maintenance</body></html>"
	fs := afero.NewMemMapFs()
	w := newTestWaiter(d, WithArtifacts(fs, "artifacts"))

	_, err := w.Visible(context.Background(), email)
	require.ErrorIs(t, err, ErrTimeout)
	err = w.Invisible(context.Background(), email)
	require.NoError(t, err)
	_, err = w.Clickable(context.Background(), signIn)
	require.ErrorIs(t, err, ErrTimeout)

	first, err := afero.ReadFile(fs, "artifacts/001-visible.html")
	require.NoError(t, err)
	assert.Contains(t, string(first), "<!-- url: https://shop.example.com/ -->")
	assert.Contains(t, string(first), "<!-- waiting for: id=email -->")
	assert.Contains(t, string(first), "maintenance")

	exists, err := afero.Exists(fs, "artifacts/002-clickable.html")
	require.NoError(t, err)
	assert.True(t, exists)
}
