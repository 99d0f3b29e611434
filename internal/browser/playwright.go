package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/danielholmes839/storefront-ui/internal/locator"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/multierr"
)

type PlaywrightOptions struct {
	Headless bool
	BaseURL  string
	// ActionTimeout bounds playwright's own auto-waiting on clicks and fills.
	ActionTimeout time.Duration
}

// Playwright drives a single chromium page.
type Playwright struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

func LaunchPlaywright(opts PlaywrightOptions) (*Playwright, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		return nil, multierr.Append(err, pw.Stop())
	}

	contextOpts := playwright.BrowserNewContextOptions{}
	if opts.BaseURL != "" {
		contextOpts.BaseURL = playwright.String(opts.BaseURL)
	}

	context, err := browser.NewContext(contextOpts)
	if err != nil {
		return nil, multierr.Combine(err, browser.Close(), pw.Stop())
	}

	if opts.ActionTimeout > 0 {
		context.SetDefaultTimeout(float64(opts.ActionTimeout.Milliseconds()))
	}

	page, err := context.NewPage()
	if err != nil {
		return nil, multierr.Combine(err, context.Close(), browser.Close(), pw.Stop())
	}

	return &Playwright{
		pw:      pw,
		browser: browser,
		context: context,
		page:    page,
	}, nil
}

func (p *Playwright) Navigate(url string) error {
	_, err := p.page.Goto(url)
	return err
}

func (p *Playwright) Title() (string, error) {
	return p.page.Title()
}

func (p *Playwright) CurrentURL() (string, error) {
	return p.page.URL(), nil
}

func (p *Playwright) PageSource() (string, error) {
	return p.page.Content()
}

func (p *Playwright) FindElement(loc locator.Locator) (Element, error) {
	handle, err := p.page.QuerySelector(playwrightSelector(loc))
	if err != nil {
		return nil, playwrightError(err)
	}
	if handle == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchElement, loc)
	}
	return &playwrightElement{handle: handle}, nil
}

func (p *Playwright) ExecuteScript(script string) (any, error) {
	return p.page.Evaluate(script)
}

func (p *Playwright) Close() error {
	return multierr.Combine(
		p.page.Close(),
		p.context.Close(),
		p.browser.Close(),
		p.pw.Stop(),
	)
}

func playwrightSelector(loc locator.Locator) string {
	switch loc.By {
	case locator.ByXPath:
		return "xpath=" + loc.Selector
	case locator.ByLinkText:
		return "a:text-is(" + locator.Quote(loc.Selector) + ")"
	}

	css, ok := loc.CSS()
	if !ok {
		css = loc.Selector
	}
	return "css=" + css
}

// playwright reports detached handles through the error message only.
func playwrightError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	if strings.Contains(msg, "not attached to the DOM") || strings.Contains(msg, "Execution context was destroyed") {
		return fmt.Errorf("%w: %w", ErrStaleElement, err)
	}
	return err
}

type playwrightElement struct {
	handle playwright.ElementHandle
}

func (e *playwrightElement) Click() error {
	return playwrightError(e.handle.Click())
}

func (e *playwrightElement) Clear() error {
	return playwrightError(e.handle.Fill(""))
}

func (e *playwrightElement) SendKeys(text string) error {
	return playwrightError(e.handle.Type(text))
}

func (e *playwrightElement) Text() (string, error) {
	text, err := e.handle.InnerText()
	return text, playwrightError(err)
}

func (e *playwrightElement) IsDisplayed() (bool, error) {
	visible, err := e.handle.IsVisible()
	return visible, playwrightError(err)
}

func (e *playwrightElement) IsEnabled() (bool, error) {
	enabled, err := e.handle.IsEnabled()
	return enabled, playwrightError(err)
}

func (e *playwrightElement) ScrollIntoView() error {
	return playwrightError(e.handle.ScrollIntoViewIfNeeded())
}
