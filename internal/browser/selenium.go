package browser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielholmes839/storefront-ui/internal/locator"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

type SeleniumOptions struct {
	// RemoteURL is the WebDriver endpoint, e.g. a selenium grid hub.
	RemoteURL   string
	BrowserName string
	Headless    bool
}

// Selenium drives a remote WebDriver session.
type Selenium struct {
	wd selenium.WebDriver
}

func DialSelenium(opts SeleniumOptions) (*Selenium, error) {
	if opts.BrowserName == "" {
		opts.BrowserName = "chrome"
	}

	caps := selenium.Capabilities{"browserName": opts.BrowserName}
	if opts.Headless {
		switch opts.BrowserName {
		case "chrome":
			caps.AddChrome(chrome.Capabilities{Args: []string{"--headless=new"}})
		case "firefox":
			caps.AddFirefox(firefox.Capabilities{Args: []string{"-headless"}})
		}
	}

	wd, err := selenium.NewRemote(caps, opts.RemoteURL)
	if err != nil {
		return nil, err
	}

	return &Selenium{wd: wd}, nil
}

var seleniumStrategies = map[locator.Strategy]string{
	locator.ByID:        selenium.ByID,
	locator.ByXPath:     selenium.ByXPATH,
	locator.ByCSS:       selenium.ByCSSSelector,
	locator.ByName:      selenium.ByName,
	locator.ByClassName: selenium.ByClassName,
	locator.ByTagName:   selenium.ByTagName,
	locator.ByLinkText:  selenium.ByLinkText,
}

func (s *Selenium) Navigate(url string) error {
	return s.wd.Get(url)
}

func (s *Selenium) Title() (string, error) {
	return s.wd.Title()
}

func (s *Selenium) CurrentURL() (string, error) {
	return s.wd.CurrentURL()
}

func (s *Selenium) PageSource() (string, error) {
	return s.wd.PageSource()
}

func (s *Selenium) FindElement(loc locator.Locator) (Element, error) {
	by, ok := seleniumStrategies[loc.By]
	if !ok {
		return nil, fmt.Errorf("unsupported locator strategy %q", loc.By)
	}

	el, err := s.wd.FindElement(by, loc.Selector)
	if err != nil {
		return nil, seleniumError(err)
	}
	return &seleniumElement{wd: s.wd, el: el}, nil
}

func (s *Selenium) ExecuteScript(script string) (any, error) {
	return s.wd.ExecuteScript(script, nil)
}

func (s *Selenium) Close() error {
	return s.wd.Quit()
}

func seleniumError(err error) error {
	if err == nil {
		return nil
	}

	code := ""
	var wdErr *selenium.Error
	if errors.As(err, &wdErr) {
		code = wdErr.Err
	} else {
		// legacy JSON wire protocol servers only put the code in the message
		code = err.Error()
	}

	switch {
	case strings.Contains(code, "stale element reference"):
		return fmt.Errorf("%w: %w", ErrStaleElement, err)
	case strings.Contains(code, "no such element"):
		return fmt.Errorf("%w: %w", ErrNoSuchElement, err)
	}
	return err
}

type seleniumElement struct {
	wd selenium.WebDriver
	el selenium.WebElement
}

func (e *seleniumElement) Click() error {
	return seleniumError(e.el.Click())
}

func (e *seleniumElement) Clear() error {
	return seleniumError(e.el.Clear())
}

func (e *seleniumElement) SendKeys(text string) error {
	return seleniumError(e.el.SendKeys(text))
}

func (e *seleniumElement) Text() (string, error) {
	text, err := e.el.Text()
	return text, seleniumError(err)
}

func (e *seleniumElement) IsDisplayed() (bool, error) {
	displayed, err := e.el.IsDisplayed()
	return displayed, seleniumError(err)
}

func (e *seleniumElement) IsEnabled() (bool, error) {
	enabled, err := e.el.IsEnabled()
	return enabled, seleniumError(err)
}

func (e *seleniumElement) ScrollIntoView() error {
	_, err := e.wd.ExecuteScript("arguments[0].scrollIntoView(true);", []interface{}{e.el})
	return seleniumError(err)
}
