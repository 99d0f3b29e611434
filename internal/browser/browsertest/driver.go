// Package browsertest provides a scriptable in-memory browser.Driver for unit
// tests of page objects, the waiter and scenarios.
package browsertest

import (
	"fmt"
	"strings"

	"github.com/danielholmes839/storefront-ui/internal/browser"
	"github.com/danielholmes839/storefront-ui/internal/locator"
)

// Driver is a fake browser with a flat set of elements keyed by locator.
type Driver struct {
	URL       string
	PageTitle string
	Source    string
	ScrollY   int
	Closed    bool

	// Pages maps a URL to the title shown after navigating there.
	Pages map[string]string
	// OnNavigate runs after every navigation.
	OnNavigate func(d *Driver, url string)

	// Calls records every driver and element call, e.g. "find id=email".
	Calls []string

	elements map[locator.Locator]*Element
}

func New() *Driver {
	return &Driver{
		Pages:    map[string]string{},
		elements: map[locator.Locator]*Element{},
	}
}

// Element is the fake DOM node behind a locator.
type Element struct {
	driver *Driver

	Visible bool
	Enabled bool
	Content string
	Value   string

	// AppearAfter hides the element from the first n FindElement calls.
	AppearAfter int
	// ShowAfter keeps the element hidden for the first n IsDisplayed calls.
	ShowAfter int
	// StaleActions makes the next n actions fail with ErrStaleElement.
	StaleActions int
	// OnClick runs after a successful click.
	OnClick func(d *Driver)
	// Err fails every call on handles to the element.
	Err error
	// ActionErr fails click, clear, send keys and text while lookups and
	// visibility checks still succeed.
	ActionErr error

	finds      int
	displays   int
	generation int
}

// Add puts a visible, enabled element on the page.
func (d *Driver) Add(loc locator.Locator) *Element {
	el := &Element{driver: d, Visible: true, Enabled: true}
	d.elements[loc] = el
	return el
}

func (d *Driver) Element(loc locator.Locator) *Element {
	return d.elements[loc]
}

func (d *Driver) Remove(loc locator.Locator) {
	if el, ok := d.elements[loc]; ok {
		el.generation++
		delete(d.elements, loc)
	}
}

// Rerender invalidates every handle obtained so far for the element.
func (e *Element) Rerender() {
	e.generation++
}

// Count reports how many recorded calls start with prefix.
func (d *Driver) Count(prefix string) int {
	n := 0
	for _, call := range d.Calls {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}

func (d *Driver) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Driver) Navigate(url string) error {
	d.record("navigate %s", url)
	d.URL = url
	if title, ok := d.Pages[url]; ok {
		d.PageTitle = title
	}
	if d.OnNavigate != nil {
		d.OnNavigate(d, url)
	}
	return nil
}

func (d *Driver) Title() (string, error) {
	d.record("title")
	return d.PageTitle, nil
}

func (d *Driver) CurrentURL() (string, error) {
	d.record("url")
	return d.URL, nil
}

func (d *Driver) PageSource() (string, error) {
	d.record("source")
	return d.Source, nil
}

func (d *Driver) FindElement(loc locator.Locator) (browser.Element, error) {
	d.record("find %s", loc)

	el, ok := d.elements[loc]
	if !ok {
		return nil, fmt.Errorf("%w: %s", browser.ErrNoSuchElement, loc)
	}

	el.finds++
	if el.finds <= el.AppearAfter {
		return nil, fmt.Errorf("%w: %s", browser.ErrNoSuchElement, loc)
	}

	return &handle{el: el, loc: loc, generation: el.generation}, nil
}

func (d *Driver) ExecuteScript(script string) (any, error) {
	d.record("script %s", script)
	switch script {
	case browser.ScrollTopScript:
		d.ScrollY = 0
	case browser.ScrollBottomScript:
		d.ScrollY = -1
	}
	return nil, nil
}

func (d *Driver) Close() error {
	d.record("close")
	d.Closed = true
	return nil
}

var _ browser.Driver = (*Driver)(nil)

type handle struct {
	el         *Element
	loc        locator.Locator
	generation int
}

func (h *handle) check(action string) error {
	h.el.driver.record("%s %s", action, h.loc)
	if h.generation != h.el.generation {
		return browser.ErrStaleElement
	}
	return h.el.Err
}

// act applies the StaleActions budget to state-changing calls.
func (h *handle) act(action string) error {
	if err := h.check(action); err != nil {
		return err
	}
	if h.el.StaleActions > 0 {
		h.el.StaleActions--
		h.el.generation++
		return browser.ErrStaleElement
	}
	return h.el.ActionErr
}

func (h *handle) Click() error {
	if err := h.act("click"); err != nil {
		return err
	}
	if !h.el.Visible || !h.el.Enabled {
		return fmt.Errorf("element %s is not interactable", h.loc)
	}
	if h.el.OnClick != nil {
		h.el.OnClick(h.el.driver)
	}
	return nil
}

func (h *handle) Clear() error {
	if err := h.act("clear"); err != nil {
		return err
	}
	h.el.Value = ""
	return nil
}

func (h *handle) SendKeys(text string) error {
	if err := h.act("keys"); err != nil {
		return err
	}
	h.el.Value += text
	return nil
}

func (h *handle) Text() (string, error) {
	if err := h.act("text"); err != nil {
		return "", err
	}
	return h.el.Content, nil
}

func (h *handle) IsDisplayed() (bool, error) {
	if err := h.check("displayed"); err != nil {
		return false, err
	}
	h.el.displays++
	if h.el.displays <= h.el.ShowAfter {
		return false, nil
	}
	return h.el.Visible, nil
}

func (h *handle) IsEnabled() (bool, error) {
	if err := h.check("enabled"); err != nil {
		return false, err
	}
	return h.el.Enabled, nil
}

func (h *handle) ScrollIntoView() error {
	return h.check("scroll")
}
