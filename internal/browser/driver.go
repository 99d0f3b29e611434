// Package browser is the boundary between the suite and the browser-control
// library. Page objects and the waiter only see Driver and Element.
package browser

import (
	"errors"

	"github.com/danielholmes839/storefront-ui/internal/locator"
)

var (
	// ErrNoSuchElement is returned by FindElement when nothing matches.
	ErrNoSuchElement = errors.New("no such element")

	// ErrStaleElement is returned by Element methods once the node the handle
	// points at has been detached from the DOM.
	ErrStaleElement = errors.New("stale element reference")
)

type Driver interface {
	Navigate(url string) error
	Title() (string, error)
	CurrentURL() (string, error)
	PageSource() (string, error)
	FindElement(loc locator.Locator) (Element, error)
	ExecuteScript(script string) (any, error)
	Close() error
}

// Element is a handle into the live DOM. It is only valid until the page
// re-renders the node.
type Element interface {
	Click() error
	Clear() error
	SendKeys(text string) error
	Text() (string, error)
	IsDisplayed() (bool, error)
	IsEnabled() (bool, error)
	ScrollIntoView() error
}

const (
	ScrollTopScript    = "window.scrollTo(0, 0);"
	ScrollBottomScript = "window.scrollTo(0, document.body.scrollHeight);"
)
