package pages

import (
	"context"

	"github.com/danielholmes839/storefront-ui/internal/locator"
	"github.com/danielholmes839/storefront-ui/internal/waiter"
)

// Example is a static landing page, used as a smoke check that the browser
// and base URL work at all.
type Example struct {
	*Base
}

func NewExample(w *waiter.Waiter, locators locator.Registry, url string) *Example {
	return &Example{Base: NewBase(w, locators, url)}
}

func (p *Example) Heading(ctx context.Context) (string, error) {
	return p.Text(ctx, locator.Heading)
}
