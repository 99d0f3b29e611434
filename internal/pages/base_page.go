// Package pages holds one page object per page of the store. Page objects
// name elements through a locator.Registry and leave every wait to the
// waiter.
package pages

import (
	"context"

	"github.com/danielholmes839/storefront-ui/internal/browser"
	"github.com/danielholmes839/storefront-ui/internal/locator"
	"github.com/danielholmes839/storefront-ui/internal/waiter"
)

type Base struct {
	waiter   *waiter.Waiter
	locators locator.Registry
	url      string
}

func NewBase(w *waiter.Waiter, locators locator.Registry, url string) *Base {
	return &Base{waiter: w, locators: locators, url: url}
}

func (p *Base) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.waiter.Driver().Navigate(p.url)
}

func (p *Base) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.waiter.Driver().Title()
}

func (p *Base) CurrentURL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.waiter.Driver().CurrentURL()
}

func (p *Base) Locator(name string) (locator.Locator, error) {
	return p.locators.Lookup(name)
}

// Find waits for the named element to be visible.
func (p *Base) Find(ctx context.Context, name string) (browser.Element, error) {
	loc, err := p.locators.Lookup(name)
	if err != nil {
		return nil, err
	}
	return p.waiter.Visible(ctx, loc)
}

// InputText replaces the named field's value.
func (p *Base) InputText(ctx context.Context, name, text string) error {
	loc, err := p.locators.Lookup(name)
	if err != nil {
		return err
	}
	return p.waiter.Input(ctx, loc, text)
}

func (p *Base) Click(ctx context.Context, name string) error {
	loc, err := p.locators.Lookup(name)
	if err != nil {
		return err
	}
	return p.waiter.Click(ctx, loc)
}

func (p *Base) Text(ctx context.Context, name string) (string, error) {
	loc, err := p.locators.Lookup(name)
	if err != nil {
		return "", err
	}
	return p.waiter.Text(ctx, loc)
}

func (p *Base) ScrollTo(ctx context.Context, name string) error {
	loc, err := p.locators.Lookup(name)
	if err != nil {
		return err
	}
	return p.waiter.ScrollTo(ctx, loc)
}
