package pages

import (
	"context"

	"github.com/danielholmes839/storefront-ui/internal/config"
	"github.com/danielholmes839/storefront-ui/internal/locator"
	"github.com/danielholmes839/storefront-ui/internal/waiter"
)

// Variant picks the valid or the invalid credential for an input.
type Variant int

const (
	Valid Variant = iota
	Invalid
)

func (v Variant) String() string {
	if v == Invalid {
		return "invalid"
	}
	return "valid"
}

// Login is the store manager sign-in flow: email and password, then a
// one-time code.
type Login struct {
	*Base
	credentials *config.Credentials
}

func NewLogin(w *waiter.Waiter, locators locator.Registry, cfg *config.Config) *Login {
	return &Login{
		Base:        NewBase(w, locators, cfg.BaseURL),
		credentials: &cfg.Credentials,
	}
}

func (p *Login) InputEmail(ctx context.Context, v Variant) error {
	email := p.credentials.Email
	if v == Invalid {
		email = p.credentials.InvalidEmail
	}
	return p.InputText(ctx, locator.Email, email)
}

func (p *Login) InputPassword(ctx context.Context, v Variant) error {
	password := p.credentials.Password
	if v == Invalid {
		password = p.credentials.InvalidPassword
	}
	return p.InputText(ctx, locator.Password, password)
}

func (p *Login) InputOTP(ctx context.Context) error {
	return p.InputText(ctx, locator.OTP, p.credentials.OTP)
}

func (p *Login) ClickSignIn(ctx context.Context) error {
	return p.Click(ctx, locator.SignIn)
}

func (p *Login) ClickVerify(ctx context.Context) error {
	return p.Click(ctx, locator.Verify)
}

func (p *Login) ErrorMessage(ctx context.Context) (string, error) {
	return p.Text(ctx, locator.ErrorMessage)
}

// SignIn runs the whole flow with the valid credentials.
func (p *Login) SignIn(ctx context.Context) error {
	steps := []func(context.Context) error{
		func(ctx context.Context) error { return p.InputEmail(ctx, Valid) },
		func(ctx context.Context) error { return p.InputPassword(ctx, Valid) },
		p.ClickSignIn,
		p.InputOTP,
		p.ClickVerify,
	}

	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}
