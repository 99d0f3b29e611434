package scenario

import (
	"context"
	"errors"

	"github.com/danielholmes839/storefront-ui/internal/pages"
	"github.com/danielholmes839/storefront-ui/internal/session"
	"github.com/danielholmes839/storefront-ui/internal/waiter"
)

func ValidLogin(ctx context.Context, s *session.Session) error {
	login := s.LoginPage()

	return runSteps(ctx, s, []step{
		{"open", login.Open},
		{"check title", func(ctx context.Context) error {
			return titleContains(ctx, login.Base, s.Config.ExpectedTitle)
		}},
		{"input email", func(ctx context.Context) error { return login.InputEmail(ctx, pages.Valid) }},
		{"input password", func(ctx context.Context) error { return login.InputPassword(ctx, pages.Valid) }},
		{"click sign in", login.ClickSignIn},
		{"input otp", login.InputOTP},
		{"click verify", login.ClickVerify},
		{"check url", func(ctx context.Context) error {
			want := s.Config.StoreURL()
			err := s.Waiter.URLIs(ctx, want)
			if !errors.Is(err, waiter.ErrTimeout) {
				return err
			}
			got, urlErr := login.CurrentURL(ctx)
			if urlErr != nil {
				return urlErr
			}
			return &Failure{Check: "current url", Got: got, Want: want}
		}},
	})
}

func InvalidEmail(ctx context.Context, s *session.Session) error {
	login := s.LoginPage()

	return runSteps(ctx, s, []step{
		{"open", login.Open},
		{"check title", func(ctx context.Context) error {
			return titleContains(ctx, login.Base, s.Config.ExpectedTitle)
		}},
		{"input invalid email", func(ctx context.Context) error { return login.InputEmail(ctx, pages.Invalid) }},
		{"input password", func(ctx context.Context) error { return login.InputPassword(ctx, pages.Valid) }},
		{"click sign in", login.ClickSignIn},
		{"check error message", func(ctx context.Context) error {
			msg, err := login.ErrorMessage(ctx)
			if err != nil {
				return err
			}
			if msg != s.Config.ExpectedError {
				return &Failure{Check: "error message", Got: msg, Want: s.Config.ExpectedError}
			}
			return nil
		}},
	})
}

func Example(ctx context.Context, s *session.Session) error {
	page := s.ExamplePage(s.Config.ExampleURL)

	return runSteps(ctx, s, []step{
		{"open", page.Open},
		{"check title", func(ctx context.Context) error {
			return titleContains(ctx, page.Base, "Example Domain")
		}},
	})
}
