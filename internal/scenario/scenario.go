// Package scenario holds the end-to-end flows. Each one drives page objects
// through a Session and stops at the first failed check.
package scenario

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/danielholmes839/storefront-ui/internal/pages"
	"github.com/danielholmes839/storefront-ui/internal/session"
)

// Failure is a check that did not hold.
type Failure struct {
	Check string
	Got   string
	Want  string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: got %q, want %q", f.Check, f.Got, f.Want)
}

type Func func(ctx context.Context, s *session.Session) error

type Scenario struct {
	Name        string
	Description string
	Run         Func
}

var scenarios = map[string]Scenario{
	"valid-login": {
		Name:        "valid-login",
		Description: "store manager signs in with email, password and one-time code",
		Run:         ValidLogin,
	},
	"invalid-email": {
		Name:        "invalid-email",
		Description: "sign-in with an unknown email shows the error message",
		Run:         InvalidEmail,
	},
	"example": {
		Name:        "example",
		Description: "example page loads with the expected title",
		Run:         Example,
	},
}

// All returns every scenario sorted by name.
func All() []Scenario {
	all := make([]Scenario, 0, len(scenarios))
	for _, sc := range scenarios {
		all = append(all, sc)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all
}

func Lookup(name string) (Scenario, bool) {
	sc, ok := scenarios[name]
	return sc, ok
}

// Run runs one scenario and logs its outcome.
func Run(ctx context.Context, s *session.Session, sc Scenario) error {
	start := time.Now()
	err := sc.Run(ctx, s)
	if err != nil {
		s.Logger.Error("scenario failed", "scenario", sc.Name, "dur", time.Since(start).String(), "err", err)
		return fmt.Errorf("%s: %w", sc.Name, err)
	}
	s.Logger.Info("scenario passed", "scenario", sc.Name, "dur", time.Since(start).String())
	return nil
}

func titleContains(ctx context.Context, page *pages.Base, want string) error {
	title, err := page.Title(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(title, want) {
		return &Failure{Check: "title contains", Got: title, Want: want}
	}
	return nil
}

type step struct {
	name string
	do   func(ctx context.Context) error
}

func runSteps(ctx context.Context, s *session.Session, steps []step) error {
	for _, st := range steps {
		s.Logger.Debug("step", "name", st.name)
		if err := st.do(ctx); err != nil {
			return fmt.Errorf("%s: %w", st.name, err)
		}
	}
	return nil
}
