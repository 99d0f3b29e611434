package browsertest

import (
	"github.com/danielholmes839/storefront-ui/internal/locator"
)

// Account is what the fake store accepts at sign-in.
type Account struct {
	Email    string
	Password string
	OTP      string
}

// Store is a fake of the store manager sign-in flow behind a Driver.
type Store struct {
	*Driver

	BaseURL      string
	LoginTitle   string
	ErrorMessage string
	Account      Account

	// SignInRenders makes the sign-in button re-render this many times
	// before it can be clicked, the way a SPA re-mounts a form.
	SignInRenders int
}

// NewStore serves the login page at baseURL using the built-in login
// locators.
func NewStore(baseURL string, account Account) *Store {
	s := &Store{
		Driver:       New(),
		BaseURL:      baseURL,
		LoginTitle:   "Test Title | Store Manager",
		ErrorMessage: "Error Message",
		Account:      account,
	}
	s.OnNavigate = s.navigate
	return s
}

func (s *Store) navigate(d *Driver, url string) {
	if url != s.BaseURL {
		return
	}

	locs := locator.Login()
	d.PageTitle = s.LoginTitle
	d.Source = "<html><head><title>" + s.LoginTitle + "</title></head><body><form></form></body></html>"

	for _, name := range []string{locator.OTP, locator.Verify, locator.ErrorMessage} {
		d.Remove(locs.MustLookup(name))
	}

	d.Add(locs.MustLookup(locator.Email))
	d.Add(locs.MustLookup(locator.Password))

	signIn := d.Add(locs.MustLookup(locator.SignIn))
	signIn.StaleActions = s.SignInRenders
	signIn.OnClick = s.signIn
}

func (s *Store) signIn(d *Driver) {
	locs := locator.Login()
	email := d.Element(locs.MustLookup(locator.Email)).Value
	password := d.Element(locs.MustLookup(locator.Password)).Value

	if email != s.Account.Email || password != s.Account.Password {
		msg := d.Add(locs.MustLookup(locator.ErrorMessage))
		msg.Content = s.ErrorMessage
		// the message fades in
		msg.ShowAfter = 1
		return
	}

	d.Add(locs.MustLookup(locator.OTP)).AppearAfter = 1
	verify := d.Add(locs.MustLookup(locator.Verify))
	verify.OnClick = s.verify
}

func (s *Store) verify(d *Driver) {
	locs := locator.Login()
	if d.Element(locs.MustLookup(locator.OTP)).Value != s.Account.OTP {
		msg := d.Add(locs.MustLookup(locator.ErrorMessage))
		msg.Content = "Invalid code"
		return
	}

	d.URL = s.BaseURL + "mystore"
	d.PageTitle = "My Store"
}
