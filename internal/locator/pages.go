package locator

const (
	LoginPage   = "login"
	ExamplePage = "example"
)

// login page fields
const (
	Email        = "email"
	Password     = "password"
	SignIn       = "sign in"
	OTP          = "otp"
	Verify       = "verify"
	ErrorMessage = "error message"
)

// example page fields
const (
	Heading         = "heading"
	MoreInformation = "more information"
)

func Login() Registry {
	return New(LoginPage, map[string]Locator{
		Email:        ID("email"),
		Password:     ID("password"),
		SignIn:       XPath("//button[normalize-space()='Sign In']"),
		OTP:          ID("otp"),
		Verify:       XPath("//button[normalize-space()='Verify']"),
		ErrorMessage: CSS(".error-message"),
	})
}

func Example() Registry {
	return New(ExamplePage, map[string]Locator{
		Heading:         TagName("h1"),
		MoreInformation: CSS("div > p > a"),
	})
}

// Defaults returns the built-in registries keyed by page.
func Defaults() map[string]Registry {
	return map[string]Registry{
		LoginPage:   Login(),
		ExamplePage: Example(),
	}
}
