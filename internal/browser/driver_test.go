package browser

import (
	"errors"
	"testing"

	"github.com/danielholmes839/storefront-ui/internal/locator"
	"github.com/stretchr/testify/assert"
	"github.com/tebeka/selenium"
)

func TestPlaywrightSelector(t *testing.T) {
	tests := []struct {
		loc  locator.Locator
		want string
	}{
		{locator.ID("email"), `css=[id="email"]`},
		{locator.XPath("//button[normalize-space()='Sign In']"), "xpath=//button[normalize-space()='Sign In']"},
		{locator.CSS(".error-message"), "css=.error-message"},
		{locator.Name("otp"), `css=[name="otp"]`},
		{locator.ClassName("banner"), "css=.banner"},
		{locator.TagName("h1"), "css=h1"},
		{locator.LinkText("More information..."), `a:text-is("More information...")`},
		{locator.LinkText("Déconnexion"), `a:text-is("Déconnexion")`},
		{locator.ID(`a"b`), `css=[id="a\"b"]`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, playwrightSelector(tt.loc), tt.loc.String())
	}
}

func TestPlaywrightError(t *testing.T) {
	assert.NoError(t, playwrightError(nil))

	stale := playwrightError(errors.New("elementHandle.click: Element is not attached to the DOM"))
	assert.ErrorIs(t, stale, ErrStaleElement)

	navigated := playwrightError(errors.New("Execution context was destroyed, most likely because of a navigation"))
	assert.ErrorIs(t, navigated, ErrStaleElement)

	other := errors.New("Timeout 30000ms exceeded")
	assert.Equal(t, other, playwrightError(other))
}

func TestSeleniumError(t *testing.T) {
	assert.NoError(t, seleniumError(nil))

	stale := &selenium.Error{Err: "stale element reference", Message: "element is not attached to the page document"}
	err := seleniumError(stale)
	assert.ErrorIs(t, err, ErrStaleElement)
	assert.ErrorIs(t, err, stale)

	missing := seleniumError(&selenium.Error{Err: "no such element"})
	assert.ErrorIs(t, missing, ErrNoSuchElement)

	legacy := seleniumError(errors.New("stale element reference: element is not attached"))
	assert.ErrorIs(t, legacy, ErrStaleElement)

	other := &selenium.Error{Err: "element click intercepted"}
	assert.Equal(t, error(other), seleniumError(other))
}

func TestSeleniumStrategiesCoverEveryStrategy(t *testing.T) {
	for _, s := range []locator.Strategy{
		locator.ByID, locator.ByXPath, locator.ByCSS, locator.ByName,
		locator.ByClassName, locator.ByTagName, locator.ByLinkText,
	} {
		by, ok := seleniumStrategies[s]
		assert.True(t, ok, s)
		assert.Equal(t, string(s), by)
	}
}
