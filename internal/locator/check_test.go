package locator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginSnapshot = `<html>
<head><title>Test Title</title></head>
<body>
  <form>
    <input id="email" name="email">
    <input id="password" type="password">
    <button>Sign In</button>
    <p class="error-message">Error Message</p>
    <p class="error-message hidden"></p>
  </form>
</body>
</html>`

func TestCheck(t *testing.T) {
	results, err := Check(Login(), strings.NewReader(loginSnapshot))
	require.NoError(t, err)

	byName := map[string]CheckResult{}
	for _, r := range results {
		byName[r.Name] = r
	}

	assert.Len(t, results, len(Login().Names()))

	assert.Equal(t, 1, byName[Email].Matches)
	assert.True(t, byName[Email].OK())

	assert.Equal(t, 0, byName[OTP].Matches)
	assert.False(t, byName[OTP].OK())

	assert.Equal(t, 2, byName[ErrorMessage].Matches)
	assert.False(t, byName[ErrorMessage].OK())

	assert.True(t, byName[SignIn].Skipped)
	assert.True(t, byName[SignIn].OK())
}

func TestLocatorCSS(t *testing.T) {
	tests := []struct {
		loc  Locator
		want string
		ok   bool
	}{
		{ID("email"), `[id="email"]`, true},
		{Name("q"), `[name="q"]`, true},
		{ID("prénom"), `[id="prénom"]`, true},
		{ID(`say "hi"`), `[id="say \"hi\""]`, true},
		{Name(`a\b`), `[name="a\\b"]`, true},
		{ID("two\nlines"), `[id="two\a lines"]`, true},
		{ClassName("error-message"), ".error-message", true},
		{TagName("h1"), "h1", true},
		{CSS("div > p"), "div > p", true},
		{XPath("//h1"), "", false},
		{LinkText("More"), "", false},
	}

	for _, tt := range tests {
		got, ok := tt.loc.CSS()
		assert.Equal(t, tt.ok, ok, tt.loc.String())
		assert.Equal(t, tt.want, got, tt.loc.String())
	}
}

func TestQuotedSelectorsMatch(t *testing.T) {
	doc := `<html><body><input id="prénom"><input id='say "hi"'><input id="a\b"></body></html>`
	for _, id := range []string{"prénom", `say "hi"`, `a\b`} {
		sel, ok := ID(id).CSS()
		require.True(t, ok)
		results, err := Check(New("form", map[string]Locator{"field": ID(id)}), strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, 1, results[0].Matches, sel)
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("css selector")
	require.NoError(t, err)
	assert.Equal(t, ByCSS, s)

	_, err = ParseStrategy("css")
	assert.Error(t, err)
}
