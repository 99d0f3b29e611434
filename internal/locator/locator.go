package locator

import (
	"fmt"
	"strings"
)

// Strategy is how the browser driver resolves a selector. The values match
// the W3C WebDriver "using" strings.
type Strategy string

const (
	ByID        = Strategy("id")
	ByXPath     = Strategy("xpath")
	ByCSS       = Strategy("css selector")
	ByName      = Strategy("name")
	ByClassName = Strategy("class name")
	ByTagName   = Strategy("tag name")
	ByLinkText  = Strategy("link text")
)

var strategies = map[Strategy]bool{
	ByID:        true,
	ByXPath:     true,
	ByCSS:       true,
	ByName:      true,
	ByClassName: true,
	ByTagName:   true,
	ByLinkText:  true,
}

func ParseStrategy(s string) (Strategy, error) {
	strategy := Strategy(s)
	if !strategies[strategy] {
		return "", fmt.Errorf("unknown locator strategy: %q", s)
	}
	return strategy, nil
}

// Locator identifies a DOM element.
type Locator struct {
	By       Strategy
	Selector string
}

func ID(id string) Locator           { return Locator{By: ByID, Selector: id} }
func XPath(xpath string) Locator     { return Locator{By: ByXPath, Selector: xpath} }
func CSS(selector string) Locator    { return Locator{By: ByCSS, Selector: selector} }
func Name(name string) Locator       { return Locator{By: ByName, Selector: name} }
func ClassName(class string) Locator { return Locator{By: ByClassName, Selector: class} }
func TagName(tag string) Locator     { return Locator{By: ByTagName, Selector: tag} }
func LinkText(text string) Locator   { return Locator{By: ByLinkText, Selector: text} }

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.By, l.Selector)
}

// CSS returns an equivalent CSS selector, or false when the strategy has no
// CSS form.
func (l Locator) CSS() (string, bool) {
	switch l.By {
	case ByID:
		return "[id=" + Quote(l.Selector) + "]", true
	case ByName:
		return "[name=" + Quote(l.Selector) + "]", true
	case ByClassName:
		return "." + l.Selector, true
	case ByTagName, ByCSS:
		return l.Selector, true
	}
	return "", false
}

var cssEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)

// Quote returns s as a double quoted CSS string. Unlike %q it leaves
// non-ASCII text as is.
func Quote(s string) string {
	return `"` + cssEscaper.Replace(s) + `"`
}
