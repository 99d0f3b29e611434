package locator

import (
	"io"

	"github.com/PuerkitoBio/goquery"
)

type CheckResult struct {
	Name    string
	Locator Locator
	Matches int
	Skipped bool
}

func (r CheckResult) OK() bool {
	return r.Skipped || r.Matches == 1
}

// Check counts how many nodes of a saved HTML page each locator in the
// registry matches. Locators without a CSS form are skipped.
func Check(reg Registry, snapshot io.Reader) ([]CheckResult, error) {
	doc, err := goquery.NewDocumentFromReader(snapshot)
	if err != nil {
		return nil, err
	}

	results := []CheckResult{}
	for _, name := range reg.Names() {
		loc := reg.MustLookup(name)
		result := CheckResult{Name: name, Locator: loc}

		selector, ok := loc.CSS()
		if !ok {
			result.Skipped = true
		} else {
			result.Matches = doc.Find(selector).Length()
		}

		results = append(results, result)
	}

	return results, nil
}
