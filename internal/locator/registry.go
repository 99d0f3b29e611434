package locator

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknown = errors.New("unknown locator")

// LookupError is returned for a name that is not defined for a page.
type LookupError struct {
	Page string
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("page %q has no locator named %q", e.Page, e.Name)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrUnknown
}

// Registry maps semantic field names to locators for one page.
type Registry struct {
	page    string
	entries map[string]Locator
}

func New(page string, entries map[string]Locator) Registry {
	copied := make(map[string]Locator, len(entries))
	for name, loc := range entries {
		copied[name] = loc
	}
	return Registry{page: page, entries: copied}
}

func (r Registry) Page() string {
	return r.page
}

func (r Registry) Lookup(name string) (Locator, error) {
	loc, ok := r.entries[name]
	if !ok {
		return Locator{}, &LookupError{Page: r.page, Name: name}
	}
	return loc, nil
}

func (r Registry) MustLookup(name string) Locator {
	loc, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func (r Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Override returns a copy of the registry with the given entries replaced or
// added.
func (r Registry) Override(entries map[string]Locator) Registry {
	merged := New(r.page, r.entries)
	for name, loc := range entries {
		merged.entries[name] = loc
	}
	return merged
}
