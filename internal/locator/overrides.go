package locator

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

type yamlLocator struct {
	By       string `yaml:"by"`
	Selector string `yaml:"selector"`
}

// LoadOverrides reads a YAML file of the form
//
//	login:
//	  email: {by: css selector, selector: "input[type=email]"}
//
// and returns the locators keyed by page then field name.
func LoadOverrides(fs afero.Fs, path string) (map[string]map[string]Locator, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	raw := map[string]map[string]yamlLocator{}
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse locator overrides %s: %w", path, err)
	}

	overrides := map[string]map[string]Locator{}
	for page, fields := range raw {
		overrides[page] = map[string]Locator{}
		for name, field := range fields {
			strategy, err := ParseStrategy(field.By)
			if err != nil {
				return nil, fmt.Errorf("%s: %s.%s: %w", path, page, name, err)
			}
			if field.Selector == "" {
				return nil, fmt.Errorf("%s: %s.%s: empty selector", path, page, name)
			}
			overrides[page][name] = Locator{By: strategy, Selector: field.Selector}
		}
	}

	return overrides, nil
}

// Apply merges overrides into the registries. Pages that have no built-in
// registry are added as new registries.
func Apply(registries map[string]Registry, overrides map[string]map[string]Locator) map[string]Registry {
	merged := make(map[string]Registry, len(registries))
	for page, reg := range registries {
		merged[page] = reg
	}

	for page, entries := range overrides {
		reg, ok := merged[page]
		if !ok {
			merged[page] = New(page, entries)
			continue
		}
		merged[page] = reg.Override(entries)
	}

	return merged
}

// Load returns the built-in registries with the overrides file at path
// applied. An empty path means no overrides.
func Load(fs afero.Fs, path string) (map[string]Registry, error) {
	registries := Defaults()
	if path == "" {
		return registries, nil
	}
	overrides, err := LoadOverrides(fs, path)
	if err != nil {
		return nil, err
	}
	return Apply(registries, overrides), nil
}
