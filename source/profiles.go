package source

import (
	"fmt"
	"io"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml"
	"github.com/shibukawa/kcmdline"
)

// ReadProfiles reads a YAML mapping of profile name to command line.
// Entries are returned sorted by name.
func ReadProfiles(r io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	var profiles map[string]string
	if err := yaml.Unmarshal(content, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}

	return profileEntries(profiles)
}

// ReadTOMLProfiles reads top-level `name = "cmdline"` pairs from a TOML
// document. Tables and non-string values are rejected.
func ReadTOMLProfiles(r io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	tree, err := toml.LoadBytes(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}

	profiles := make(map[string]string)
	for _, name := range tree.Keys() {
		line, ok := tree.GetPath([]string{name}).(string)
		if !ok {
			return nil, fmt.Errorf("failed to parse profiles: '%s' is not a string", name)
		}
		profiles[name] = line
	}

	return profileEntries(profiles)
}

func profileEntries(profiles map[string]string) ([]Entry, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: empty profile file", kcmdline.ErrNoCmdline)
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Cmdline: profiles[name]})
	}

	return entries, nil
}
