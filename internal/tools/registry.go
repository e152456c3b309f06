package tools

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry is an immutable name to ToolEntry mapping. It is built once at
// startup and handed to the resolver; nothing mutates it afterwards.
type Registry struct {
	entries map[string]ToolEntry
	names   []string
}

// NewRegistry builds a registry from the given entries. Names must be unique.
func NewRegistry(entries []ToolEntry) (*Registry, error) {
	m := make(map[string]ToolEntry, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, errors.New("registry entry with empty name")
		}
		if _, ok := m[name]; ok {
			return nil, fmt.Errorf("duplicate tool %q", name)
		}
		if err := entry.Spec.Validate(); err != nil {
			return nil, fmt.Errorf("tool %q: %w", name, err)
		}
		entry.Name = name
		m[name] = entry
	}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Registry{entries: m, names: names}, nil
}

// LoadRegistry returns the builtin tools merged with the optional user
// registry file. Overlay entries override builtins of the same name; a name
// repeated within the overlay file itself is an error.
func LoadRegistry(overlayFile string) (*Registry, error) {
	entries := append([]ToolEntry(nil), builtinEntries...)

	if overlayFile != "" {
		overlay, err := loadOverlay(overlayFile)
		if err != nil {
			return nil, err
		}
		merged := make([]ToolEntry, 0, len(entries)+len(overlay))
		overridden := make(map[string]bool, len(overlay))
		for _, entry := range overlay {
			overridden[entry.Name] = true
		}
		for _, entry := range entries {
			if !overridden[entry.Name] {
				merged = append(merged, entry)
			}
		}
		entries = append(merged, overlay...)
	}

	return NewRegistry(entries)
}

// loadOverlay reads a YAML file mapping tool name to install spec.
func loadOverlay(path string) ([]ToolEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read registry file %q: %w", path, err)
	}

	var raw map[string]InstallSpec
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse registry file %q: %w", path, err)
	}

	entries := make([]ToolEntry, 0, len(raw))
	for name, spec := range raw {
		entries = append(entries, ToolEntry{Name: name, Spec: spec})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Lookup returns the entry for name.
func (r *Registry) Lookup(name string) (ToolEntry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Validate reports whether the spec carries the fields its kind requires.
func (s InstallSpec) Validate() error {
	switch s.Kind {
	case KindURL:
		if s.URL == "" {
			return errors.New("url spec requires url")
		}
	case KindScript:
		if s.User == "" || s.Project == "" {
			return errors.New("script spec requires user and project")
		}
	case KindPackage:
		if s.URL == "" {
			return errors.New("package spec requires url")
		}
	case KindRelease:
		if s.User == "" || s.Project == "" {
			return errors.New("release spec requires user and project")
		}
	case KindRepo:
		if s.User == "" || s.Project == "" {
			return errors.New("repo spec requires user and project")
		}
		if s.Path == "" {
			return errors.New("repo spec requires path")
		}
	default:
		return fmt.Errorf("unknown spec kind %q", s.Kind)
	}
	return nil
}
