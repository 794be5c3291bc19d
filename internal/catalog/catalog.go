// Package catalog defines the set of rule sources the pipeline processes.
// The default catalog is compiled into the binary in the clash rule-providers
// YAML layout; an alternative catalog in the same layout can be loaded from disk.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Behavior selects the parsing mode for a rule source.
type Behavior string

const (
	BehaviorDomain    Behavior = "domain"
	BehaviorIPCIDR    Behavior = "ipcidr"
	BehaviorClassical Behavior = "classical"
)

// Source describes one named rule source: where to fetch it, how to parse it,
// and where the raw mirror is written.
type Source struct {
	Name     string   `yaml:"-"`
	URL      string   `yaml:"url"`
	Behavior Behavior `yaml:"behavior"`
	Path     string   `yaml:"path"`
}

// ErrIncomplete marks a catalog entry that lacks one of the required fields.
var ErrIncomplete = errors.New("missing url, behavior or path")

// Validate reports whether the source carries every field the pipeline needs.
// Incomplete sources are skipped by the caller, not fatal to the run.
func (s Source) Validate() error {
	if s.URL == "" || s.Behavior == "" || s.Path == "" {
		return fmt.Errorf("source %q: %w", s.Name, ErrIncomplete)
	}
	return nil
}

//go:embed catalog.yaml
var defaultCatalog []byte

// Sources returns the compiled-in catalog in declaration order.
func Sources() ([]Source, error) {
	return parse(defaultCatalog)
}

// LoadFile reads a rule-providers YAML file from disk.
func LoadFile(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	sources, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return sources, nil
}

// parse decodes a rule-providers document. The providers mapping is walked as
// a yaml.Node so sources keep their declaration order; downstream output
// ordering depends on it.
func parse(data []byte) ([]Source, error) {
	var doc struct {
		Providers yaml.Node `yaml:"rule-providers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if doc.Providers.Kind == 0 {
		return nil, errors.New("catalog has no rule-providers section")
	}
	if doc.Providers.Kind != yaml.MappingNode {
		return nil, errors.New("rule-providers must be a mapping")
	}

	sources := make([]Source, 0, len(doc.Providers.Content)/2)
	for i := 0; i+1 < len(doc.Providers.Content); i += 2 {
		name := doc.Providers.Content[i].Value
		var src Source
		if err := doc.Providers.Content[i+1].Decode(&src); err != nil {
			return nil, fmt.Errorf("failed to decode provider %q: %w", name, err)
		}
		src.Name = name
		sources = append(sources, src)
	}
	return sources, nil
}
