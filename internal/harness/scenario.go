package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one ingestion conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Input is the project file to ingest, relative to the scenario
	// file location.
	Input string `yaml:"input"`

	// Catalog optionally names a module-definition config directory,
	// relative to the scenario file location.
	Catalog string `yaml:"catalog,omitempty"`

	// Descriptors declare the classification patterns to register, in
	// order. Registration order is part of the scenario: it decides
	// score ties.
	Descriptors []DescriptorSpec `yaml:"descriptors,omitempty"`

	// Threshold overrides the factory acceptance threshold when > 0.
	Threshold float64 `yaml:"threshold,omitempty"`

	// Expect states the required outcome.
	Expect Expect `yaml:"expect"`

	dir string
}

// DescriptorSpec mirrors a classification descriptor in YAML form.
type DescriptorSpec struct {
	ID             string   `yaml:"id"`
	Datatypes      []string `yaml:"datatypes,omitempty"`
	Modules        []string `yaml:"modules,omitempty"`
	Programs       []string `yaml:"programs,omitempty"`
	SafetyPrograms []string `yaml:"safety_programs,omitempty"`
	Tags           []string `yaml:"tags,omitempty"`
}

// Expect lists scenario assertions. Zero-valued fields are skipped.
type Expect struct {
	// Variant is the expected classification result ID.
	Variant string `yaml:"variant,omitempty"`

	// Score is the expected classification score.
	Score *float64 `yaml:"score,omitempty"`

	// Controller is the expected controller name.
	Controller string `yaml:"controller,omitempty"`

	// Programs are names that must exist on the loaded graph.
	Programs []string `yaml:"programs,omitempty"`

	// Shadowed lists expected "program.tag" shadow records.
	Shadowed []string `yaml:"shadowed,omitempty"`

	// Dangling is the expected unresolved-reference count.
	Dangling *int `yaml:"dangling,omitempty"`

	// RoundTrip requires serialize-reparse-serialize byte identity.
	RoundTrip bool `yaml:"round_trip,omitempty"`
}

// LoadScenario reads one scenario file. Relative paths inside the
// scenario resolve against the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("harness: read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("harness: parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("harness: scenario %s requires a name", path)
	}
	if s.Input == "" {
		return nil, fmt.Errorf("harness: scenario %q requires an input", s.Name)
	}
	s.dir = filepath.Dir(path)
	return &s, nil
}

// LoadDir reads every .yaml scenario in a directory, sorted by
// filename.
func LoadDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	var out []*Scenario
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (s *Scenario) resolve(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.dir, rel)
}
