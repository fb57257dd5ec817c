package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plcforge/ingot/internal/classify"
)

// descriptorFile is the YAML shape of a descriptor config:
//
//	descriptors:
//	  - id: Filler
//	    datatypes: ["Fudc_*"]
//	    programs: ["Filler_*"]
type descriptorFile struct {
	Descriptors []struct {
		ID             string   `yaml:"id"`
		Datatypes      []string `yaml:"datatypes"`
		Modules        []string `yaml:"modules"`
		Programs       []string `yaml:"programs"`
		SafetyPrograms []string `yaml:"safety_programs"`
		Tags           []string `yaml:"tags"`
	} `yaml:"descriptors"`
}

// LoadDescriptors reads a YAML descriptor config and registers every
// descriptor, in file order, into a fresh registry.
func LoadDescriptors(path string) (*classify.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptors: %w", err)
	}

	var file descriptorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse descriptors %s: %w", path, err)
	}
	if len(file.Descriptors) == 0 {
		return nil, fmt.Errorf("descriptors %s: no descriptors declared", path)
	}

	reg := classify.NewRegistry()
	for _, d := range file.Descriptors {
		err := reg.Register(classify.Descriptor{
			ID:             d.ID,
			Datatypes:      d.Datatypes,
			Modules:        d.Modules,
			Programs:       d.Programs,
			SafetyPrograms: d.SafetyPrograms,
			Tags:           d.Tags,
		})
		if err != nil {
			return nil, err
		}
	}
	return reg, nil
}
