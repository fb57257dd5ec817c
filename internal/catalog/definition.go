package catalog

import (
	"github.com/plcforge/ingot/internal/plc"
)

// TagTemplate declares a tag to generate for each matched module.
// Name may contain placeholders.
type TagTemplate struct {
	Name     string `json:"name"`
	DataType string `json:"datatype"`
	Class    string `json:"class,omitempty"`
}

// RungTemplate declares a rung of logic to generate for each matched
// module. Text and Comment may contain placeholders.
type RungTemplate struct {
	Routine string `json:"routine,omitempty"`
	Text    string `json:"text"`
	Comment string `json:"comment,omitempty"`
}

// ConnectionSpec pins the connection layout a hardware module must
// present to match the definition.
type ConnectionSpec struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	InputSize  int    `json:"input_size"`
	OutputSize int    `json:"output_size"`
}

// Definition is one compiled module-definition record.
type Definition struct {
	// Label is the record's label in its config file.
	Label string `json:"label"`

	CatalogNumber    string           `json:"catalog_number"`
	Class            string           `json:"class,omitempty"`
	ParentType       string           `json:"parent_type,omitempty"`
	ControlsType     plc.ControlsType `json:"controls_type"`
	RequiredImports  []string         `json:"required_imports,omitempty"`
	TagTemplates     []TagTemplate    `json:"tag_templates,omitempty"`
	RungTemplates    []RungTemplate   `json:"rung_templates,omitempty"`
	ConnectionPoints []ConnectionSpec `json:"connection_points,omitempty"`
}

// ID identifies the definition in the registry and the store.
func (d *Definition) ID() string { return d.CatalogNumber }

// Matches reports whether a hardware module satisfies the definition:
// the catalog number must agree, and every declared connection point
// must exist on the module with the declared sizes. A definition with
// no connection points matches on catalog number alone.
func (d *Definition) Matches(m *plc.Module) bool {
	if m == nil || m.CatalogNumber != d.CatalogNumber {
		return false
	}
	for _, want := range d.ConnectionPoints {
		cp := m.Connection(want.Name)
		if cp == nil {
			return false
		}
		if want.Type != "" && cp.Type != want.Type {
			return false
		}
		if cp.InputSize != want.InputSize || cp.OutputSize != want.OutputSize {
			return false
		}
	}
	return true
}
