package catalog

import (
	"strings"

	"github.com/plcforge/ingot/internal/plc"
)

// ExpandedTag is a tag template after placeholder substitution.
type ExpandedTag struct {
	Name     string
	DataType string
	Class    string
}

// ExpandedRung is a rung template after placeholder substitution.
type ExpandedRung struct {
	Routine string
	Text    string
	Comment string
}

// Expansion is the concrete output of applying a definition to one
// hardware module.
type Expansion struct {
	Definition *Definition
	Module     string
	Tags       []ExpandedTag
	Rungs      []ExpandedRung
}

// Expand substitutes the recognized placeholders with facts from the
// concrete module and its controller. Validation has already rejected
// unknown placeholders, so expansion is pure substitution.
func (d *Definition) Expand(m *plc.Module) *Expansion {
	sub := substituter(m)

	exp := &Expansion{Definition: d, Module: m.Name}
	for _, tt := range d.TagTemplates {
		exp.Tags = append(exp.Tags, ExpandedTag{
			Name:     sub(tt.Name),
			DataType: tt.DataType,
			Class:    tt.Class,
		})
	}
	for _, rt := range d.RungTemplates {
		exp.Rungs = append(exp.Rungs, ExpandedRung{
			Routine: sub(rt.Routine),
			Text:    sub(rt.Text),
			Comment: sub(rt.Comment),
		})
	}
	return exp
}

func substituter(m *plc.Module) func(string) string {
	process := ""
	if c := m.Controller(); c != nil {
		process = c.ProcessName()
	}
	replacer := strings.NewReplacer(
		"{{"+PlaceholderModuleName+"}}", m.Name,
		"{{"+PlaceholderParentModule+"}}", m.ParentName,
		"{{"+PlaceholderProcessName+"}}", process,
	)
	return func(s string) string {
		if s == "" {
			return s
		}
		return replacer.Replace(s)
	}
}
