package plc

import (
	"github.com/plcforge/ingot/internal/l5x"
)

// Parameter is one parameter of an add-on instruction definition.
type Parameter struct {
	Name         string
	DataTypeName string
	Usage        string
	Required     bool
	Visible      bool

	Source *l5x.Node
}

// AddOnInstruction is an add-on instruction definition. Instances are
// tags whose datatype names the definition; they are linked during the
// controller's reference pass, so definition and instance order in the
// document does not matter.
type AddOnInstruction struct {
	Name        string
	Revision    string
	Vendor      string
	Description string

	Source *l5x.Node
	Extra  []*l5x.Node

	parameters []*Parameter
	localTags  []*Tag
	routines   []*Routine

	instances []*Tag
}

// NewAOI creates an empty add-on instruction definition.
func NewAOI(name string) *AddOnInstruction {
	return &AddOnInstruction{Name: name}
}

// AddParameter appends a parameter. Parameter names are unique per
// definition.
func (a *AddOnInstruction) AddParameter(p *Parameter) error {
	for _, existing := range a.parameters {
		if existing.Name == p.Name {
			return duplicate("parameters of "+a.Name, p.Name)
		}
	}
	a.parameters = append(a.parameters, p)
	return nil
}

// AddLocalTag appends a definition-local tag.
func (a *AddOnInstruction) AddLocalTag(t *Tag) error {
	for _, existing := range a.localTags {
		if existing.Name == t.Name {
			return duplicate("local tags of "+a.Name, t.Name)
		}
	}
	a.localTags = append(a.localTags, t)
	return nil
}

// AddRoutine appends a definition routine.
func (a *AddOnInstruction) AddRoutine(r *Routine) error {
	for _, existing := range a.routines {
		if existing.Name == r.Name {
			return duplicate("routines of "+a.Name, r.Name)
		}
	}
	a.routines = append(a.routines, r)
	return nil
}

// Parameters returns the parameters in declaration order.
func (a *AddOnInstruction) Parameters() []*Parameter { return a.parameters }

// Parameter looks up a parameter by name.
func (a *AddOnInstruction) Parameter(name string) *Parameter {
	for _, p := range a.parameters {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// LocalTags returns the definition-local tags in declaration order.
func (a *AddOnInstruction) LocalTags() []*Tag { return a.localTags }

// Routines returns the definition routines in declaration order.
func (a *AddOnInstruction) Routines() []*Routine { return a.routines }

// Instances returns every tag that instantiates this definition, in
// the order the reference pass linked them.
func (a *AddOnInstruction) Instances() []*Tag { return a.instances }
