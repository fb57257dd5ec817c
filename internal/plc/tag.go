package plc

import (
	"github.com/plcforge/ingot/internal/l5x"
)

// Tag is a named data element in the controller or a program scope.
// DataTypeName is kept verbatim from the document; the resolved links
// are filled in by the controller's reference pass.
type Tag struct {
	Name           string
	DataTypeName   string
	Dimensions     string
	Radix          string
	Class          TagClass
	TagType        string
	AliasFor       string
	Constant       bool
	ExternalAccess string
	Description    string

	Scope TagScope

	Source *l5x.Node
	Extra  []*l5x.Node

	owner   *Controller
	program *Program

	datatype *Datatype
	aoi      *AddOnInstruction
}

// NewTag creates a tag of the given datatype.
func NewTag(name, datatype string) *Tag {
	return &Tag{Name: name, DataTypeName: datatype, Class: ClassStandard, TagType: "Base"}
}

// Program returns the owning program for program-scope tags, nil for
// controller-scope tags.
func (t *Tag) Program() *Program { return t.program }

// Datatype returns the resolved user-defined datatype, nil for atomic
// types, AOI instances, and unresolved references.
func (t *Tag) Datatype() *Datatype { return t.datatype }

// AOI returns the add-on instruction definition this tag instantiates,
// nil when the tag is not an AOI instance.
func (t *Tag) AOI() *AddOnInstruction { return t.aoi }

// IsAOIInstance reports whether the tag's datatype resolved to an
// add-on instruction definition.
func (t *Tag) IsAOIInstance() bool { return t.aoi != nil }

// IsAlias reports whether the tag aliases another tag.
func (t *Tag) IsAlias() bool { return t.AliasFor != "" }

// IsSafety reports whether the tag belongs to the safety partition.
func (t *Tag) IsSafety() bool { return t.Class == ClassSafety }

// QualifiedName renders the tag name with its scope prefix, e.g.
// "MainProgram.Speed" or just "Speed" for controller scope.
func (t *Tag) QualifiedName() string {
	if t.Scope == ScopeProgram && t.program != nil {
		return t.program.Name + "." + t.Name
	}
	return t.Name
}
