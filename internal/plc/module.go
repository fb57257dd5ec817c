package plc

import (
	"github.com/plcforge/ingot/internal/l5x"
)

// ConnectionPoint is one port/connection of a hardware module with its
// configured input and output sizes.
type ConnectionPoint struct {
	Name       string
	Type       string
	InputSize  int
	OutputSize int

	Source *l5x.Node
}

// GeneratedTag is a tag synthesized for a module from its catalog
// definition's templates.
type GeneratedTag struct {
	Name     string
	DataType string
	Class    string
}

// GeneratedRung is a rung synthesized for a module from its catalog
// definition's templates.
type GeneratedRung struct {
	Routine string
	Text    string
	Comment string
}

// Module is a hardware module from the I/O tree. ParentName keeps the
// document's parent reference verbatim; the resolved link is filled in
// by the controller's reference pass. Controls is assigned from the
// module catalog during the build, not from the document itself.
type Module struct {
	Name          string
	CatalogNumber string
	Vendor        string
	ProductType   string
	ProductCode   string
	Major         string
	Minor         string
	ParentName    string
	ParentModPort int
	Inhibited     bool
	SafetyEnabled bool
	EKey          string
	IPAddress     string
	Slot          int
	HasSlot       bool

	Controls     ControlsType
	DefinitionID string

	// Artifacts attached from a matched catalog definition.
	GeneratedTags  []GeneratedTag
	GeneratedRungs []GeneratedRung

	Source *l5x.Node
	Extra  []*l5x.Node

	owner  *Controller
	parent *Module

	connections []*ConnectionPoint
}

// NewModule creates a module with the given name and catalog number.
func NewModule(name, catalogNumber string) *Module {
	return &Module{Name: name, CatalogNumber: catalogNumber, Controls: ControlsUnknown}
}

// Controller returns the owning controller, nil if detached.
func (m *Module) Controller() *Controller { return m.owner }

// Parent returns the resolved parent module, nil for the local chassis
// and for unresolved parents.
func (m *Module) Parent() *Module { return m.parent }

// AddConnection appends a connection point.
func (m *Module) AddConnection(cp *ConnectionPoint) {
	m.connections = append(m.connections, cp)
}

// Connections returns the connection points in document order.
func (m *Module) Connections() []*ConnectionPoint { return m.connections }

// Connection looks up a connection point by name.
func (m *Module) Connection(name string) *ConnectionPoint {
	for _, cp := range m.connections {
		if cp.Name == name {
			return cp
		}
	}
	return nil
}
