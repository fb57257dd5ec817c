package plc

import (
	"github.com/plcforge/ingot/internal/l5x"
)

// Member is one member of a user-defined datatype. Hidden backing
// members (bit hosts) and overlapping bit numbers are preserved exactly
// as declared; the model does not normalize vendor packing tricks.
type Member struct {
	Name         string
	DataTypeName string
	Dimension    string
	Radix        string
	Hidden       bool
	BitNumber    int
	HasBitNumber bool
	Target       string
	Description  string

	Source *l5x.Node
}

// Datatype is a user-defined structured datatype.
type Datatype struct {
	Name   string
	Family string
	Class  TagClass

	Source *l5x.Node
	Extra  []*l5x.Node

	members []*Member
}

// NewDatatype creates an empty user-defined datatype.
func NewDatatype(name string) *Datatype {
	return &Datatype{Name: name, Class: ClassStandard}
}

// AddMember appends a member. Member names are unique per datatype;
// bit numbers are not, members may overlap the same backing bit.
func (d *Datatype) AddMember(m *Member) error {
	for _, existing := range d.members {
		if existing.Name == m.Name {
			return duplicate("members of "+d.Name, m.Name)
		}
	}
	d.members = append(d.members, m)
	return nil
}

// Members returns the members in declaration order, hidden ones
// included.
func (d *Datatype) Members() []*Member { return d.members }

// VisibleMembers returns the members a tag browser would show.
func (d *Datatype) VisibleMembers() []*Member {
	var out []*Member
	for _, m := range d.members {
		if !m.Hidden {
			out = append(out, m)
		}
	}
	return out
}

// Member looks up a member by name, hidden ones included.
func (d *Datatype) Member(name string) *Member {
	for _, m := range d.members {
		if m.Name == name {
			return m
		}
	}
	return nil
}
