package plc

import (
	"github.com/plcforge/ingot/internal/l5x"
)

// Program is a named logic container owned by a controller. Safety
// programs are distinguished by class; their routines run on the safety
// task partition.
type Program struct {
	Name     string
	Class    TagClass
	MainName string
	Disabled bool

	Source *l5x.Node
	Extra  []*l5x.Node

	owner *Controller

	routines []*Routine
	tags     []*Tag

	routineIdx map[string]int
	tagIdx     map[string]int
}

// NewProgram creates an empty program.
func NewProgram(name string) *Program {
	return &Program{
		Name:       name,
		Class:      ClassStandard,
		routineIdx: map[string]int{},
		tagIdx:     map[string]int{},
	}
}

// Controller returns the owning controller, nil if detached.
func (p *Program) Controller() *Controller { return p.owner }

// IsSafety reports whether the program runs on the safety partition.
func (p *Program) IsSafety() bool { return p.Class == ClassSafety }

// AddRoutine appends a routine. Routine names are unique per program.
func (p *Program) AddRoutine(r *Routine) error {
	if _, exists := p.routineIdx[r.Name]; exists {
		return duplicate("routines of "+p.Name, r.Name)
	}
	r.owner = p
	p.routineIdx[r.Name] = len(p.routines)
	p.routines = append(p.routines, r)
	return nil
}

// AddTag appends a program-scope tag. A name collision with a
// controller-scope tag is legal shadowing and is recorded on the
// controller; a collision inside the program is rejected.
func (p *Program) AddTag(t *Tag) error {
	if _, exists := p.tagIdx[t.Name]; exists {
		return duplicate("tags of "+p.Name, t.Name)
	}
	t.Scope = ScopeProgram
	t.program = p
	if p.owner != nil && p.owner.Tag(t.Name) != nil {
		p.owner.RecordShadow(p.Name, t.Name)
	}
	p.tagIdx[t.Name] = len(p.tags)
	p.tags = append(p.tags, t)
	return nil
}

// Routines returns the owned routines in document order.
func (p *Program) Routines() []*Routine { return p.routines }

// Tags returns the program-scope tags in document order.
func (p *Program) Tags() []*Tag { return p.tags }

// Routine looks up an owned routine by name.
func (p *Program) Routine(name string) *Routine {
	if i, ok := p.routineIdx[name]; ok {
		return p.routines[i]
	}
	return nil
}

// Tag looks up a program-scope tag by name. It does not fall back to
// the controller scope; use Controller.LookupTag for scoped resolution.
func (p *Program) Tag(name string) *Tag {
	if i, ok := p.tagIdx[name]; ok {
		return p.tags[i]
	}
	return nil
}

// MainRoutine returns the routine named by the program's MainRoutineName
// attribute, nil when unset or missing.
func (p *Program) MainRoutine() *Routine {
	if p.MainName == "" {
		return nil
	}
	return p.Routine(p.MainName)
}
