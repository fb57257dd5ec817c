package plc

import (
	"fmt"

	"github.com/plcforge/ingot/internal/l5x"
)

// Routine is a logic unit inside a program. Only relay-ladder routines
// carry rungs; other content kinds keep their source subtree untouched.
type Routine struct {
	Name string
	Type RoutineType

	Source *l5x.Node
	Extra  []*l5x.Node

	owner *Program

	rungs []*Rung
}

// NewRoutine creates an empty routine of the given content type.
func NewRoutine(name string, typ RoutineType) *Routine {
	return &Routine{Name: name, Type: typ}
}

// Program returns the owning program, nil if detached.
func (r *Routine) Program() *Program { return r.owner }

// AddRung appends a rung. Rung numbers must be unique and ascending;
// gaps are allowed.
func (r *Routine) AddRung(g *Rung) error {
	if n := len(r.rungs); n > 0 && g.Number <= r.rungs[n-1].Number {
		return &InvariantError{
			Invariant: InvariantRungOrder,
			Message: fmt.Sprintf("rung %d must follow rung %d in routine %q",
				g.Number, r.rungs[n-1].Number, r.Name),
		}
	}
	g.owner = r
	r.rungs = append(r.rungs, g)
	return nil
}

// Rungs returns the rungs in document order.
func (r *Routine) Rungs() []*Rung { return r.rungs }

// Rung returns the rung with the given number attribute, nil if absent.
func (r *Routine) Rung(number int) *Rung {
	for _, g := range r.rungs {
		if g.Number == number {
			return g
		}
	}
	return nil
}
