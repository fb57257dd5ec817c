package plc

import (
	"sync"

	"github.com/plcforge/ingot/internal/l5x"
)

// Rung is one rung of relay-ladder logic. The instruction list is
// derived from Text on first access and memoized; SetText invalidates
// the memo.
type Rung struct {
	Number  int
	Type    string
	Comment string
	Text    string

	Source *l5x.Node

	owner *Routine

	mu     sync.Mutex
	parsed bool
	instrs []*Instruction
}

// NewRung creates a rung with the given number and logic text.
func NewRung(number int, text string) *Rung {
	return &Rung{Number: number, Type: "N", Text: text}
}

// Routine returns the owning routine, nil if detached.
func (g *Rung) Routine() *Routine { return g.owner }

// SetText replaces the rung logic and discards any memoized parse.
func (g *Rung) SetText(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Text = text
	g.parsed = false
	g.instrs = nil
}

// Instructions parses the rung text into its instruction sequence.
// The parse runs once per text value and is safe for concurrent use.
func (g *Rung) Instructions() []*Instruction {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.parsed {
		g.instrs = parseInstructions(g.Text, g.aoiLookup())
		g.parsed = true
	}
	return g.instrs
}

// InstructionsByKind filters the parsed instruction sequence.
func (g *Rung) InstructionsByKind(kind InstructionKind) []*Instruction {
	var out []*Instruction
	for _, in := range g.Instructions() {
		if in.Kind == kind {
			out = append(out, in)
		}
	}
	return out
}

// WritesTo reports whether any output instruction on the rung writes
// the named operand.
func (g *Rung) WritesTo(operand string) bool {
	for _, in := range g.Instructions() {
		if out, ok := in.OutputOperand(); ok && out == operand {
			return true
		}
	}
	return false
}

func (g *Rung) aoiLookup() func(string) *AddOnInstruction {
	if g.owner == nil || g.owner.owner == nil || g.owner.owner.owner == nil {
		return nil
	}
	return g.owner.owner.owner.AOI
}
