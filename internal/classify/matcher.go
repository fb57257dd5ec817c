package classify

import (
	"fmt"

	"github.com/gobwas/glob"

	"github.com/plcforge/ingot/internal/plc"
)

// Descriptor declares how to recognize one controller family.
type Descriptor struct {
	// ID names the variant this descriptor produces.
	ID string

	// Pattern sets, one per scored category. Glob syntax with *
	// matching any run of characters, e.g. "Fudc_*".
	Datatypes      []string
	Modules        []string
	Programs       []string
	SafetyPrograms []string
	Tags           []string
}

// checkWeight is the score contribution of one passing category check.
const checkWeight = 0.2

// matcher is a descriptor with its patterns compiled.
type matcher struct {
	desc Descriptor

	datatypes      []glob.Glob
	modules        []glob.Glob
	programs       []glob.Glob
	safetyPrograms []glob.Glob
	tags           []glob.Glob
}

func compileMatcher(desc Descriptor) (*matcher, error) {
	m := &matcher{desc: desc}
	for _, set := range []struct {
		patterns []string
		dst      *[]glob.Glob
		name     string
	}{
		{desc.Datatypes, &m.datatypes, "datatypes"},
		{desc.Modules, &m.modules, "modules"},
		{desc.Programs, &m.programs, "programs"},
		{desc.SafetyPrograms, &m.safetyPrograms, "safety_programs"},
		{desc.Tags, &m.tags, "tags"},
	} {
		for _, pattern := range set.patterns {
			g, err := glob.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("classify: descriptor %q: %s pattern %q: %w",
					desc.ID, set.name, pattern, err)
			}
			*set.dst = append(*set.dst, g)
		}
	}
	return m, nil
}

// Score rates how well the controller fits the descriptor. Each of the
// five category checks contributes 0.2 when it passes; an empty
// pattern set fails its check.
func (m *matcher) Score(c *plc.Controller) float64 {
	score := 0.0
	if matchesAny(m.datatypes, datatypeNames(c)) {
		score += checkWeight
	}
	if matchesAny(m.modules, moduleNames(c)) {
		score += checkWeight
	}
	if matchesAny(m.programs, programNames(c, false)) {
		score += checkWeight
	}
	if matchesAny(m.safetyPrograms, programNames(c, true)) {
		score += checkWeight
	}
	if matchesAny(m.tags, tagNames(c)) {
		score += checkWeight
	}
	return score
}

func matchesAny(globs []glob.Glob, names []string) bool {
	if len(globs) == 0 {
		return false
	}
	for _, g := range globs {
		for _, name := range names {
			if g.Match(name) {
				return true
			}
		}
	}
	return false
}

func datatypeNames(c *plc.Controller) []string {
	out := make([]string, 0, len(c.Datatypes()))
	for _, d := range c.Datatypes() {
		out = append(out, d.Name)
	}
	return out
}

func moduleNames(c *plc.Controller) []string {
	out := make([]string, 0, len(c.Modules()))
	for _, m := range c.Modules() {
		out = append(out, m.Name)
	}
	return out
}

func programNames(c *plc.Controller, safetyOnly bool) []string {
	var out []string
	for _, p := range c.Programs() {
		if safetyOnly && !p.IsSafety() {
			continue
		}
		out = append(out, p.Name)
	}
	return out
}

func tagNames(c *plc.Controller) []string {
	out := make([]string, 0, len(c.Tags()))
	for _, t := range c.Tags() {
		out = append(out, t.Name)
	}
	return out
}
