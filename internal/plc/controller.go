package plc

import (
	"github.com/plcforge/ingot/internal/l5x"
)

// Controller is the root of the object graph for one loaded project.
type Controller struct {
	Name          string
	ProcessorType string
	MajorRev      string
	CommsPath     string
	Slot          int
	Safety        SafetyInfo

	// Source is the ingested document tree. The builder never mutates
	// it, so serializing Source reproduces the input losslessly.
	Source *l5x.Node

	// Extra holds child subtrees of the controller node that the
	// builder did not interpret.
	Extra []*l5x.Node

	processName string

	programs  []*Program
	datatypes []*Datatype
	modules   []*Module
	aois      []*AddOnInstruction
	tags      []*Tag

	programIdx  map[string]int
	datatypeIdx map[string]int
	moduleIdx   map[string]int
	aoiIdx      map[string]int
	tagIdx      map[string]int

	dangling []Dangling
	shadowed []string
}

// SafetyTagMapping pairs a standard tag with its safety counterpart.
type SafetyTagMapping struct {
	Standard string
	Safety   string
}

// SafetyInfo carries the controller-level safety configuration block.
type SafetyInfo struct {
	SafetyLevel               string
	SafetyLocked              bool
	ConfigureSafetyIOAlways   bool
	SignatureRunModeProtected bool
	TagMap                    []SafetyTagMapping
}

// AddMapping appends a standard/safety tag pair to the map.
func (s *SafetyInfo) AddMapping(standard, safety string) {
	s.TagMap = append(s.TagMap, SafetyTagMapping{Standard: standard, Safety: safety})
}

// RemoveMapping deletes a pair from the map, reporting whether it existed.
func (s *SafetyInfo) RemoveMapping(standard, safety string) bool {
	for i, m := range s.TagMap {
		if m.Standard == standard && m.Safety == safety {
			s.TagMap = append(s.TagMap[:i], s.TagMap[i+1:]...)
			return true
		}
	}
	return false
}

// NewController creates an empty controller graph.
func NewController(name string) *Controller {
	return &Controller{
		Name:        name,
		programIdx:  map[string]int{},
		datatypeIdx: map[string]int{},
		moduleIdx:   map[string]int{},
		aoiIdx:      map[string]int{},
		tagIdx:      map[string]int{},
	}
}

// ProcessName is the controller's process identity used in generated tag
// and rung names. It defaults to the controller name.
func (c *Controller) ProcessName() string {
	if c.processName != "" {
		return c.processName
	}
	return c.Name
}

// SetProcessName overrides the derived process name.
func (c *Controller) SetProcessName(name string) { c.processName = name }

// AddProgram appends a program. Program names are unique per controller.
func (c *Controller) AddProgram(p *Program) error {
	if _, exists := c.programIdx[p.Name]; exists {
		return duplicate("programs", p.Name)
	}
	p.owner = c
	c.programIdx[p.Name] = len(c.programs)
	c.programs = append(c.programs, p)
	return nil
}

// AddDatatype appends a user-defined datatype.
func (c *Controller) AddDatatype(d *Datatype) error {
	if _, exists := c.datatypeIdx[d.Name]; exists {
		return duplicate("datatypes", d.Name)
	}
	c.datatypeIdx[d.Name] = len(c.datatypes)
	c.datatypes = append(c.datatypes, d)
	return nil
}

// AddModule appends a hardware module.
func (c *Controller) AddModule(m *Module) error {
	if _, exists := c.moduleIdx[m.Name]; exists {
		return duplicate("modules", m.Name)
	}
	m.owner = c
	c.moduleIdx[m.Name] = len(c.modules)
	c.modules = append(c.modules, m)
	return nil
}

// AddAOI appends an add-on instruction definition.
func (c *Controller) AddAOI(a *AddOnInstruction) error {
	if _, exists := c.aoiIdx[a.Name]; exists {
		return duplicate("add-on instructions", a.Name)
	}
	c.aoiIdx[a.Name] = len(c.aois)
	c.aois = append(c.aois, a)
	return nil
}

// AddTag appends a controller-scope tag.
func (c *Controller) AddTag(t *Tag) error {
	if _, exists := c.tagIdx[t.Name]; exists {
		return duplicate("controller tags", t.Name)
	}
	t.Scope = ScopeController
	t.owner = c
	c.tagIdx[t.Name] = len(c.tags)
	c.tags = append(c.tags, t)
	return nil
}

// Programs returns the owned programs in document order.
func (c *Controller) Programs() []*Program { return c.programs }

// Datatypes returns the user-defined datatypes in document order.
func (c *Controller) Datatypes() []*Datatype { return c.datatypes }

// Modules returns the hardware modules in document order.
func (c *Controller) Modules() []*Module { return c.modules }

// AOIs returns the add-on instruction definitions in document order.
func (c *Controller) AOIs() []*AddOnInstruction { return c.aois }

// Tags returns the controller-scope tags in document order.
func (c *Controller) Tags() []*Tag { return c.tags }

// Program looks up an owned program by name.
func (c *Controller) Program(name string) *Program {
	if i, ok := c.programIdx[name]; ok {
		return c.programs[i]
	}
	return nil
}

// Datatype looks up a user-defined datatype by name.
func (c *Controller) Datatype(name string) *Datatype {
	if i, ok := c.datatypeIdx[name]; ok {
		return c.datatypes[i]
	}
	return nil
}

// Module looks up a module by name.
func (c *Controller) Module(name string) *Module {
	if i, ok := c.moduleIdx[name]; ok {
		return c.modules[i]
	}
	return nil
}

// AOI looks up an add-on instruction definition by name.
func (c *Controller) AOI(name string) *AddOnInstruction {
	if i, ok := c.aoiIdx[name]; ok {
		return c.aois[i]
	}
	return nil
}

// Tag looks up a controller-scope tag by name.
func (c *Controller) Tag(name string) *Tag {
	if i, ok := c.tagIdx[name]; ok {
		return c.tags[i]
	}
	return nil
}

// LookupTag resolves a tag name the way logic inside program sees it:
// the program scope wins over the controller scope. An empty program
// name performs a controller-scope lookup.
func (c *Controller) LookupTag(program, name string) *Tag {
	if program != "" {
		if p := c.Program(program); p != nil {
			if t := p.Tag(name); t != nil {
				return t
			}
		}
	}
	return c.Tag(name)
}

// RecordShadow notes that a program-scope tag shadows a controller-scope
// tag of the same name. Shadowing is legal; this exists for queries.
func (c *Controller) RecordShadow(program, name string) {
	c.shadowed = append(c.shadowed, program+"."+name)
}

// ShadowedTags returns "program.tag" entries for every recorded shadow.
func (c *Controller) ShadowedTags() []string { return c.shadowed }

// RecordDangling adds an unresolved-reference marker to the graph.
func (c *Controller) RecordDangling(d Dangling) {
	c.dangling = append(c.dangling, d)
}

// DanglingRefs returns every unresolved cross reference in the graph.
func (c *Controller) DanglingRefs() []Dangling { return c.dangling }

// ResolveReferences runs the deferred cross-reference pass: tag
// datatypes, AOI instance links, and module parents. It is called once
// by the builder after the whole document is mapped, so resolution does
// not depend on document order. Unresolvable references become Dangling
// markers and are also returned.
func (c *Controller) ResolveReferences() []Dangling {
	before := len(c.dangling)

	resolveTags := func(scope string, tags []*Tag) {
		for _, t := range tags {
			if t.DataTypeName == "" || IsAtomicDatatype(t.DataTypeName) {
				continue
			}
			if dt := c.Datatype(t.DataTypeName); dt != nil {
				t.datatype = dt
				continue
			}
			if aoi := c.AOI(t.DataTypeName); aoi != nil {
				t.aoi = aoi
				aoi.instances = append(aoi.instances, t)
				continue
			}
			c.RecordDangling(Dangling{
				Kind:   RefDatatype,
				From:   scope + "." + t.Name,
				Target: t.DataTypeName,
			})
		}
	}

	resolveTags(c.Name, c.tags)
	for _, p := range c.programs {
		resolveTags(p.Name, p.Tags())
	}

	for _, m := range c.modules {
		if m.ParentName == "" {
			continue
		}
		if parent := c.Module(m.ParentName); parent != nil && parent != m {
			m.parent = parent
			continue
		}
		// "Local" names the chassis itself when no module carries
		// that name; the reference is valid with no parent link.
		if m.ParentName == "Local" {
			continue
		}
		c.RecordDangling(Dangling{
			Kind:   RefModuleParent,
			From:   m.Name,
			Target: m.ParentName,
		})
	}

	return c.dangling[before:]
}
